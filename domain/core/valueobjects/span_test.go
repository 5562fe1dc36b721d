package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpanValidates(t *testing.T) {
	s, err := NewSpan(2, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Length())

	_, err = NewSpan(-1, 5)
	assert.Error(t, err)

	_, err = NewSpan(5, 2)
	assert.Error(t, err)

	// Zero-width spans are legal anchors.
	_, err = NewSpan(4, 4)
	assert.NoError(t, err)
}

func TestSpanOverlapsIsHalfOpen(t *testing.T) {
	s := Span{Start: 5, End: 10}

	assert.True(t, s.Overlaps(0, 6))
	assert.True(t, s.Overlaps(9, 20))
	assert.False(t, s.Overlaps(0, 5))
	assert.False(t, s.Overlaps(10, 20))
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: 5, End: 10}

	assert.False(t, s.Contains(4))
	assert.True(t, s.Contains(5))
	assert.True(t, s.Contains(9))
	assert.False(t, s.Contains(10))
}
