package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseLanguageCode(t *testing.T) {
	assert.Equal(t, "bo", BaseLanguageCode("bo"))
	assert.Equal(t, "bo", BaseLanguageCode("bo-Latn"))
	assert.Equal(t, "sa", BaseLanguageCode("sa-x-ewts"))
	assert.Equal(t, "", BaseLanguageCode(""))
	// A leading separator yields no base code to strip.
	assert.Equal(t, "-en", BaseLanguageCode("-en"))
}
