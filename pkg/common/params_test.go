package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "textgraph/pkg/errors"
)

func TestExtractListParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/v2/texts", nil)

	params, err := ExtractListParams(r)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
}

func TestExtractListParamsExplicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/v2/texts?limit=5&offset=30", nil)

	params, err := ExtractListParams(r)
	require.NoError(t, err)
	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, 30, params.Offset)
}

func TestExtractListParamsRejectsOutOfRange(t *testing.T) {
	for _, query := range []string{
		"limit=0",
		"limit=101",
		"limit=abc",
		"offset=-1",
		"offset=x",
	} {
		r := httptest.NewRequest("GET", "/v2/texts?"+query, nil)
		_, err := ExtractListParams(r)
		assert.True(t, apperrors.IsInvalidRequest(err), "query %q should be rejected", query)
	}
}
