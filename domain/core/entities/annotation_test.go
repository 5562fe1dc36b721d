package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotationInputUnmarshalMatchingVariant(t *testing.T) {
	payload := `{
		"type": "segmentation",
		"segmentation": {"segments": [{"lines": [{"start": 0, "end": 5}]}]}
	}`

	var input AnnotationInput
	require.NoError(t, json.Unmarshal([]byte(payload), &input))
	assert.Equal(t, AnnotationKindSegmentation, input.Type)
	require.NotNil(t, input.Segmentation)
	assert.Len(t, input.Segmentation.Segments, 1)
}

func TestAnnotationInputRejectsUnknownType(t *testing.T) {
	var input AnnotationInput
	err := json.Unmarshal([]byte(`{"type": "marginalia"}`), &input)
	assert.ErrorContains(t, err, "unknown annotation type")
}

func TestAnnotationInputRejectsMismatchedVariant(t *testing.T) {
	payload := `{
		"type": "alignment",
		"segmentation": {"segments": [{"lines": [{"start": 0, "end": 5}]}]}
	}`

	var input AnnotationInput
	err := json.Unmarshal([]byte(payload), &input)
	assert.ErrorContains(t, err, "no matching payload")
}

func TestCheckVariantPerKind(t *testing.T) {
	cases := []struct {
		name  string
		input AnnotationInput
		ok    bool
	}{
		{"pagination present", AnnotationInput{Type: AnnotationKindPagination, Pagination: &PaginationInput{}}, true},
		{"pagination missing", AnnotationInput{Type: AnnotationKindPagination}, false},
		{"durchen present", AnnotationInput{Type: AnnotationKindDurchen, Notes: []NoteInput{{NoteType: "variant"}}}, true},
		{"durchen empty", AnnotationInput{Type: AnnotationKindDurchen}, false},
		{"bibliography present", AnnotationInput{Type: AnnotationKindBibliography, Bibliography: []BibliographyInput{{Type: "colophon"}}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.CheckVariant()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAnnotationKindIsValid(t *testing.T) {
	assert.True(t, AnnotationKind("bibliographic").IsValid())
	assert.False(t, AnnotationKind("bibliography").IsValid())
	assert.False(t, AnnotationKind("").IsValid())
}
