package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	apperrors "textgraph/pkg/errors"
)

type stubAnnotationStore struct {
	addID        string
	lastInput    entities.AnnotationInput
	deleteSegErr error
	deleteAlnErr error
	deleted      []string
}

func (s *stubAnnotationStore) Add(ctx context.Context, manifestationID string, input entities.AnnotationInput) (string, error) {
	s.lastInput = input
	return s.addID, nil
}

func (s *stubAnnotationStore) GetSegmentation(ctx context.Context, id string) (*entities.Segmentation, error) {
	return &entities.Segmentation{ID: id, Kind: entities.AnnotationKindSegmentation}, nil
}

func (s *stubAnnotationStore) GetAlignment(ctx context.Context, id string) (*entities.Alignment, error) {
	return &entities.Alignment{ID: id}, nil
}

func (s *stubAnnotationStore) GetNote(ctx context.Context, id string) (*entities.Note, error) {
	return &entities.Note{ID: id}, nil
}

func (s *stubAnnotationStore) GetBibliography(ctx context.Context, id string) (*entities.Bibliography, error) {
	return &entities.Bibliography{ID: id}, nil
}

func (s *stubAnnotationStore) DeleteSegmentation(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, "segmentation:"+id)
	return s.deleteSegErr
}

func (s *stubAnnotationStore) DeleteAlignment(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, "alignment:"+id)
	return s.deleteAlnErr
}

func (s *stubAnnotationStore) UpdateAlignment(ctx context.Context, id string, input *entities.AlignmentInput) (string, error) {
	return "A2", nil
}

func (s *stubAnnotationStore) DeleteNote(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, "durchen:"+id)
	return nil
}

func (s *stubAnnotationStore) DeleteBibliography(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, "bibliographic:"+id)
	return nil
}

func annotationRouter(store *stubAnnotationStore, notifier *recordingNotifier) http.Handler {
	if notifier == nil {
		notifier = &recordingNotifier{}
	}
	h := NewAnnotationHandler(store, notifier, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/annotations/{kind}", func(r chi.Router) {
		r.Post("/", h.CreateAnnotation)
		r.Get("/{id}", h.GetAnnotation)
		r.Put("/{id}", h.UpdateAnnotation)
		r.Delete("/{id}", h.DeleteAnnotation)
	})
	return r
}

func TestCreateSegmentationAnnotation(t *testing.T) {
	store := &stubAnnotationStore{addID: "S1"}
	notifier := &recordingNotifier{}
	body := `{
		"manifestation_id": "M1",
		"segmentation": {"segments": [{"lines": [{"start": 0, "end": 5}]}]}
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/annotations/segmentation/", strings.NewReader(body))

	annotationRouter(store, notifier).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, entities.AnnotationKindSegmentation, store.lastInput.Type)
	assert.Equal(t, []string{"M1:segmentation"}, notifier.events)
}

func TestCreateAnnotationUnknownKindResponds400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/annotations/marginalia/", strings.NewReader(`{"manifestation_id": "M1"}`))

	annotationRouter(&stubAnnotationStore{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAnnotationMissingVariantResponds422(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/annotations/alignment/", strings.NewReader(`{"manifestation_id": "M1"}`))

	annotationRouter(&stubAnnotationStore{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteMissingSegmentationResponds204(t *testing.T) {
	// The repository treats an absent segmentation as a no-op.
	store := &stubAnnotationStore{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/annotations/segmentation/S9", nil)

	annotationRouter(store, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"segmentation:S9"}, store.deleted)
}

func TestDeleteMissingAlignmentResponds404(t *testing.T) {
	store := &stubAnnotationStore{deleteAlnErr: apperrors.NewNotFoundError("annotation A9")}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/annotations/alignment/A9", nil)

	annotationRouter(store, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAlignmentHalfViaSegmentationResponds422(t *testing.T) {
	store := &stubAnnotationStore{
		deleteSegErr: apperrors.NewValidationError("segmentation S1 belongs to an alignment; delete the alignment instead"),
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/annotations/segmentation/S1", nil)

	annotationRouter(store, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateNonAlignmentResponds400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/annotations/segmentation/S1", strings.NewReader(`{}`))

	annotationRouter(&stubAnnotationStore{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAlignmentRespondsNewID(t *testing.T) {
	body := `{
		"alignment": {
			"target_manifestation_id": "M2",
			"target_segments": [{"lines": [{"start": 0, "end": 7}]}],
			"aligned_segments": [{"lines": [{"start": 0, "end": 7}], "alignment_indices": [0]}]
		}
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/annotations/alignment/A1", strings.NewReader(body))

	annotationRouter(&stubAnnotationStore{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "A2")
}

func TestGetAnnotationDispatchesOnKind(t *testing.T) {
	for _, kind := range []string{"segmentation", "pagination", "alignment", "durchen", "bibliographic"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/annotations/"+kind+"/X1", nil)

		annotationRouter(&stubAnnotationStore{}, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "kind %s", kind)
		assert.Contains(t, rec.Body.String(), "X1")
	}
}
