package handlers

import (
	"context"
	"encoding/json"
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

type stubEditionStore struct {
	createID     string
	lastCreate   *entities.CreateManifestationInput
	content      string
	contentErr   error
	lastStart    int
	lastEnd      int
	lastSliced   bool
	updateErr    error
	lastReplace  bool
	lastNewText  string
	deleteCalled bool
}

func (s *stubEditionStore) Create(ctx context.Context, input *entities.CreateManifestationInput) (string, error) {
	s.lastCreate = input
	return s.createID, nil
}

func (s *stubEditionStore) Get(ctx context.Context, id string) (*entities.Manifestation, error) {
	return &entities.Manifestation{ID: id}, nil
}

func (s *stubEditionStore) List(ctx context.Context, expressionID string, mType entities.ManifestationType) ([]entities.Manifestation, error) {
	return nil, nil
}

func (s *stubEditionStore) GetContent(ctx context.Context, id string, start, end int, sliced bool) (string, error) {
	s.lastStart, s.lastEnd, s.lastSliced = start, end, sliced
	return s.content, s.contentErr
}

func (s *stubEditionStore) Update(ctx context.Context, id string, input *entities.UpdateManifestationInput) error {
	return s.updateErr
}

func (s *stubEditionStore) UpdateContent(ctx context.Context, id string, start, end int, replaceAll bool, content string) error {
	s.lastStart, s.lastEnd = start, end
	s.lastReplace = replaceAll
	s.lastNewText = content
	return s.updateErr
}

func (s *stubEditionStore) Delete(ctx context.Context, id string) error {
	s.deleteCalled = true
	return nil
}

type stubRelatedExpressions struct {
	result []entities.Expression
}

func (s *stubRelatedExpressions) Related(ctx context.Context, manifestationID string, exprType entities.ExpressionType) ([]entities.Expression, error) {
	return s.result, nil
}

type stubRelatedSegments struct {
	lastQuery RelatedSegmentQuery
	result    []entities.RelatedSegment
	err       error
}

func (s *stubRelatedSegments) Related(ctx context.Context, query RelatedSegmentQuery) ([]entities.RelatedSegment, error) {
	s.lastQuery = query
	return s.result, s.err
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Notify(manifestationID, kind string) {
	n.events = append(n.events, manifestationID+":"+kind)
}

func editionRouter(store *stubEditionStore, segments *stubRelatedSegments, notifier *recordingNotifier, related *stubRelatedExpressions) http.Handler {
	if segments == nil {
		segments = &stubRelatedSegments{}
	}
	if related == nil {
		related = &stubRelatedExpressions{}
	}
	h := NewEditionHandler(store, related, segments, notifier, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/texts/{id}/instances", h.CreateEdition)
	r.Get("/texts/{id}/instances", h.ListEditions)
	r.Get("/editions/{id}/content", h.GetContent)
	r.Put("/editions/{id}/content", h.UpdateContent)
	r.Get("/editions/{id}/metadata", h.GetMetadata)
	r.Delete("/editions/{id}", h.DeleteEdition)
	r.Get("/editions/{id}/related", h.GetRelated)
	r.Get("/editions/{id}/segment-related", h.GetSegmentRelated)
	return r
}

func TestCreateEditionPassesAnnotationsAndNotifies(t *testing.T) {
	store := &stubEditionStore{createID: "M1"}
	notifier := &recordingNotifier{}
	body := `{
		"content": "0123456789",
		"metadata": {"type": "diplomatic", "bdrc": "W1", "source": "src"},
		"pagination": {"volume": {"pages": [{"reference": "1a", "lines": [{"start": 0, "end": 10}]}]}}
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/texts/E1/instances", strings.NewReader(body))

	editionRouter(store, nil, notifier, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, store.lastCreate)
	assert.Equal(t, "E1", store.lastCreate.ExpressionID)
	assert.Equal(t, "0123456789", store.lastCreate.Content)
	require.Len(t, store.lastCreate.Annotations, 1)
	assert.Equal(t, entities.AnnotationKindPagination, store.lastCreate.Annotations[0].Type)
	assert.Equal(t, []string{"M1:created"}, notifier.events)
}

func TestCreateEditionMissingContentResponds422(t *testing.T) {
	store := &stubEditionStore{createID: "M1"}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/texts/E1/instances", strings.NewReader(`{"metadata": {"type": "critical"}}`))

	editionRouter(store, nil, &recordingNotifier{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetContentFullText(t *testing.T) {
	store := &stubEditionStore{content: "0123456789"}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/editions/M1/content", nil)

	editionRouter(store, nil, &recordingNotifier{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, store.lastSliced)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "0123456789", body["content"])
}

func TestGetContentSlice(t *testing.T) {
	store := &stubEditionStore{content: "234"}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/editions/M1/content?span_start=2&span_end=5", nil)

	editionRouter(store, nil, &recordingNotifier{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.lastSliced)
	assert.Equal(t, 2, store.lastStart)
	assert.Equal(t, 5, store.lastEnd)
}

func TestGetContentHalfSpanResponds400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/editions/M1/content?span_start=2", nil)

	editionRouter(&stubEditionStore{}, nil, &recordingNotifier{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetContentInvertedSpanResponds400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/editions/M1/content?span_start=5&span_end=2", nil)

	editionRouter(&stubEditionStore{}, nil, &recordingNotifier{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateContentWithoutSpanReplacesAll(t *testing.T) {
	store := &stubEditionStore{}
	notifier := &recordingNotifier{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/editions/M1/content", strings.NewReader(`{"content": "new text"}`))

	editionRouter(store, nil, notifier, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.lastReplace)
	assert.Equal(t, "new text", store.lastNewText)
	assert.Equal(t, []string{"M1:content"}, notifier.events)
}

func TestUpdateContentWithSpanSplices(t *testing.T) {
	store := &stubEditionStore{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/editions/M1/content",
		strings.NewReader(`{"content": "X", "span": {"start": 3, "end": 10}}`))

	editionRouter(store, nil, &recordingNotifier{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, store.lastReplace)
	assert.Equal(t, 3, store.lastStart)
	assert.Equal(t, 10, store.lastEnd)
}

func TestDeleteEditionResponds204AndNotifies(t *testing.T) {
	store := &stubEditionStore{}
	notifier := &recordingNotifier{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/editions/M1", nil)

	editionRouter(store, nil, notifier, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, store.deleteCalled)
	assert.Equal(t, []string{"M1:deleted"}, notifier.events)
}

func TestGetRelatedGroupsByType(t *testing.T) {
	related := &stubRelatedExpressions{result: []entities.Expression{
		{ID: "E2", Type: entities.ExpressionTypeTranslation},
		{ID: "E3", Type: entities.ExpressionTypeTranslation},
		{ID: "E4", Type: entities.ExpressionTypeCommentary},
	}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/editions/M1/related", nil)

	editionRouter(&stubEditionStore{}, nil, &recordingNotifier{}, related).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var grouped map[string][]entities.Expression
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grouped))
	assert.Len(t, grouped["translation"], 2)
	assert.Len(t, grouped["commentary"], 1)
}

func TestGetSegmentRelatedForwardsQuery(t *testing.T) {
	segments := &stubRelatedSegments{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/editions/M1/segment-related?span_start=0&span_end=7&transform=true", nil)

	editionRouter(&stubEditionStore{}, segments, &recordingNotifier{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "M1", segments.lastQuery.ManifestationID)
	assert.True(t, segments.lastQuery.HasSpan)
	assert.True(t, segments.lastQuery.Transfer)
	assert.Equal(t, 0, segments.lastQuery.Start)
	assert.Equal(t, 7, segments.lastQuery.End)
}

func TestGetSegmentRelatedConflictSurfacesStoreError(t *testing.T) {
	segments := &stubRelatedSegments{err: apperrors.NewInvalidRequestError("segment_id and span are mutually exclusive")}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/editions/M1/segment-related?segment_id=S1&span_start=0&span_end=7", nil)

	editionRouter(&stubEditionStore{}, segments, &recordingNotifier{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSegmentRelatedBadTransformResponds400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/editions/M1/segment-related?segment_id=S1&transform=maybe", nil)

	editionRouter(&stubEditionStore{}, nil, &recordingNotifier{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
