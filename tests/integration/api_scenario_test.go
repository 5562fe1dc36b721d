package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/interfaces/http/rest"
	"textgraph/interfaces/http/rest/handlers"
	"textgraph/interfaces/http/rest/middleware"
	apperrors "textgraph/pkg/errors"
)

// fixture backs every store interface with in-memory state so the full
// router, middleware included, can be exercised end to end.
type fixture struct {
	principals  map[string]*entities.Principal
	expressions map[string]*entities.Expression
	contents    map[string]string
	nextID      string
}

func newFixture() *fixture {
	return &fixture{
		principals:  map[string]*entities.Principal{},
		expressions: map[string]*entities.Expression{},
		contents:    map[string]string{},
	}
}

func (f *fixture) Authenticate(ctx context.Context, rawKey string) (*entities.Principal, error) {
	if p, ok := f.principals[rawKey]; ok {
		return p, nil
	}
	return nil, apperrors.NewUnauthorizedError("invalid API key")
}

func (f *fixture) Create(ctx context.Context, input *entities.CreateExpressionInput) (string, bool, error) {
	id := "E1"
	f.expressions[id] = &entities.Expression{
		ID:       id,
		Type:     input.Type,
		Language: input.Language,
		Title:    input.Title,
	}
	return id, false, nil
}

func (f *fixture) Get(ctx context.Context, id string) (*entities.Expression, error) {
	if e, ok := f.expressions[id]; ok {
		return e, nil
	}
	return nil, apperrors.NewNotFoundError("expression " + id)
}

func (f *fixture) List(ctx context.Context, filter entities.ExpressionFilter, limit, offset int) ([]entities.Expression, error) {
	return nil, nil
}

func (f *fixture) MergeTitle(ctx context.Context, id string, title map[string]string) error {
	e, ok := f.expressions[id]
	if !ok {
		return apperrors.NewNotFoundError("expression " + id)
	}
	for tag, text := range title {
		e.Title[tag] = text
	}
	return nil
}

type editionFixture struct {
	f *fixture
}

func (s editionFixture) Create(ctx context.Context, input *entities.CreateManifestationInput) (string, error) {
	if _, ok := s.f.expressions[input.ExpressionID]; !ok {
		return "", apperrors.NewNotFoundError("expression " + input.ExpressionID)
	}
	id := "M1"
	s.f.contents[id] = input.Content
	return id, nil
}

func (s editionFixture) Get(ctx context.Context, id string) (*entities.Manifestation, error) {
	if _, ok := s.f.contents[id]; !ok {
		return nil, apperrors.NewNotFoundError("manifestation " + id)
	}
	return &entities.Manifestation{ID: id}, nil
}

func (s editionFixture) List(ctx context.Context, expressionID string, mType entities.ManifestationType) ([]entities.Manifestation, error) {
	return nil, nil
}

func (s editionFixture) GetContent(ctx context.Context, id string, start, end int, sliced bool) (string, error) {
	text, ok := s.f.contents[id]
	if !ok {
		return "", apperrors.NewNotFoundError("manifestation " + id)
	}
	if !sliced {
		return text, nil
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return "", nil
	}
	return text[start:end], nil
}

func (s editionFixture) Update(ctx context.Context, id string, input *entities.UpdateManifestationInput) error {
	return nil
}

func (s editionFixture) UpdateContent(ctx context.Context, id string, start, end int, replaceAll bool, content string) error {
	if replaceAll {
		s.f.contents[id] = content
		return nil
	}
	old := s.f.contents[id]
	s.f.contents[id] = old[:start] + content + old[end:]
	return nil
}

func (s editionFixture) Delete(ctx context.Context, id string) error {
	delete(s.f.contents, id)
	return nil
}

type emptyRelated struct{}

func (emptyRelated) Related(ctx context.Context, manifestationID string, exprType entities.ExpressionType) ([]entities.Expression, error) {
	return nil, nil
}

type emptySegments struct{}

func (emptySegments) Related(ctx context.Context, query handlers.RelatedSegmentQuery) ([]entities.RelatedSegment, error) {
	return nil, nil
}

type noopAnnotations struct{}

func (noopAnnotations) Add(ctx context.Context, manifestationID string, input entities.AnnotationInput) (string, error) {
	return "A1", nil
}
func (noopAnnotations) GetSegmentation(ctx context.Context, id string) (*entities.Segmentation, error) {
	return &entities.Segmentation{ID: id}, nil
}
func (noopAnnotations) GetAlignment(ctx context.Context, id string) (*entities.Alignment, error) {
	return &entities.Alignment{ID: id}, nil
}
func (noopAnnotations) GetNote(ctx context.Context, id string) (*entities.Note, error) {
	return &entities.Note{ID: id}, nil
}
func (noopAnnotations) GetBibliography(ctx context.Context, id string) (*entities.Bibliography, error) {
	return &entities.Bibliography{ID: id}, nil
}
func (noopAnnotations) DeleteSegmentation(ctx context.Context, id string) error { return nil }
func (noopAnnotations) DeleteAlignment(ctx context.Context, id string) error {
	return apperrors.NewNotFoundError("annotation " + id)
}
func (noopAnnotations) UpdateAlignment(ctx context.Context, id string, input *entities.AlignmentInput) (string, error) {
	return "A2", nil
}
func (noopAnnotations) DeleteNote(ctx context.Context, id string) error         { return nil }
func (noopAnnotations) DeleteBibliography(ctx context.Context, id string) error { return nil }

type emptyCategories struct{}

func (emptyCategories) Create(ctx context.Context, input *entities.CreateCategoryInput) (string, error) {
	return "C1", nil
}
func (emptyCategories) List(ctx context.Context, application, parentID string) ([]entities.Category, error) {
	return nil, nil
}

type emptyPersons struct{}

func (emptyPersons) Create(ctx context.Context, input *entities.CreatePersonInput) (string, error) {
	return "P1", nil
}
func (emptyPersons) Get(ctx context.Context, id string) (*entities.Person, error) {
	return &entities.Person{ID: id}, nil
}
func (emptyPersons) List(ctx context.Context, limit, offset int) ([]entities.Person, error) {
	return nil, nil
}
func (emptyPersons) Delete(ctx context.Context, id string) error { return nil }

type emptyKeys struct{}

func (emptyKeys) Create(ctx context.Context, input *entities.CreateAPIKeyInput) (string, string, error) {
	return "K1", "raw-key", nil
}
func (emptyKeys) List(ctx context.Context) ([]entities.APIKey, error) { return nil, nil }
func (emptyKeys) Revoke(ctx context.Context, id string) error         { return nil }
func (emptyKeys) Rotate(ctx context.Context, id string) (string, error) {
	return "raw-key-2", nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(manifestationID, kind string) {}

func newServer(f *fixture) http.Handler {
	logger := zap.NewNop()
	router := rest.NewRouter(
		handlers.NewExpressionHandler(f, logger),
		handlers.NewEditionHandler(editionFixture{f}, emptyRelated{}, emptySegments{}, noopNotifier{}, logger),
		handlers.NewAnnotationHandler(noopAnnotations{}, noopNotifier{}, logger),
		handlers.NewCategoryHandler(emptyCategories{}, logger),
		handlers.NewPersonHandler(emptyPersons{}, logger),
		handlers.NewAPIKeyHandler(emptyKeys{}, logger),
		f,
		nil,
		false,
		logger,
	)
	return router.Setup()
}

func do(t *testing.T, server http.Handler, method, path, key, application, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if key != "" {
		req.Header.Set(middleware.HeaderAPIKey, key)
	}
	if application != "" {
		req.Header.Set(middleware.HeaderApplication, application)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestEditionLifecycleScenario(t *testing.T) {
	f := newFixture()
	f.principals["K"] = &entities.Principal{KeyID: "k1", Name: "svc"}
	server := newServer(f)

	// Health is open; the API surface is not.
	assert.Equal(t, http.StatusOK, do(t, server, "GET", "/health", "", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, server, "GET", "/v2/texts", "", "", "").Code)

	rec := do(t, server, "POST", "/v2/texts", "K", "",
		`{"type": "root", "language": "bo", "title": {"en": "Heart Sutra"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, server, "POST", "/v2/texts/E1/instances", "K", "",
		`{"content": "0123456789", "metadata": {"type": "diplomatic", "bdrc": "W1", "source": "src"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	manifestationID := created["id"]

	rec = do(t, server, "GET", "/v2/editions/"+manifestationID+"/content?span_start=2&span_end=5", "K", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var content map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &content))
	assert.Equal(t, "234", content["content"])

	rec = do(t, server, "GET", "/v2/texts/E1", "K", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Heart Sutra")

	// Missing alignments answer 404; other annotation kinds delete as no-ops.
	assert.Equal(t, http.StatusNotFound, do(t, server, "DELETE", "/v2/annotations/alignment/A9", "K", "", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, server, "DELETE", "/v2/annotations/segmentation/S9", "K", "", "").Code)
}

func TestTenantBoundKeyScenario(t *testing.T) {
	f := newFixture()
	f.principals["KA"] = &entities.Principal{KeyID: "k2", Name: "app", Application: "tenantA"}
	server := newServer(f)

	assert.Equal(t, http.StatusOK, do(t, server, "GET", "/v2/categories/", "KA", "tenantA", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, server, "GET", "/v2/categories/", "KA", "tenantB", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, server, "GET", "/v2/categories/", "KA", "", "").Code)
}
