package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/pkg/common"
	apperrors "textgraph/pkg/errors"
	"textgraph/pkg/utils"
)

// EditionStore is the persistence surface the edition handler needs
type EditionStore interface {
	Create(ctx context.Context, input *entities.CreateManifestationInput) (string, error)
	Get(ctx context.Context, id string) (*entities.Manifestation, error)
	List(ctx context.Context, expressionID string, mType entities.ManifestationType) ([]entities.Manifestation, error)
	GetContent(ctx context.Context, id string, start, end int, sliced bool) (string, error)
	Update(ctx context.Context, id string, input *entities.UpdateManifestationInput) error
	UpdateContent(ctx context.Context, id string, start, end int, replaceAll bool, content string) error
	Delete(ctx context.Context, id string) error
}

// RelatedExpressionStore serves the related-expressions walk
type RelatedExpressionStore interface {
	Related(ctx context.Context, manifestationID string, exprType entities.ExpressionType) ([]entities.Expression, error)
}

// RelatedSegmentStore serves the related-segments traversal
type RelatedSegmentStore interface {
	Related(ctx context.Context, query RelatedSegmentQuery) ([]entities.RelatedSegment, error)
}

// RelatedSegmentQuery mirrors graph.RelatedQuery at the handler boundary
type RelatedSegmentQuery struct {
	ManifestationID string
	SegmentID       string
	Start           int
	End             int
	HasSpan         bool
	Transfer        bool
}

// IndexNotifier receives fire-and-forget change events
type IndexNotifier interface {
	Notify(manifestationID, kind string)
}

// EditionHandler serves /v2/texts/{id}/instances and /v2/editions
type EditionHandler struct {
	editions    EditionStore
	expressions RelatedExpressionStore
	segments    RelatedSegmentStore
	indexer     IndexNotifier
	logger      *zap.Logger
}

// NewEditionHandler creates an EditionHandler
func NewEditionHandler(editions EditionStore, expressions RelatedExpressionStore, segments RelatedSegmentStore, indexer IndexNotifier, logger *zap.Logger) *EditionHandler {
	return &EditionHandler{
		editions:    editions,
		expressions: expressions,
		segments:    segments,
		indexer:     indexer,
		logger:      logger,
	}
}

// MetadataRequest carries an edition's scalar and incipit-title fields
type MetadataRequest struct {
	Type             string              `json:"type" validate:"required"`
	BdrcID           string              `json:"bdrc,omitempty"`
	WikidataID       string              `json:"wikidata,omitempty"`
	Source           string              `json:"source,omitempty"`
	Colophon         string              `json:"colophon,omitempty"`
	IncipitTitle     map[string]string   `json:"incipit_title,omitempty"`
	IncipitAltTitles []map[string]string `json:"incipit_alt_titles,omitempty"`
}

func (m *MetadataRequest) toEntity() entities.ManifestationMetadata {
	return entities.ManifestationMetadata{
		Type:             entities.ManifestationType(m.Type),
		BdrcID:           m.BdrcID,
		WikidataID:       m.WikidataID,
		Source:           m.Source,
		Colophon:         m.Colophon,
		IncipitTitle:     m.IncipitTitle,
		IncipitAltTitles: m.IncipitAltTitles,
	}
}

// annotationFields are the optional initial layers of a create or update
// payload, one field per kind.
type annotationFields struct {
	Segmentation *entities.SegmentationInput  `json:"segmentation,omitempty"`
	Pagination   *entities.PaginationInput    `json:"pagination,omitempty"`
	Alignment    *entities.AlignmentInput     `json:"alignment,omitempty"`
	Durchen      []entities.NoteInput         `json:"durchen,omitempty"`
	Bibliography []entities.BibliographyInput `json:"bibliography,omitempty"`
}

func (a *annotationFields) toInputs() []entities.AnnotationInput {
	var inputs []entities.AnnotationInput
	if a.Segmentation != nil {
		inputs = append(inputs, entities.AnnotationInput{Type: entities.AnnotationKindSegmentation, Segmentation: a.Segmentation})
	}
	if a.Pagination != nil {
		inputs = append(inputs, entities.AnnotationInput{Type: entities.AnnotationKindPagination, Pagination: a.Pagination})
	}
	if a.Alignment != nil {
		inputs = append(inputs, entities.AnnotationInput{Type: entities.AnnotationKindAlignment, Alignment: a.Alignment})
	}
	if len(a.Durchen) > 0 {
		inputs = append(inputs, entities.AnnotationInput{Type: entities.AnnotationKindDurchen, Notes: a.Durchen})
	}
	if len(a.Bibliography) > 0 {
		inputs = append(inputs, entities.AnnotationInput{Type: entities.AnnotationKindBibliography, Bibliography: a.Bibliography})
	}
	return inputs
}

// CreateEditionRequest is the POST /v2/texts/{id}/instances payload
type CreateEditionRequest struct {
	Content  string          `json:"content" validate:"required"`
	Metadata MetadataRequest `json:"metadata" validate:"required"`
	annotationFields
}

// CreateEdition handles POST /v2/texts/{id}/instances
func (h *EditionHandler) CreateEdition(w http.ResponseWriter, r *http.Request) {
	var req CreateEditionRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	id, err := h.editions.Create(r.Context(), &entities.CreateManifestationInput{
		ExpressionID: chi.URLParam(r, "id"),
		Content:      req.Content,
		Metadata:     req.Metadata.toEntity(),
		Annotations:  req.toInputs(),
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	h.indexer.Notify(id, "created")
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListEditions handles GET /v2/texts/{id}/instances
func (h *EditionHandler) ListEditions(w http.ResponseWriter, r *http.Request) {
	mType := entities.ManifestationType(r.URL.Query().Get("type"))
	if mType != "" && !mType.IsValid() {
		common.RespondError(w, apperrors.NewInvalidRequestError("unknown type filter "+string(mType)))
		return
	}
	editions, err := h.editions.List(r.Context(), chi.URLParam(r, "id"), mType)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, editions)
}

// spanParams parses the optional span_start/span_end query pair. Both must
// be present or both absent.
func spanParams(r *http.Request) (start, end int, present bool, err error) {
	rawStart := r.URL.Query().Get("span_start")
	rawEnd := r.URL.Query().Get("span_end")
	if rawStart == "" && rawEnd == "" {
		return 0, 0, false, nil
	}
	if rawStart == "" || rawEnd == "" {
		return 0, 0, false, apperrors.NewInvalidRequestError("span_start and span_end must be supplied together")
	}
	start, err = strconv.Atoi(rawStart)
	if err != nil {
		return 0, 0, false, apperrors.NewInvalidRequestError("span_start must be an integer")
	}
	end, err = strconv.Atoi(rawEnd)
	if err != nil {
		return 0, 0, false, apperrors.NewInvalidRequestError("span_end must be an integer")
	}
	if start < 0 || end < start {
		return 0, 0, false, apperrors.NewInvalidRequestError("span must satisfy 0 <= start <= end")
	}
	return start, end, true, nil
}

// GetContent handles GET /v2/editions/{id}/content
func (h *EditionHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	start, end, sliced, err := spanParams(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	content, err := h.editions.GetContent(r.Context(), chi.URLParam(r, "id"), start, end, sliced)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"content": content})
}

// UpdateContentRequest is the PUT /v2/editions/{id}/content payload. When
// span is omitted the whole base text is replaced.
type UpdateContentRequest struct {
	Content string `json:"content"`
	Span    *struct {
		Start int `json:"start"`
		End   int `json:"end"`
	} `json:"span,omitempty"`
}

// UpdateContent handles PUT /v2/editions/{id}/content. Anchored spans are
// relocated in the same transaction.
func (h *EditionHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var req UpdateContentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}

	id := chi.URLParam(r, "id")
	var start, end int
	replaceAll := req.Span == nil
	if req.Span != nil {
		start, end = req.Span.Start, req.Span.End
	}
	if err := h.editions.UpdateContent(r.Context(), id, start, end, replaceAll, req.Content); err != nil {
		common.RespondError(w, err)
		return
	}
	h.indexer.Notify(id, "content")
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": id})
}

// GetMetadata handles GET /v2/editions/{id}/metadata
func (h *EditionHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	edition, err := h.editions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, edition)
}

// UpdateEditionRequest is the PUT /v2/editions/{id}/metadata payload: the
// new metadata plus the full replacement annotation subgraph.
type UpdateEditionRequest struct {
	Metadata MetadataRequest `json:"metadata" validate:"required"`
	annotationFields
}

// UpdateMetadata handles PUT /v2/editions/{id}/metadata
func (h *EditionHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var req UpdateEditionRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.editions.Update(r.Context(), id, &entities.UpdateManifestationInput{
		Metadata:    req.Metadata.toEntity(),
		Annotations: req.toInputs(),
	}); err != nil {
		common.RespondError(w, err)
		return
	}
	h.indexer.Notify(id, "metadata")
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": id})
}

// DeleteEdition handles DELETE /v2/editions/{id}
func (h *EditionHandler) DeleteEdition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.editions.Delete(r.Context(), id); err != nil {
		common.RespondError(w, err)
		return
	}
	h.indexer.Notify(id, "deleted")
	common.RespondNoContent(w)
}

// GetRelated handles GET /v2/editions/{id}/related
func (h *EditionHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	exprType := entities.ExpressionType(r.URL.Query().Get("type"))
	if exprType != "" && !exprType.IsValid() {
		common.RespondError(w, apperrors.NewInvalidRequestError("unknown type filter "+string(exprType)))
		return
	}
	related, err := h.expressions.Related(r.Context(), chi.URLParam(r, "id"), exprType)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	grouped := map[string][]entities.Expression{}
	for _, expr := range related {
		grouped[string(expr.Type)] = append(grouped[string(expr.Type)], expr)
	}
	common.RespondJSON(w, http.StatusOK, grouped)
}

// GetSegmentRelated handles GET /v2/editions/{id}/segment-related. Takes
// segment_id xor span_start+span_end, plus an optional transform flag.
func (h *EditionHandler) GetSegmentRelated(w http.ResponseWriter, r *http.Request) {
	start, end, hasSpan, err := spanParams(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	transfer := false
	if raw := r.URL.Query().Get("transform"); raw != "" {
		transfer, err = strconv.ParseBool(raw)
		if err != nil {
			common.RespondError(w, apperrors.NewInvalidRequestError("transform must be a boolean"))
			return
		}
	}

	related, err := h.segments.Related(r.Context(), RelatedSegmentQuery{
		ManifestationID: chi.URLParam(r, "id"),
		SegmentID:       r.URL.Query().Get("segment_id"),
		Start:           start,
		End:             end,
		HasSpan:         hasSpan,
		Transfer:        transfer,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, related)
}
