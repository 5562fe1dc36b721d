package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/pkg/common"
	apperrors "textgraph/pkg/errors"
	"textgraph/pkg/utils"
)

// AnnotationStore is the persistence surface the annotation handler needs
type AnnotationStore interface {
	Add(ctx context.Context, manifestationID string, input entities.AnnotationInput) (string, error)
	GetSegmentation(ctx context.Context, id string) (*entities.Segmentation, error)
	GetAlignment(ctx context.Context, id string) (*entities.Alignment, error)
	GetNote(ctx context.Context, id string) (*entities.Note, error)
	GetBibliography(ctx context.Context, id string) (*entities.Bibliography, error)
	DeleteSegmentation(ctx context.Context, id string) error
	DeleteAlignment(ctx context.Context, id string) error
	UpdateAlignment(ctx context.Context, id string, input *entities.AlignmentInput) (string, error)
	DeleteNote(ctx context.Context, id string) error
	DeleteBibliography(ctx context.Context, id string) error
}

// AnnotationHandler serves /v2/annotations/{kind}. The kind URL segment
// selects the layer; payloads carry the matching variant.
type AnnotationHandler struct {
	annotations AnnotationStore
	indexer     IndexNotifier
	logger      *zap.Logger
}

// NewAnnotationHandler creates an AnnotationHandler
func NewAnnotationHandler(annotations AnnotationStore, indexer IndexNotifier, logger *zap.Logger) *AnnotationHandler {
	return &AnnotationHandler{annotations: annotations, indexer: indexer, logger: logger}
}

func annotationKind(r *http.Request) (entities.AnnotationKind, error) {
	kind := entities.AnnotationKind(chi.URLParam(r, "kind"))
	if !kind.IsValid() {
		return "", apperrors.NewInvalidRequestError("unknown annotation kind " + string(kind))
	}
	return kind, nil
}

// CreateAnnotationRequest is the POST /v2/annotations/{kind} payload
type CreateAnnotationRequest struct {
	ManifestationID string `json:"manifestation_id" validate:"required"`
	annotationFields
}

// input assembles the tagged variant matching the URL kind
func (req *CreateAnnotationRequest) input(kind entities.AnnotationKind) (entities.AnnotationInput, error) {
	in := entities.AnnotationInput{
		Type:         kind,
		Segmentation: req.Segmentation,
		Pagination:   req.Pagination,
		Alignment:    req.Alignment,
		Notes:        req.Durchen,
		Bibliography: req.Bibliography,
	}
	if err := in.CheckVariant(); err != nil {
		return entities.AnnotationInput{}, apperrors.NewUnprocessableError(err.Error())
	}
	return in, nil
}

// CreateAnnotation handles POST /v2/annotations/{kind}
func (h *AnnotationHandler) CreateAnnotation(w http.ResponseWriter, r *http.Request) {
	kind, err := annotationKind(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	var req CreateAnnotationRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}
	input, err := req.input(kind)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	id, err := h.annotations.Add(r.Context(), req.ManifestationID, input)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	h.indexer.Notify(req.ManifestationID, string(kind))
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetAnnotation handles GET /v2/annotations/{kind}/{id}
func (h *AnnotationHandler) GetAnnotation(w http.ResponseWriter, r *http.Request) {
	kind, err := annotationKind(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")

	var result interface{}
	switch kind {
	case entities.AnnotationKindSegmentation, entities.AnnotationKindPagination:
		result, err = h.annotations.GetSegmentation(r.Context(), id)
	case entities.AnnotationKindAlignment:
		result, err = h.annotations.GetAlignment(r.Context(), id)
	case entities.AnnotationKindDurchen:
		result, err = h.annotations.GetNote(r.Context(), id)
	case entities.AnnotationKindBibliography:
		result, err = h.annotations.GetBibliography(r.Context(), id)
	}
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateAlignmentRequest is the PUT /v2/annotations/alignment/{id} payload
type UpdateAlignmentRequest struct {
	Alignment *entities.AlignmentInput `json:"alignment" validate:"required"`
}

// UpdateAnnotation handles PUT /v2/annotations/{kind}/{id}. Only alignments
// support update; it replaces both halves of the pair.
func (h *AnnotationHandler) UpdateAnnotation(w http.ResponseWriter, r *http.Request) {
	kind, err := annotationKind(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if kind != entities.AnnotationKindAlignment {
		common.RespondError(w, apperrors.NewInvalidRequestError("only alignment annotations can be updated"))
		return
	}
	var req UpdateAlignmentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	newID, err := h.annotations.UpdateAlignment(r.Context(), chi.URLParam(r, "id"), req.Alignment)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": newID})
}

// DeleteAnnotation handles DELETE /v2/annotations/{kind}/{id}. Idempotent
// for every kind except alignment, which answers 404 when the pair is
// absent because the peer side cannot be verified.
func (h *AnnotationHandler) DeleteAnnotation(w http.ResponseWriter, r *http.Request) {
	kind, err := annotationKind(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")

	switch kind {
	case entities.AnnotationKindSegmentation, entities.AnnotationKindPagination:
		err = h.annotations.DeleteSegmentation(r.Context(), id)
	case entities.AnnotationKindAlignment:
		err = h.annotations.DeleteAlignment(r.Context(), id)
	case entities.AnnotationKindDurchen:
		err = h.annotations.DeleteNote(r.Context(), id)
	case entities.AnnotationKindBibliography:
		err = h.annotations.DeleteBibliography(r.Context(), id)
	}
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondNoContent(w)
}
