package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/domain/core/valueobjects"
	"textgraph/pkg/common"
	apperrors "textgraph/pkg/errors"
	"textgraph/pkg/utils"
)

const maxBodyBytes = 10 << 20

// ExpressionStore is the persistence surface the expression handler needs
type ExpressionStore interface {
	Create(ctx context.Context, input *entities.CreateExpressionInput) (string, bool, error)
	Get(ctx context.Context, id string) (*entities.Expression, error)
	List(ctx context.Context, filter entities.ExpressionFilter, limit, offset int) ([]entities.Expression, error)
	MergeTitle(ctx context.Context, id string, title map[string]string) error
}

// ExpressionHandler serves the /v2/texts resource
type ExpressionHandler struct {
	expressions ExpressionStore
	logger      *zap.Logger
}

// NewExpressionHandler creates an ExpressionHandler
func NewExpressionHandler(expressions ExpressionStore, logger *zap.Logger) *ExpressionHandler {
	return &ExpressionHandler{expressions: expressions, logger: logger}
}

// ContributionRequest is one contributor reference in a create payload
type ContributionRequest struct {
	PersonID     string `json:"person_id,omitempty"`
	PersonBdrcID string `json:"person_bdrc_id,omitempty"`
	AIID         string `json:"ai_id,omitempty"`
	Role         string `json:"role" validate:"required"`
}

// CreateExpressionRequest is the POST /v2/texts payload
type CreateExpressionRequest struct {
	BdrcID        string                `json:"bdrc_id,omitempty"`
	WikidataID    string                `json:"wikidata_id,omitempty"`
	Type          string                `json:"type" validate:"required"`
	Language      string                `json:"language" validate:"required"`
	Date          string                `json:"date,omitempty"`
	Title         map[string]string     `json:"title" validate:"required,min=1"`
	AltTitles     []map[string]string   `json:"alt_titles,omitempty"`
	License       string                `json:"license,omitempty"`
	Copyright     string                `json:"copyright,omitempty"`
	CategoryID    string                `json:"category_id,omitempty"`
	Contributions []ContributionRequest `json:"contributions,omitempty"`
	ParentID      string                `json:"parent_id,omitempty"`
}

// CreateExpression handles POST /v2/texts. Responds 201 with the new id, or
// 200 with the existing id when an external registry id already maps.
func (h *ExpressionHandler) CreateExpression(w http.ResponseWriter, r *http.Request) {
	var req CreateExpressionRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	input := &entities.CreateExpressionInput{
		BdrcID:      req.BdrcID,
		WikidataID:  req.WikidataID,
		Type:        entities.ExpressionType(req.Type),
		Language:    valueobjects.BaseLanguageCode(req.Language),
		LanguageTag: req.Language,
		Date:        req.Date,
		Title:       req.Title,
		AltTitles:   req.AltTitles,
		License:     entities.License(req.License),
		Copyright:   req.Copyright,
		CategoryID:  req.CategoryID,
		ParentID:    req.ParentID,
	}
	for _, c := range req.Contributions {
		input.Contributions = append(input.Contributions, entities.Contribution{
			PersonID:     c.PersonID,
			PersonBdrcID: c.PersonBdrcID,
			AIID:         c.AIID,
			Role:         c.Role,
		})
	}

	id, existing, err := h.expressions.Create(r.Context(), input)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	status := http.StatusCreated
	if existing {
		status = http.StatusOK
	}
	common.RespondJSON(w, status, map[string]string{"id": id})
}

// GetExpression handles GET /v2/texts/{id}
func (h *ExpressionHandler) GetExpression(w http.ResponseWriter, r *http.Request) {
	expr, err := h.expressions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, expr)
}

// ListExpressions handles GET /v2/texts
func (h *ExpressionHandler) ListExpressions(w http.ResponseWriter, r *http.Request) {
	params, err := common.ExtractListParams(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	filter := entities.ExpressionFilter{
		Type:     entities.ExpressionType(r.URL.Query().Get("type")),
		Language: r.URL.Query().Get("language"),
		Title:    r.URL.Query().Get("title"),
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		common.RespondError(w, apperrors.NewInvalidRequestError("unknown type filter "+string(filter.Type)))
		return
	}

	expressions, err := h.expressions.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, expressions)
}

// MergeTitle handles PUT /v2/texts/{id}/title. A merge, not a replace:
// languages absent from the payload keep their current text.
func (h *ExpressionHandler) MergeTitle(w http.ResponseWriter, r *http.Request) {
	var title map[string]string
	if err := common.ParseJSONBody(r, &title, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}
	if len(title) == 0 {
		common.RespondError(w, apperrors.NewInvalidRequestError("title entries are required"))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.expressions.MergeTitle(r.Context(), id, title); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": id})
}
