package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/interfaces/http/rest/middleware"
	"textgraph/pkg/common"
	apperrors "textgraph/pkg/errors"
	"textgraph/pkg/utils"
)

// CategoryStore is the persistence surface the category handler needs
type CategoryStore interface {
	Create(ctx context.Context, input *entities.CreateCategoryInput) (string, error)
	List(ctx context.Context, application, parentID string) ([]entities.Category, error)
}

// CategoryHandler serves the /v2/categories resource. Every operation is
// scoped to one application; the X-Application header selects it, falling
// back to the application the caller's key is bound to.
type CategoryHandler struct {
	categories CategoryStore
	logger     *zap.Logger
}

// NewCategoryHandler creates a CategoryHandler
func NewCategoryHandler(categories CategoryStore, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

func applicationScope(r *http.Request) (string, error) {
	if application := r.Header.Get(middleware.HeaderApplication); application != "" {
		return application, nil
	}
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok && principal.Application != "" {
		return principal.Application, nil
	}
	return "", apperrors.NewInvalidRequestError("an application scope is required; set the " + middleware.HeaderApplication + " header")
}

// CreateCategoryRequest is the POST /v2/categories payload
type CreateCategoryRequest struct {
	ParentID  string              `json:"parent_id,omitempty"`
	Title     map[string]string   `json:"title" validate:"required,min=1"`
	AltTitles []map[string]string `json:"alt_titles,omitempty"`
}

// CreateCategory handles POST /v2/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	application, err := applicationScope(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	var req CreateCategoryRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	id, err := h.categories.Create(r.Context(), &entities.CreateCategoryInput{
		Application: application,
		ParentID:    req.ParentID,
		Title:       req.Title,
		AltTitles:   req.AltTitles,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListCategories handles GET /v2/categories. Without parent_id it lists the
// application's roots; with parent_id, that category's direct children.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	application, err := applicationScope(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	categories, err := h.categories.List(r.Context(), application, r.URL.Query().Get("parent_id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, categories)
}
