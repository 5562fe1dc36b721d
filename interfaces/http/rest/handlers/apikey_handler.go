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

// APIKeyStore is the persistence surface the api-key handler needs
type APIKeyStore interface {
	Create(ctx context.Context, input *entities.CreateAPIKeyInput) (string, string, error)
	List(ctx context.Context) ([]entities.APIKey, error)
	Revoke(ctx context.Context, id string) error
	Rotate(ctx context.Context, id string) (string, error)
}

// APIKeyHandler serves the /v2/api-keys resource
type APIKeyHandler struct {
	keys   APIKeyStore
	logger *zap.Logger
}

// NewAPIKeyHandler creates an APIKeyHandler
func NewAPIKeyHandler(keys APIKeyStore, logger *zap.Logger) *APIKeyHandler {
	return &APIKeyHandler{keys: keys, logger: logger}
}

// CreateAPIKeyRequest is the POST /v2/api-keys payload
type CreateAPIKeyRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Application string `json:"application,omitempty"`
}

// CreateAPIKey handles POST /v2/api-keys. The raw key appears only in this
// response; afterwards only its hash is stored.
func (h *APIKeyHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req CreateAPIKeyRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	id, rawKey, err := h.keys.Create(r.Context(), &entities.CreateAPIKeyInput{
		Name:        req.Name,
		Email:       req.Email,
		Application: req.Application,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": id, "key": rawKey})
}

// ListAPIKeys handles GET /v2/api-keys. Hashes are never included.
func (h *APIKeyHandler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.keys.List(r.Context())
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, keys)
}

// RevokeAPIKey handles DELETE /v2/api-keys/{id}
func (h *APIKeyHandler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := h.keys.Revoke(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondNoContent(w)
}

// RotateAPIKey handles POST /v2/api-keys/{id}/rotate. The old raw key stops
// working immediately; the new one appears only in this response.
func (h *APIKeyHandler) RotateAPIKey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rawKey, err := h.keys.Rotate(r.Context(), id)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": id, "key": rawKey})
}
