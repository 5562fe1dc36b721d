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

// PersonStore is the persistence surface the person handler needs
type PersonStore interface {
	Create(ctx context.Context, input *entities.CreatePersonInput) (string, error)
	Get(ctx context.Context, id string) (*entities.Person, error)
	List(ctx context.Context, limit, offset int) ([]entities.Person, error)
	Delete(ctx context.Context, id string) error
}

// PersonHandler serves the /v2/persons resource
type PersonHandler struct {
	persons PersonStore
	logger  *zap.Logger
}

// NewPersonHandler creates a PersonHandler
func NewPersonHandler(persons PersonStore, logger *zap.Logger) *PersonHandler {
	return &PersonHandler{persons: persons, logger: logger}
}

// CreatePersonRequest is the POST /v2/persons payload
type CreatePersonRequest struct {
	BdrcID   string              `json:"bdrc_id,omitempty"`
	Name     map[string]string   `json:"name" validate:"required,min=1"`
	AltNames []map[string]string `json:"alt_names,omitempty"`
}

// CreatePerson handles POST /v2/persons
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, apperrors.NewUnprocessableError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	id, err := h.persons.Create(r.Context(), &entities.CreatePersonInput{
		BdrcID:   req.BdrcID,
		Name:     req.Name,
		AltNames: req.AltNames,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetPerson handles GET /v2/persons/{id}
func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	person, err := h.persons.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, person)
}

// ListPersons handles GET /v2/persons
func (h *PersonHandler) ListPersons(w http.ResponseWriter, r *http.Request) {
	params, err := common.ExtractListParams(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	persons, err := h.persons.List(r.Context(), params.Limit, params.Offset)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, persons)
}

// DeletePerson handles DELETE /v2/persons/{id}. Refused while the person
// still has contributions.
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	if err := h.persons.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondNoContent(w)
}
