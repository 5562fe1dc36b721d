package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundAppendsSuffix(t *testing.T) {
	err := NewNotFoundError("manifestation M1")

	assert.Equal(t, "manifestation M1 not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.True(t, IsNotFound(err))
}

func TestConstructorStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewInvalidRequestError("x").HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, NewUnprocessableError("x").HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, NewValidationError("x").HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, NewUnauthorizedError("").HTTPStatus)
	assert.Equal(t, http.StatusNotImplemented, NewNotImplementedError("x").HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("x").HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, NewExternalError("indexer", errors.New("down")).HTTPStatus)
}

func TestValidationAndUnprocessableAreDistinctTypes(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("x")))
	assert.False(t, IsValidation(NewUnprocessableError("x")))
}

func TestHTTPStatusDefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("wrapped: %w", NewNotFoundError("x"))))
}

func TestWrapKeepsAppErrorType(t *testing.T) {
	err := Wrap(NewNotFoundError("expression E1"), "create edition")

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "create edition: expression E1 not found", GetAppError(err).Message)
}

func TestWrapPlainErrorBecomesInternal(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, "context")

	appErr := GetAppError(err)
	assert.Equal(t, ErrorTypeInternal, appErr.Type)
	assert.True(t, errors.Is(err, cause))
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
}
