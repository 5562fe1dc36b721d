package common

import (
	"encoding/json"
	"net/http"

	apperrors "textgraph/pkg/errors"
)

// ErrorInfo contains error details returned to clients
type ErrorInfo struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the envelope for failed requests
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondNoContent sends an empty 204 response
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError maps an error to its HTTP status and sends it
func RespondError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	info := ErrorInfo{
		Code:    string(apperrors.ErrorTypeInternal),
		Message: "internal error",
	}
	if appErr := apperrors.GetAppError(err); appErr != nil {
		info.Code = string(appErr.Type)
		info.Message = appErr.Message
		info.Details = appErr.Details
	}
	RespondJSON(w, status, ErrorResponse{Error: info})
}

// RespondErrorMessage sends an error response with an explicit status and message
func RespondErrorMessage(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorInfo{Code: code, Message: message}})
}

// ParseJSONBody parses a JSON request body with a size limit
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return err
	}

	return nil
}
