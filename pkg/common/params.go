package common

import (
	"net/http"
	"strconv"

	apperrors "textgraph/pkg/errors"
)

// ListParams represents offset/limit list parameters
type ListParams struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

const (
	// DefaultLimit is applied when the caller omits ?limit
	DefaultLimit = 20
	// MaxLimit is the upper bound for ?limit
	MaxLimit = 100
)

// ExtractListParams extracts and validates limit/offset from the request.
// limit must be in [1, 100] and offset must be >= 0.
func ExtractListParams(r *http.Request) (ListParams, error) {
	params := ListParams{Limit: DefaultLimit, Offset: 0}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, apperrors.NewInvalidRequestError("limit must be an integer")
		}
		if limit < 1 || limit > MaxLimit {
			return params, apperrors.NewInvalidRequestError("limit must be between 1 and 100")
		}
		params.Limit = limit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return params, apperrors.NewInvalidRequestError("offset must be an integer")
		}
		if offset < 0 {
			return params, apperrors.NewInvalidRequestError("offset must not be negative")
		}
		params.Offset = offset
	}

	return params, nil
}
