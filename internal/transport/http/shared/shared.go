// Package shared holds the JSON plumbing every handler needs: response
// encoding and the single place where domain error codes become HTTP
// status codes.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "stargate/pkg/domain-errors"
)

// errorResponse is the uniform error body returned by every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into an HTTP response. Untyped
// errors surface as a generic 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	WriteJSON(w, statusFor(code), errorResponse{
		Error:   string(code),
		Message: dErrors.Message(err),
	})
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
