package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	commonerrors "github.com/AlibekovAA/tasklist/backend/internal/common/errors"
)

type ErrorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

var ErrInvalidJSON = commonerrors.NewDomainError(
	CodeInvalidJSON,
	commonerrors.CategoryValidation,
	http.StatusBadRequest,
	"Invalid JSON",
)

var ErrRequestTooLarge = commonerrors.NewDomainError(
	CodeRequestTooLarge,
	commonerrors.CategoryValidation,
	http.StatusRequestEntityTooLarge,
	"Request body too large",
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteSuccess(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func WriteErrorEnvelope(w http.ResponseWriter, status int, code, message, traceID string) {
	WriteJSON(w, status, ErrorEnvelope{Error: message, Code: code, TraceID: traceID})
}

// DecodeJSON decodes the request body into v. An empty body decodes as the
// zero value so that presence checks report missing fields instead of bad JSON.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.Is(err, errBodyTooLarge):
		return ErrRequestTooLarge.WithCause(err)
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrRequestTooLarge.WithCause(err)
		}
		return ErrInvalidJSON.WithCause(err)
	}
}

// GetClientIP prefers proxy headers over the socket address.
func GetClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Real-IP")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
		if idx := strings.Index(ip, ","); idx != -1 {
			ip = strings.TrimSpace(ip[:idx])
		}
	}
	if ip == "" {
		ip = r.RemoteAddr
		if idx := strings.LastIndex(ip, ":"); idx != -1 {
			ip = ip[:idx]
		}
	}
	return ip
}
