package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/wire"
)

// maxBodyBytes caps request bodies. Avatar uploads carry base64 image data,
// so the cap sits well above the decoded image limit.
const maxBodyBytes = 8 << 20

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondError writes the flat error body every endpoint uses, mapping
// domain.AppError to its status code.
func RespondError(w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		RespondJSON(w, appErr.Status, wire.ErrorResponse{Error: appErr.Message})
		return
	}
	RespondJSON(w, http.StatusInternalServerError, wire.ErrorResponse{Error: "Internal server error"})
}

// MethodNotAllowed answers unsupported methods with the JSON error body
// instead of the router's plain-text default.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RespondError(w, domain.ErrMethodNotAllowed())
}

// ReadBody reads a size-capped request body for action dispatch.
func ReadBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

// DecodeJSON reads and decodes a JSON request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
}

// ClientIP extracts the caller's address, preferring X-Forwarded-For.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if i := strings.LastIndex(r.RemoteAddr, ":"); i >= 0 {
		return r.RemoteAddr[:i]
	}
	return r.RemoteAddr
}
