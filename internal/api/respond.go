package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
	"github.com/Pasindu991182/food-delivery-system/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxBodySize      = 1 << 20 // 1 MB

	// createAttempts bounds how often a creation that lost the race for a
	// sequential identifier is retried before the client gets a 409.
	createAttempts = 3
)

// listResponse wraps a paginated list response.
type listResponse[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func newListResponse[T any](items []T, total int, p store.Page) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Data: items, Total: total, Limit: p.Limit, Offset: p.Offset}
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps store and validation errors to responses. resource
// names the record in client-facing messages and op is logged for 500s.
func (s *Server) writeStoreError(w http.ResponseWriter, err error, resource, op string) {
	switch {
	case errors.Is(err, model.ErrInvalid):
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, store.ErrNotFound):
		s.writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, store.ErrConflict):
		s.writeError(w, http.StatusConflict, resource+" already exists")
	case errors.Is(err, store.ErrDuplicateID):
		s.writeError(w, http.StatusConflict, "could not assign an identifier, please retry")
	default:
		s.logger.Error(op+" "+resource, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to "+op+" "+resource)
	}
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), model.ErrInvalid.Error()+": ")
}

// decodeBody decodes a size-limited JSON request body into v, writing a 400
// on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// createWithRetry runs create until it succeeds, fails for a reason other
// than a sequential identifier collision, or runs out of attempts.
func (s *Server) createWithRetry(ctx context.Context, kind string, create func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= createAttempts; attempt++ {
		err = create(ctx)
		if !errors.Is(err, store.ErrDuplicateID) {
			return err
		}
		s.logger.Warn("sequential id collision", "kind", kind, "attempt", attempt)
	}
	return err
}

// parsePage reads limit and offset query parameters, clamping them to sane values.
func parsePage(r *http.Request) store.Page {
	limit := parseIntQuery(r, "limit", defaultListLimit)
	offset := parseIntQuery(r, "offset", 0)

	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return store.Page{Limit: limit, Offset: offset}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
