package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/logging"
	"github.com/rshade/ecofocus/internal/recipe"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Key   string `json:"key,omitempty"`
}

// writeError maps simulation errors to a status code. Lookup and constraint
// errors are the client's fault; anything else is logged and hidden.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		constraint *recipe.ConstraintError
		lookup     *catalog.LookupError
	)
	switch {
	case errors.As(err, &constraint):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Field: constraint.Field,
		})
	case errors.As(err, &lookup):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Kind:  string(lookup.Kind),
			Key:   lookup.Key,
		})
	default:
		ctx := r.Context()
		logging.FromContext(ctx).Error().Ctx(ctx).
			Str("component", "server").
			Err(err).
			Str("path", r.URL.Path).
			Msg("simulation failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
