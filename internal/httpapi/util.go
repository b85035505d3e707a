package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dormhub/internal/docstore"
	"dormhub/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses: validation → 400,
// missing documents → 404, credentials/session → 401, failed remote writes →
// 502, everything else → 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var pe *service.PersistenceError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, docstore.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrBadCredentials), errors.Is(err, service.ErrSessionExpired):
		status = http.StatusUnauthorized
	case errors.As(err, &pe):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, Fail(err.Error()))
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(service.ErrValidation, err)
	}
	return nil
}

// pathID pulls the first path segment after prefix: pathID("/x/", "/x/42/y")
// is "42".
func pathID(prefix, path string) string {
	rest := strings.TrimPrefix(path, prefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func parseFloor(s string) *int {
	if s == "" {
		return nil
	}
	f, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &f
}
