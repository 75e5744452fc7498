package server

import (
	"encoding/json"
	"net/http"

	"github.com/parlorgames/clueless/internal/clueless"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeGameError maps the engine's error taxonomy onto HTTP statuses.
// Engine errors are recoverable and player-directed, so the message goes
// out as-is.
func writeGameError(w http.ResponseWriter, err error) {
	var status int
	switch clueless.KindOf(err) {
	case clueless.KindAuthorization:
		status = http.StatusForbidden
	case clueless.KindStateConflict:
		status = http.StatusConflict
	case clueless.KindRuleViolation:
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusBadRequest
	}
	writeError(w, status, err.Error())
}
