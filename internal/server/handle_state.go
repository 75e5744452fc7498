package server

import (
	"net/http"

	"github.com/parlorgames/clueless/internal/clueless"
)

// handleGameState returns the full scoped snapshot for the requesting
// player: the shared views plus only their own hand, checklist, options,
// and message.
func handleGameState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := instanceFrom(r)
		playerID := playerFrom(r)

		var snap StateSnapshot
		in.Do(func(g *clueless.Game) error {
			snap = snapshotFor(g, playerID)
			return nil
		})
		writeJSON(w, http.StatusOK, snap)
	}
}
