package server

import (
	"net/http"
	"strings"

	"github.com/parlorgames/clueless/internal/clueless"
)

// MoveRequest is the request body for POST /api/games/{game}/move.
type MoveRequest struct {
	Destination string `json:"destination"`
}

func handleMove(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MoveRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Destination = strings.TrimSpace(req.Destination)
		if req.Destination == "" {
			writeError(w, http.StatusBadRequest, "destination is required")
			return
		}

		in := instanceFrom(r)
		playerID := playerFrom(r)
		if err := in.Do(func(g *clueless.Game) error {
			return g.MovePlayer(playerID, req.Destination)
		}); err != nil {
			writeGameError(w, err)
			return
		}

		broadcastState(broker, in)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handlePassTurn(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := instanceFrom(r)
		playerID := playerFrom(r)
		if err := in.Do(func(g *clueless.Game) error {
			return g.PassTurn(playerID)
		}); err != nil {
			writeGameError(w, err)
			return
		}

		broadcastState(broker, in)
		w.WriteHeader(http.StatusNoContent)
	}
}
