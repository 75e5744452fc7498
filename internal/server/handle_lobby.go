package server

import (
	"net/http"
	"strings"

	"github.com/parlorgames/clueless/internal/clueless"
)

// SuspectRequest is the request body for POST /api/games/{game}/suspect.
type SuspectRequest struct {
	Suspect string `json:"suspect"`
}

func handleChooseSuspect(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SuspectRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Suspect = strings.TrimSpace(req.Suspect)
		if req.Suspect == "" {
			writeError(w, http.StatusBadRequest, "suspect is required")
			return
		}

		in := instanceFrom(r)
		playerID := playerFrom(r)
		if err := in.Do(func(g *clueless.Game) error {
			return g.ChooseSuspect(playerID, req.Suspect)
		}); err != nil {
			writeGameError(w, err)
			return
		}

		broadcastState(broker, in)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleStartGame(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := instanceFrom(r)
		if err := in.Do(func(g *clueless.Game) error {
			return g.StartGame()
		}); err != nil {
			writeGameError(w, err)
			return
		}
		in.MarkStarted()

		broadcastState(broker, in)
		w.WriteHeader(http.StatusNoContent)
	}
}
