package server

import (
	"net/http"

	"github.com/parlorgames/clueless/internal/clueless"
)

// SuggestionRequest names the suspect and weapon; the room is the
// suggester's current room.
type SuggestionRequest struct {
	Suspect string `json:"suspect"`
	Weapon  string `json:"weapon"`
}

func handleSuggest(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SuggestionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		in := instanceFrom(r)
		playerID := playerFrom(r)
		if err := in.Do(func(g *clueless.Game) error {
			return g.ProposeSuggestion(playerID, req.Suspect, req.Weapon)
		}); err != nil {
			writeGameError(w, err)
			return
		}

		broadcastState(broker, in)
		w.WriteHeader(http.StatusNoContent)
	}
}

// DisproofRequest answers an outstanding suggestion: either a card among
// the three named, or cannotDisprove.
type DisproofRequest struct {
	Card           string `json:"card"`
	CannotDisprove bool   `json:"cannotDisprove"`
}

func handleDisprove(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DisproofRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		in := instanceFrom(r)
		playerID := playerFrom(r)
		if err := in.Do(func(g *clueless.Game) error {
			return g.DisproveSuggestion(playerID, req.Card, req.CannotDisprove)
		}); err != nil {
			writeGameError(w, err)
			return
		}

		broadcastState(broker, in)
		w.WriteHeader(http.StatusNoContent)
	}
}
