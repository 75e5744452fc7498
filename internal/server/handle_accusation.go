package server

import (
	"log/slog"
	"net/http"

	"github.com/parlorgames/clueless/internal/clueless"
)

// AccusationRequest is the full solution claim.
type AccusationRequest struct {
	Suspect string `json:"suspect"`
	Weapon  string `json:"weapon"`
	Room    string `json:"room"`
}

// AccusationResponse tells the accuser how it went. Everyone else learns
// the outcome from the state broadcast.
type AccusationResponse struct {
	Correct bool            `json:"correct"`
	Status  clueless.Status `json:"gameStatus"`
}

func handleAccuse(logger *slog.Logger, broker *Broker, archive Archive) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AccusationRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		in := instanceFrom(r)
		playerID := playerFrom(r)
		var resp AccusationResponse
		if err := in.Do(func(g *clueless.Game) error {
			if err := g.ProposeAccusation(playerID, req.Suspect, req.Weapon, req.Room); err != nil {
				return err
			}
			resp.Status = g.Status()
			resp.Correct = g.Winner() != nil && g.Winner().ID == playerID
			return nil
		}); err != nil {
			writeGameError(w, err)
			return
		}

		broadcastState(broker, in)
		archiveIfEnded(r.Context(), logger, archive, in)
		writeJSON(w, http.StatusOK, resp)
	}
}
