package server

import (
	"net/http"
	"strings"

	"github.com/parlorgames/clueless/internal/clueless"
)

// CreateGameResponse is returned for POST /api/games.
type CreateGameResponse struct {
	GameID string `json:"gameId"`
}

func handleCreateGame(games *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := games.Create()
		writeJSON(w, http.StatusCreated, CreateGameResponse{GameID: in.ID})
	}
}

// GameSummary is one entry of the live-game listing.
type GameSummary struct {
	GameID            string          `json:"gameId"`
	Status            clueless.Status `json:"status"`
	Players           int             `json:"players"`
	AvailableSuspects []string        `json:"availableSuspects"`
}

func handleListGames(games *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries := []GameSummary{}
		for _, in := range games.List() {
			in.Do(func(g *clueless.Game) error {
				summaries = append(summaries, GameSummary{
					GameID:            in.ID,
					Status:            g.Status(),
					Players:           len(g.Roster().Humans()),
					AvailableSuspects: g.GameState().AvailableSuspects,
				})
				return nil
			})
		}
		writeJSON(w, http.StatusOK, summaries)
	}
}

// JoinRequest is the request body for POST /api/games/{game}/join.
type JoinRequest struct {
	PlayerID string `json:"playerId"`
}

// JoinResponse carries the session token the player uses on every further
// request.
type JoinResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
	GameID   string `json:"gameId"`
}

func handleJoin(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.PlayerID = strings.TrimSpace(req.PlayerID)
		if req.PlayerID == "" {
			writeError(w, http.StatusBadRequest, "playerId is required")
			return
		}

		in := instanceFrom(r)
		token, err := in.Join(req.PlayerID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		broadcastState(broker, in)
		writeJSON(w, http.StatusOK, JoinResponse{
			Token:    token,
			PlayerID: req.PlayerID,
			GameID:   in.ID,
		})
	}
}

func handleLeave(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := instanceFrom(r)
		if err := in.Leave(playerFrom(r)); err != nil {
			writeGameError(w, err)
			return
		}
		broadcastState(broker, in)
		w.WriteHeader(http.StatusNoContent)
	}
}
