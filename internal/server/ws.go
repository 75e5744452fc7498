package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/parlorgames/clueless/internal/clueless"
)

var errUnknownEvent = errors.New("unknown event")

// wsCommand is the inbound half of the envelope protocol: the client
// identifies itself once via its session token, then sends
// {playerId, event, payload} lines and receives the same envelope back.
type wsCommand struct {
	PlayerID string          `json:"playerId"`
	Event    string          `json:"event"`
	Payload  json.RawMessage `json:"payload"`
}

// handleWS runs the bidirectional game channel: inbound envelopes are
// dispatched as commands, outbound state events addressed to this player
// are forwarded from the broker.
func handleWS(logger *slog.Logger, broker *Broker, archive Archive) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := instanceFrom(r)
		playerID := playerFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 4*time.Hour)
		defer cancel()

		ch := broker.Subscribe(in.ID, playerID)
		defer broker.Unsubscribe(in.ID, playerID, ch)

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case data := <-ch:
					if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
						logger.Debug("websocket write failed", "error", err)
						cancel()
						return
					}
				}
			}
		}()

		for {
			_, msg, err := conn.Read(ctx)
			if err != nil {
				logger.Debug("websocket read ended", "error", err)
				return
			}

			var cmd wsCommand
			if err := json.Unmarshal(msg, &cmd); err != nil {
				writeWSError(ctx, conn, playerID, "malformed envelope")
				continue
			}

			if err := dispatchWSCommand(in, playerID, cmd); err != nil {
				writeWSError(ctx, conn, playerID, err.Error())
				continue
			}

			broadcastState(broker, in)
			archiveIfEnded(ctx, logger, archive, in)
		}
	}
}

// dispatchWSCommand maps an envelope event onto the engine's command
// surface. The session token decides who is acting; a playerId inside the
// envelope naming someone else is rejected.
func dispatchWSCommand(in *Instance, playerID string, cmd wsCommand) error {
	if cmd.PlayerID != "" && cmd.PlayerID != playerID {
		return errNoSession
	}

	switch cmd.Event {
	case "chooseSuspect":
		var p SuspectRequest
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return err
		}
		return in.Do(func(g *clueless.Game) error {
			return g.ChooseSuspect(playerID, p.Suspect)
		})
	case "startGame":
		err := in.Do(func(g *clueless.Game) error { return g.StartGame() })
		if err == nil {
			in.MarkStarted()
		}
		return err
	case "move":
		var p MoveRequest
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return err
		}
		return in.Do(func(g *clueless.Game) error {
			return g.MovePlayer(playerID, p.Destination)
		})
	case "passTurn":
		return in.Do(func(g *clueless.Game) error { return g.PassTurn(playerID) })
	case "proposeSuggestion":
		var p SuggestionRequest
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return err
		}
		return in.Do(func(g *clueless.Game) error {
			return g.ProposeSuggestion(playerID, p.Suspect, p.Weapon)
		})
	case "disproveSuggestion":
		var p DisproofRequest
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return err
		}
		return in.Do(func(g *clueless.Game) error {
			return g.DisproveSuggestion(playerID, p.Card, p.CannotDisprove)
		})
	case "proposeAccusation":
		var p AccusationRequest
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return err
		}
		return in.Do(func(g *clueless.Game) error {
			return g.ProposeAccusation(playerID, p.Suspect, p.Weapon, p.Room)
		})
	case "removePlayer":
		return in.Leave(playerID)
	}
	return errUnknownEvent
}

func writeWSError(ctx context.Context, conn *websocket.Conn, playerID, msg string) {
	data, _ := json.Marshal(Event{
		PlayerID: playerID,
		Event:    "error",
		Payload:  map[string]string{"message": msg},
	})
	conn.Write(ctx, websocket.MessageText, data)
}
