package server

import (
	"context"
	"log/slog"

	"github.com/parlorgames/clueless/internal/clueless"
)

// StateSnapshot is what one player is allowed to see. The shared views are
// identical for everyone; hand, checklist, message, and the option lists
// are scoped to the recipient.
type StateSnapshot struct {
	Game              clueless.GameStateView           `json:"game"`
	Board             map[string][]string              `json:"board"`
	Players           []clueless.PlayerStateView       `json:"players"`
	MoveOptions       []string                         `json:"moveOptions"`
	SuggestionOptions *clueless.OptionsView            `json:"suggestionOptions,omitempty"`
	AccusationOptions *clueless.OptionsView            `json:"accusationOptions,omitempty"`
	Checklist         map[clueless.Category][]string   `json:"checklist"`
	Hand              []string                         `json:"hand"`
	Message           clueless.MessageView             `json:"message"`
}

// snapshotFor assembles the per-recipient state. Must run under the
// instance lock.
func snapshotFor(g *clueless.Game, playerID string) StateSnapshot {
	snap := StateSnapshot{
		Game:      g.GameState(),
		Board:     g.BoardView(),
		Players:   g.PlayerStates(),
		Checklist: g.Checklists()[playerID],
		Hand:      g.HandContents(playerID),
		Message:   g.Messages()[playerID],
	}
	if moves, ok := g.MoveOptions()[playerID]; ok {
		snap.MoveOptions = moves
	} else {
		snap.MoveOptions = []string{}
	}
	if opts, ok := g.SuggestionOptions()[playerID]; ok {
		snap.SuggestionOptions = &opts
	}
	if opts, ok := g.AccusationOptions()[playerID]; ok {
		snap.AccusationOptions = &opts
	}
	return snap
}

// broadcastState publishes a fresh scoped snapshot to every human player
// after a successful command.
func broadcastState(broker *Broker, in *Instance) {
	in.Do(func(g *clueless.Game) error {
		for _, p := range g.Roster().Humans() {
			broker.Publish(in.ID, Event{
				PlayerID: p.ID,
				Event:    "state",
				Payload:  snapshotFor(g, p.ID),
			})
		}
		return nil
	})
}

// archiveIfEnded records the finished match once. Archival failures are
// logged, never surfaced to players: the game result already stands.
func archiveIfEnded(ctx context.Context, logger *slog.Logger, archive Archive, in *Instance) {
	var rec *MatchRecord
	in.Do(func(g *clueless.Game) error {
		if g.Status() != clueless.StatusEnd || g.Winner() == nil {
			return nil
		}
		rec = matchRecord(in, g)
		return nil
	})
	if rec == nil || !in.MarkArchived() {
		return
	}
	if err := archive.RecordMatch(ctx, *rec); err != nil {
		logger.Error("archiving finished match", "game_id", in.ID, "error", err)
	}
}
