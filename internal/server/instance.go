package server

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/parlorgames/clueless/internal/clueless"
)

// Instance is one live match. The engine itself is single-threaded, so the
// mutex serializes commands: one runs to completion before the next is
// accepted. Independent instances share no mutable state and run fully in
// parallel.
type Instance struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	game     *clueless.Game
	sessions map[string]string // session token -> player id
	started  time.Time
	archived bool
}

func newInstance() *Instance {
	return &Instance{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		game: clueless.New(rand.New(rand.NewPCG(
			rand.Uint64(), rand.Uint64(),
		))),
		sessions: make(map[string]string),
	}
}

// Do runs one command or view against the engine under the instance lock.
func (in *Instance) Do(fn func(g *clueless.Game) error) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return fn(in.game)
}

// Join registers a player and issues their session token.
func (in *Instance) Join(playerID string) (string, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if err := in.game.RegisterPlayer(playerID); err != nil {
		return "", err
	}
	token := uuid.NewString()
	in.sessions[token] = playerID
	return token, nil
}

// PlayerFromToken resolves a session token to a player id.
func (in *Instance) PlayerFromToken(token string) (string, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	id, ok := in.sessions[token]
	return id, ok
}

// Leave removes the player and invalidates their sessions.
func (in *Instance) Leave(playerID string) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if err := in.game.RemovePlayer(playerID); err != nil {
		return err
	}
	for token, id := range in.sessions {
		if id == playerID {
			delete(in.sessions, token)
		}
	}
	return nil
}

// MarkStarted records the wall-clock start for the archive.
func (in *Instance) MarkStarted() {
	in.mu.Lock()
	in.started = time.Now().UTC()
	in.mu.Unlock()
}

// StartedAt returns the recorded start time.
func (in *Instance) StartedAt() time.Time {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.started
}

// MarkArchived flips the archived flag once; further calls return false so
// a finished game is only recorded one time.
func (in *Instance) MarkArchived() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.archived {
		return false
	}
	in.archived = true
	return true
}
