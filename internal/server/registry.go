package server

import (
	"errors"
	"sync"
)

var ErrGameNotFound = errors.New("game not found")

// Registry holds every live game instance by id.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*Instance
}

func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]*Instance),
	}
}

// Create opens a fresh game instance and registers it.
func (r *Registry) Create() *Instance {
	in := newInstance()
	r.mu.Lock()
	r.games[in.ID] = in
	r.mu.Unlock()
	return in
}

// Get resolves an instance by id.
func (r *Registry) Get(id string) (*Instance, error) {
	r.mu.RLock()
	in, ok := r.games[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotFound
	}
	return in, nil
}

// Remove discards a live instance.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.games, id)
	r.mu.Unlock()
}

// List returns every live instance.
func (r *Registry) List() []*Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Instance, 0, len(r.games))
	for _, in := range r.games {
		all = append(all, in)
	}
	return all
}
