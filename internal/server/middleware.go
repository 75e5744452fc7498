package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type ctxKey int

const (
	ctxKeyInstance ctxKey = iota
	ctxKeyPlayer
)

var errNoSession = errors.New("no valid session")

// gameMiddleware resolves {game} against the registry and stores the live
// instance on the request context.
func gameMiddleware(games *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "game")
			in, err := games.Get(id)
			if err != nil {
				writeError(w, http.StatusNotFound, "game not found")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyInstance, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// playerMiddleware resolves the Bearer session token to a player id within
// the instance. Handlers behind it can trust playerFrom(r).
func playerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := playerFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyPlayer, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playerFromRequest(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		// The SSE and websocket endpoints cannot set headers from a browser
		// EventSource, so a token query parameter is accepted too.
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return "", errNoSession
	}
	id, ok := instanceFrom(r).PlayerFromToken(token)
	if !ok {
		return "", errNoSession
	}
	return id, nil
}

func instanceFrom(r *http.Request) *Instance {
	return r.Context().Value(ctxKeyInstance).(*Instance)
}

func playerFrom(r *http.Request) string {
	return r.Context().Value(ctxKeyPlayer).(string)
}
