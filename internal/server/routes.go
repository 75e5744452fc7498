package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, games *Registry, broker *Broker, archive Archive, admin *AdminAuth, db *sql.DB) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Clue-Less API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	r.Post("/api/games", handleCreateGame(games))
	r.Get("/api/games", handleListGames(games))

	// Game routes — {game} resolved by gameMiddleware, the acting player
	// by their session token.
	r.Route("/api/games/{game}", func(r chi.Router) {
		r.Use(gameMiddleware(games))
		r.Post("/join", handleJoin(broker))

		r.Group(func(r chi.Router) {
			r.Use(playerMiddleware)
			r.Post("/leave", handleLeave(broker))
			r.Post("/suspect", handleChooseSuspect(broker))
			r.Post("/start", handleStartGame(broker))
			r.Post("/move", handleMove(broker))
			r.Post("/pass", handlePassTurn(broker))
			r.Post("/suggest", handleSuggest(broker))
			r.Post("/disprove", handleDisprove(broker))
			r.Post("/accuse", handleAccuse(logger, broker, archive))
			r.Get("/state", handleGameState())
			r.Get("/events", handleEvents(broker))
			r.Get("/ws", handleWS(logger, broker, archive))
		})
	})

	// Admin auth and match archive.
	r.Post("/api/admin/login", handleAdminLogin(admin))
	r.Post("/api/admin/logout", handleAdminLogout(admin))

	r.Route("/api/admin/matches", func(r chi.Router) {
		r.Use(adminAuthMiddleware(admin))
		r.Get("/", handleAdminListMatches(archive))
		r.Delete("/{matchID}", handleAdminDeleteMatch(archive))
	})
}
