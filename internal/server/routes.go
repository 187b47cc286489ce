package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Millionaire API", "/openapi.json", "/docs"))
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Post("/api/login", handleLogin(deps.Store))
	r.Post("/api/logout", handleLogout(deps.Store))

	// Player routes, authenticated by session cookie or Bearer token.
	r.Group(func(r chi.Router) {
		r.Use(userAuthMiddleware(deps.Store))

		r.Get("/api/me", handleMe())
		r.Get("/api/users", handleListUsers(logger, deps.Store, deps.Leaderboard))
		r.Get("/api/users/{id}", handleGetUser(deps.Store))

		r.Get("/api/games", handleListGames(deps.Store))
		r.Post("/api/games", handleCreateGame(logger, deps.Engine))
		r.Get("/api/games/{id}", handleGetGame(logger, deps.Engine))
		r.Put("/api/games/{id}/answer", handleAnswer(logger, deps.Engine))
		r.Put("/api/games/{id}/help", handleHelp(logger, deps.Engine))
		r.Put("/api/games/{id}/take_money", handleTakeMoney(logger, deps.Engine))
		r.Get("/api/games/{id}/events", handleEvents(logger, deps.Engine, deps.Broker))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
