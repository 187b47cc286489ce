package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/millionaire/internal/millionaire"
)

// GameEngine is the subset of *millionaire.Engine the handlers drive.
type GameEngine interface {
	CreateGame(ctx context.Context, userID string) (*millionaire.Game, error)
	Game(ctx context.Context, userID, gameID string) (*millionaire.Game, error)
	Answer(ctx context.Context, userID, gameID string, keys ...millionaire.Key) (*millionaire.Game, bool, error)
	UseHelp(ctx context.Context, userID, gameID string, t millionaire.HelpType) (*millionaire.Game, millionaire.Help, error)
	TakeMoney(ctx context.Context, userID, gameID string) (*millionaire.Game, error)
}

func handleCreateGame(logger *slog.Logger, engine GameEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := userFrom(r)

		g, err := engine.CreateGame(r.Context(), u.ID)
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusCreated, newGameResponse(g))
	}
}

func handleGetGame(logger *slog.Logger, engine GameEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := userFrom(r)

		g, err := engine.Game(r.Context(), u.ID, chi.URLParam(r, "id"))
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, newGameResponse(g))
	}
}

func handleListGames(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := userFrom(r)

		games, err := store.ListGames(r.Context(), u.ID, false)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := make([]GameSummary, 0, len(games))
		for _, g := range games {
			resp = append(resp, newGameSummary(g))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
