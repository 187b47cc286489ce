package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func handleTakeMoney(logger *slog.Logger, engine GameEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := userFrom(r)

		g, err := engine.TakeMoney(r.Context(), u.ID, chi.URLParam(r, "id"))
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, newGameResponse(g))
	}
}
