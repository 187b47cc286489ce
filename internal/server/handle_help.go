package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/millionaire/internal/millionaire"
)

type HelpRequest struct {
	HelpType string `json:"helpType"`
}

type HelpResponse struct {
	Help millionaire.Help `json:"help"`
	Game GameResponse     `json:"game"`
}

func handleHelp(logger *slog.Logger, engine GameEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := userFrom(r)

		var req HelpRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		t, err := millionaire.ParseHelpType(req.HelpType)
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		g, h, err := engine.UseHelp(r.Context(), u.ID, chi.URLParam(r, "id"), t)
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, HelpResponse{Help: h, Game: newGameResponse(g)})
	}
}
