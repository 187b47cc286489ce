package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/millionaire/internal/millionaire"
)

// AnswerRequest carries one key, or two when double answer is active.
type AnswerRequest struct {
	Letter  string   `json:"letter,omitempty"`
	Letters []string `json:"letters,omitempty"`
}

type AnswerResponse struct {
	Correct bool         `json:"correct"`
	Game    GameResponse `json:"game"`

	// CorrectKey is revealed once a failed or timed out game is over.
	CorrectKey millionaire.Key `json:"correctKey,omitempty"`
}

func (req AnswerRequest) keys() []millionaire.Key {
	raw := req.Letters
	if req.Letter != "" {
		raw = append([]string{req.Letter}, raw...)
	}
	keys := make([]millionaire.Key, 0, len(raw))
	for _, s := range raw {
		keys = append(keys, millionaire.Key(strings.ToLower(strings.TrimSpace(s))))
	}
	return keys
}

func handleAnswer(logger *slog.Logger, engine GameEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := userFrom(r)

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		keys := req.keys()
		if len(keys) == 0 {
			writeError(w, http.StatusBadRequest, "letter is required")
			return
		}

		g, correct, err := engine.Answer(r.Context(), u.ID, chi.URLParam(r, "id"), keys...)
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		resp := AnswerResponse{
			Correct: correct,
			Game:    newGameResponse(g),
		}
		if g.IsFailed {
			if q := g.CurrentQuestion(); q != nil {
				resp.CorrectKey = q.CorrectKey()
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
