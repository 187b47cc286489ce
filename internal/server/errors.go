package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/millionaire/internal/millionaire"
)

// writeEngineError maps game errors to HTTP statuses. Anything unknown is
// logged and reported as 500.
func writeEngineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var insufficient *millionaire.InsufficientQuestionsError
	switch {
	case errors.Is(err, millionaire.ErrNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, millionaire.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, millionaire.ErrDuplicateActiveGame),
		errors.Is(err, millionaire.ErrGameNotActive),
		errors.Is(err, millionaire.ErrHelpAlreadyUsed),
		errors.Is(err, millionaire.ErrNothingToCashOut),
		errors.Is(err, millionaire.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, millionaire.ErrInvalidAnswer),
		errors.Is(err, millionaire.ErrUnknownHelp):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient):
		logger.Warn("question bank exhausted", "level", insufficient.Level)
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("game operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
