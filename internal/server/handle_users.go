package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/millionaire/internal/leaderboard"
	"github.com/playperu/millionaire/internal/millionaire"
)

const leaderboardSize = 50

// Leaderboard is a ranking cache; nil means rankings come from the store.
type Leaderboard interface {
	Top(ctx context.Context, n int) ([]leaderboard.Entry, error)
	Record(ctx context.Context, e leaderboard.Entry) error
}

type UserProfileResponse struct {
	User  User          `json:"user"`
	Games []GameSummary `json:"games"`
}

func handleListUsers(logger *slog.Logger, store Store, board Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if board != nil {
			entries, err := board.Top(r.Context(), leaderboardSize)
			if err == nil && len(entries) > 0 {
				writeJSON(w, http.StatusOK, entries)
				return
			}
			if err != nil {
				logger.Warn("leaderboard unavailable, reading users table", "error", err)
			}
		}

		users, err := store.TopUsers(r.Context(), leaderboardSize)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		entries := make([]leaderboard.Entry, 0, len(users))
		for _, u := range users {
			entries = append(entries, leaderboard.Entry{UserID: u.ID, Name: u.Name, Balance: u.Balance})
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func handleGetUser(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := store.UserByID(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, millionaire.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if u.ID != userFrom(r).ID {
			u.Email = ""
		}

		games, err := store.ListGames(r.Context(), u.ID, true)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := UserProfileResponse{User: u, Games: make([]GameSummary, 0, len(games))}
		for _, g := range games {
			resp.Games = append(resp.Games, newGameSummary(g))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// leaderboardSync records the owner's new balance whenever a game pays out.
type leaderboardSync struct {
	store  Store
	board  Leaderboard
	logger *slog.Logger
}

func (s leaderboardSync) GameUpdated(ctx context.Context, u millionaire.Update) {
	if !u.Credited {
		return
	}
	user, err := s.store.UserByID(ctx, u.Game.UserID)
	if err != nil {
		s.logger.Warn("leaderboard sync: loading user", "user_id", u.Game.UserID, "error", err)
		return
	}
	err = s.board.Record(ctx, leaderboard.Entry{UserID: user.ID, Name: user.Name, Balance: u.Balance})
	if err != nil {
		s.logger.Warn("leaderboard sync: recording balance", "user_id", user.ID, "error", err)
	}
}

// SyncLeaderboard copies the current balances into board.
func SyncLeaderboard(ctx context.Context, store Store, board Leaderboard) error {
	users, err := store.TopUsers(ctx, leaderboardSize)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := board.Record(ctx, leaderboard.Entry{UserID: u.ID, Name: u.Name, Balance: u.Balance}); err != nil {
			return err
		}
	}
	return nil
}

// NewLeaderboardSync returns a listener that keeps board in step with
// credited balances.
func NewLeaderboardSync(logger *slog.Logger, store Store, board Leaderboard) millionaire.Listener {
	return leaderboardSync{store: store, board: board, logger: logger}
}
