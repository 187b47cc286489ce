package server

import (
	"context"

	"github.com/playperu/millionaire/internal/millionaire"
)

// User is a player account as seen by the HTTP layer.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"createdAt"`
}

// Store covers everything the handlers read outside the game engine.
type Store interface {
	UserByEmail(ctx context.Context, email string) (u User, passwordHash string, err error)
	UserByID(ctx context.Context, id string) (User, error)
	CreateUser(ctx context.Context, name, email, passwordHash string) (User, error)
	CountUsers(ctx context.Context) (int, error)

	CreateSession(ctx context.Context, userID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	UserFromSession(ctx context.Context, sessionID string) (User, error)

	TopUsers(ctx context.Context, limit int) ([]User, error)
	// ListGames returns the user's games newest first, without questions.
	ListGames(ctx context.Context, userID string, finishedOnly bool) ([]*millionaire.Game, error)

	InsertQuestion(ctx context.Context, q millionaire.Question) (string, error)
	CountAllQuestions(ctx context.Context) (int, error)
}
