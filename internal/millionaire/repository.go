package millionaire

import "context"

// Repository runs a unit of work atomically. Every engine operation is one
// call to WithinTx; returning an error from fn rolls back all of its writes.
type Repository interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the storage view available inside a transaction.
type Tx interface {
	HasActiveGame(ctx context.Context, userID string) (bool, error)

	CountQuestions(ctx context.Context, level int) (int, error)
	// QuestionAt returns the question at offset in a stable ordering of the
	// questions at level.
	QuestionAt(ctx context.Context, level, offset int) (Question, error)

	// InsertGame stores a new game and assigns IDs to it and its questions.
	InsertGame(ctx context.Context, g *Game) error
	LoadGame(ctx context.Context, id string) (*Game, error)
	// SaveGame writes g if its Version still matches the stored one and
	// bumps Version; otherwise it returns ErrConflict.
	SaveGame(ctx context.Context, g *Game) error

	// CreditBalance adds amount to the user's balance and returns the new
	// balance.
	CreditBalance(ctx context.Context, userID string, amount int64) (int64, error)
}
