package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/millionaire/internal/millionaire"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// WithinTx runs fn in a transaction, committing only when fn succeeds.
func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx millionaire.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, &sqlTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UserByEmail(ctx context.Context, email string) (User, string, error) {
	var u User
	var passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, balance, created_at, password_hash
		FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Balance, &u.CreatedAt, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, "", millionaire.ErrNotFound
	}
	return u, passwordHash, err
}

func (s *SQLiteStore) UserByID(ctx context.Context, id string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, balance, created_at FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Balance, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, millionaire.ErrNotFound
	}
	return u, err
}

func (s *SQLiteStore) CreateUser(ctx context.Context, name, email, passwordHash string) (User, error) {
	u := User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: formatTime(time.Now()),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, balance, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, u.ID, u.Name, u.Email, passwordHash, u.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) CreateSession(ctx context.Context, userID string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_sessions (id, user_id, created_at) VALUES (?, ?, ?)
	`, id, userID, formatTime(time.Now()))
	if err != nil {
		return "", fmt.Errorf("inserting session: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) UserFromSession(ctx context.Context, sessionID string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.email, u.balance, u.created_at
		FROM user_sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ?
	`, sessionID).Scan(&u.ID, &u.Name, &u.Email, &u.Balance, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, errNoSession
	}
	return u, err
}

func (s *SQLiteStore) TopUsers(ctx context.Context, limit int) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, balance, created_at
		FROM users
		ORDER BY balance DESC, created_at
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Balance, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) ListGames(ctx context.Context, userID string, finishedOnly bool) ([]*millionaire.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE user_id = ?`
	if finishedOnly {
		query += ` AND finished_at IS NOT NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []*millionaire.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *SQLiteStore) InsertQuestion(ctx context.Context, q millionaire.Question) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}
	id := q.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, level, text, answer1, answer2, answer3, answer4, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, q.Level, q.Text, q.Answers[0], q.Answers[1], q.Answers[2], q.Answers[3], formatTime(time.Now()))
	if err != nil {
		return "", fmt.Errorf("inserting question: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) CountAllQuestions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}

// timeLayout is fixed width so stored timestamps sort chronologically as
// text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
