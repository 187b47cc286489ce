package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/playperu/millionaire/internal/millionaire"
)

// sqlTx implements millionaire.Tx on a single database transaction.
type sqlTx struct {
	tx *sql.Tx
}

const gameColumns = `id, user_id, current_level, is_failed, prize,
	audience_help_used, fifty_fifty_used, friend_call_used, double_answer_used,
	created_at, finished_at, lock_version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*millionaire.Game, error) {
	var g millionaire.Game
	var failed, audience, fifty, friend, dbl int
	var createdAt string
	var finishedAt sql.NullString
	err := row.Scan(&g.ID, &g.UserID, &g.CurrentLevel, &failed, &g.Prize,
		&audience, &fifty, &friend, &dbl,
		&createdAt, &finishedAt, &g.Version)
	if err != nil {
		return nil, err
	}

	g.IsFailed = failed != 0
	g.AudienceHelpUsed = audience != 0
	g.FiftyFiftyUsed = fifty != 0
	g.FriendCallUsed = friend != 0
	g.DoubleAnswerUsed = dbl != 0

	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		t, err := parseTime(finishedAt.String)
		if err != nil {
			return nil, err
		}
		g.FinishedAt = &t
	}
	return &g, nil
}

func (t *sqlTx) HasActiveGame(ctx context.Context, userID string) (bool, error) {
	var exists int
	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM games WHERE user_id = ? AND finished_at IS NULL)
	`, userID).Scan(&exists)
	return exists != 0, err
}

func (t *sqlTx) CountQuestions(ctx context.Context, level int) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE level = ?`, level).Scan(&n)
	return n, err
}

func (t *sqlTx) QuestionAt(ctx context.Context, level, offset int) (millionaire.Question, error) {
	q := millionaire.Question{Level: level}
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, text, answer1, answer2, answer3, answer4
		FROM questions
		WHERE level = ?
		ORDER BY id
		LIMIT 1 OFFSET ?
	`, level, offset).Scan(&q.ID, &q.Text, &q.Answers[0], &q.Answers[1], &q.Answers[2], &q.Answers[3])
	if errors.Is(err, sql.ErrNoRows) {
		return q, &millionaire.InsufficientQuestionsError{Level: level}
	}
	return q, err
}

func (t *sqlTx) InsertGame(ctx context.Context, g *millionaire.Game) error {
	id := uuid.NewString()
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO games (id, user_id, current_level, is_failed, prize, created_at, lock_version)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`, id, g.UserID, g.CurrentLevel, boolInt(g.IsFailed), g.Prize, formatTime(g.CreatedAt))
	if isUniqueViolation(err) {
		return millionaire.ErrDuplicateActiveGame
	}
	if err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}

	for _, gq := range g.Questions {
		gqID := uuid.NewString()
		help, err := json.Marshal(gq.HelpHash)
		if err != nil {
			return err
		}
		_, err = t.tx.ExecContext(ctx, `
			INSERT INTO game_questions (id, game_id, question_id, level, a, b, c, d, help_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, jsonb(?))
		`, gqID, id, gq.Question.ID, gq.Level(),
			gq.KeyMap[millionaire.KeyA], gq.KeyMap[millionaire.KeyB],
			gq.KeyMap[millionaire.KeyC], gq.KeyMap[millionaire.KeyD],
			string(help))
		if err != nil {
			return fmt.Errorf("inserting game question %d: %w", gq.Level(), err)
		}
		gq.ID = gqID
	}

	g.ID = id
	g.Version = 0
	return nil
}

func (t *sqlTx) LoadGame(ctx context.Context, id string) (*millionaire.Game, error) {
	g, err := scanGame(t.tx.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, millionaire.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}

	rows, err := t.tx.QueryContext(ctx, `
		SELECT gq.id, gq.a, gq.b, gq.c, gq.d, json(gq.help_hash),
			q.id, q.level, q.text, q.answer1, q.answer2, q.answer3, q.answer4
		FROM game_questions gq
		JOIN questions q ON q.id = gq.question_id
		WHERE gq.game_id = ?
		ORDER BY gq.level
	`, id)
	if err != nil {
		return nil, fmt.Errorf("loading game questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			gq         millionaire.GameQuestion
			a, b, c, d int
			help       string
		)
		q := &gq.Question
		if err := rows.Scan(&gq.ID, &a, &b, &c, &d, &help,
			&q.ID, &q.Level, &q.Text, &q.Answers[0], &q.Answers[1], &q.Answers[2], &q.Answers[3]); err != nil {
			return nil, err
		}
		gq.KeyMap = map[millionaire.Key]int{
			millionaire.KeyA: a,
			millionaire.KeyB: b,
			millionaire.KeyC: c,
			millionaire.KeyD: d,
		}
		gq.HelpHash = millionaire.HelpHash{}
		if err := json.Unmarshal([]byte(help), &gq.HelpHash); err != nil {
			return nil, fmt.Errorf("decoding help hash: %w", err)
		}
		g.Questions = append(g.Questions, &gq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(g.Questions) != millionaire.LevelCount {
		return nil, fmt.Errorf("game %s has %d questions", id, len(g.Questions))
	}
	return g, nil
}

func (t *sqlTx) SaveGame(ctx context.Context, g *millionaire.Game) error {
	var finishedAt sql.NullString
	if g.FinishedAt != nil {
		finishedAt = sql.NullString{String: formatTime(*g.FinishedAt), Valid: true}
	}

	res, err := t.tx.ExecContext(ctx, `
		UPDATE games SET
			current_level = ?, is_failed = ?, prize = ?,
			audience_help_used = ?, fifty_fifty_used = ?, friend_call_used = ?, double_answer_used = ?,
			finished_at = ?, lock_version = lock_version + 1
		WHERE id = ? AND lock_version = ?
	`, g.CurrentLevel, boolInt(g.IsFailed), g.Prize,
		boolInt(g.AudienceHelpUsed), boolInt(g.FiftyFiftyUsed), boolInt(g.FriendCallUsed), boolInt(g.DoubleAnswerUsed),
		finishedAt, g.ID, g.Version)
	if err != nil {
		return fmt.Errorf("updating game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return millionaire.ErrConflict
	}

	for _, gq := range g.Questions {
		if len(gq.HelpHash) == 0 {
			continue
		}
		help, err := json.Marshal(gq.HelpHash)
		if err != nil {
			return err
		}
		if _, err := t.tx.ExecContext(ctx, `
			UPDATE game_questions SET help_hash = jsonb(?) WHERE id = ?
		`, string(help), gq.ID); err != nil {
			return fmt.Errorf("updating help hash: %w", err)
		}
	}

	g.Version++
	return nil
}

func (t *sqlTx) CreditBalance(ctx context.Context, userID string, amount int64) (int64, error) {
	var balance int64
	err := t.tx.QueryRowContext(ctx, `
		UPDATE users SET balance = balance + ? WHERE id = ? RETURNING balance
	`, amount, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, millionaire.ErrNotFound
	}
	return balance, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
