package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/millionaire/internal/millionaire"
)

//go:embed seed_questions.json
var seedQuestions []byte

type seedQuestion struct {
	Level   int       `json:"level"`
	Text    string    `json:"text"`
	Answers [4]string `json:"answers"`
}

// DemoUser describes the account created on an empty database.
type DemoUser struct {
	Name     string
	Email    string
	Password string
}

// SeedQuestions loads the embedded question bank if no questions exist.
// Idempotent: does nothing if the bank is not empty.
func SeedQuestions(ctx context.Context, logger *slog.Logger, store Store) error {
	n, err := store.CountAllQuestions(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var qs []seedQuestion
	if err := json.Unmarshal(seedQuestions, &qs); err != nil {
		return fmt.Errorf("decoding seed questions: %w", err)
	}
	for _, sq := range qs {
		q := millionaire.Question{Level: sq.Level, Text: sq.Text, Answers: sq.Answers}
		if _, err := store.InsertQuestion(ctx, q); err != nil {
			return fmt.Errorf("seeding question %q: %w", sq.Text, err)
		}
	}

	logger.Info("question bank seeded", "questions", len(qs))
	return nil
}

// SeedDemoUser creates the demo account if no users exist.
func SeedDemoUser(ctx context.Context, logger *slog.Logger, store Store, demo DemoUser) error {
	n, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}
	u, err := store.CreateUser(ctx, demo.Name, strings.ToLower(demo.Email), string(hash))
	if err != nil {
		return err
	}

	logger.Info("demo user created", "user_id", u.ID, "email", u.Email)
	return nil
}
