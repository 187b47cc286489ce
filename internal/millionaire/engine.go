package millionaire

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Operation string

const (
	OpCreate    Operation = "create"
	OpAnswer    Operation = "answer"
	OpHelp      Operation = "help"
	OpTakeMoney Operation = "take_money"
)

// Update describes a committed transition.
type Update struct {
	Op   Operation
	Game *Game

	// Credited is set when the transition paid the prize into the owner's
	// balance; Balance is the balance after the credit.
	Credited bool
	Balance  int64

	// Help is the payload generated by an OpHelp transition.
	Help *Help
}

// Listener is notified after a transition has been committed.
type Listener interface {
	GameUpdated(ctx context.Context, u Update)
}

type ListenerFunc func(ctx context.Context, u Update)

func (f ListenerFunc) GameUpdated(ctx context.Context, u Update) { f(ctx, u) }

// Engine applies game operations on top of a Repository.
type Engine struct {
	repo      Repository
	rng       Rand
	now       func() time.Time
	logger    *slog.Logger
	listeners []Listener
}

type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithListener(l Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

// NewEngine returns an engine drawing randomness from rng. rng need not be
// safe for concurrent use.
func NewEngine(repo Repository, rng Rand, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		repo:   repo,
		rng:    &lockedRand{r: rng},
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateGame starts a new game for userID with one random question per
// level.
func (e *Engine) CreateGame(ctx context.Context, userID string) (*Game, error) {
	var g *Game
	err := e.repo.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		active, err := tx.HasActiveGame(ctx, userID)
		if err != nil {
			return err
		}
		if active {
			return ErrDuplicateActiveGame
		}

		questions := make([]Question, 0, LevelCount)
		for _, level := range Levels() {
			n, err := tx.CountQuestions(ctx, level)
			if err != nil {
				return err
			}
			if n == 0 {
				return &InsufficientQuestionsError{Level: level}
			}
			q, err := tx.QuestionAt(ctx, level, e.rng.IntN(n))
			if err != nil {
				return err
			}
			questions = append(questions, q)
		}

		g, err = NewGame(userID, questions, e.rng, e.now().UTC())
		if err != nil {
			return err
		}
		return tx.InsertGame(ctx, g)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("game created", "game_id", g.ID, "user_id", userID)
	e.notify(ctx, Update{Op: OpCreate, Game: g})
	return g, nil
}

// Game loads a game owned by userID.
func (e *Engine) Game(ctx context.Context, userID, gameID string) (*Game, error) {
	var g *Game
	err := e.repo.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		g, err = tx.LoadGame(ctx, gameID)
		if err != nil {
			return err
		}
		if g.UserID != userID {
			return ErrNotOwner
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Answer submits keys for the current question. correct reports the grade;
// it is false when the game timed out.
func (e *Engine) Answer(ctx context.Context, userID, gameID string, keys ...Key) (g *Game, correct bool, err error) {
	g, err = e.mutate(ctx, OpAnswer, userID, gameID, func(g *Game, _ *Update) error {
		var err error
		correct, err = g.Answer(e.now().UTC(), keys...)
		return err
	})
	return g, correct, err
}

// UseHelp applies help t to the current question.
func (e *Engine) UseHelp(ctx context.Context, userID, gameID string, t HelpType) (*Game, Help, error) {
	var h Help
	g, err := e.mutate(ctx, OpHelp, userID, gameID, func(g *Game, u *Update) error {
		var err error
		h, err = g.UseHelp(e.rng, t)
		u.Help = &h
		return err
	})
	return g, h, err
}

// TakeMoney cashes out the game and credits the owner's balance.
func (e *Engine) TakeMoney(ctx context.Context, userID, gameID string) (*Game, error) {
	return e.mutate(ctx, OpTakeMoney, userID, gameID, func(g *Game, _ *Update) error {
		return g.TakeMoney(e.now().UTC())
	})
}

// mutate loads, transitions, saves and, on a paying finish, credits the
// balance, all inside one transaction.
func (e *Engine) mutate(ctx context.Context, op Operation, userID, gameID string, fn func(g *Game, u *Update) error) (*Game, error) {
	var (
		g *Game
		u Update
	)
	err := e.repo.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		u = Update{Op: op}
		g, err = tx.LoadGame(ctx, gameID)
		if err != nil {
			return err
		}
		if g.UserID != userID {
			return ErrNotOwner
		}
		if g.Finished() {
			return ErrGameNotActive
		}
		if err := fn(g, &u); err != nil {
			return err
		}
		if err := tx.SaveGame(ctx, g); err != nil {
			return err
		}

		u.Game = g
		if g.Finished() && g.Prize > 0 {
			balance, err := tx.CreditBalance(ctx, g.UserID, g.Prize)
			if err != nil {
				return err
			}
			u.Credited, u.Balance = true, balance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if g.Finished() {
		e.logger.Info("game finished",
			"game_id", g.ID,
			"user_id", g.UserID,
			"status", g.Status(),
			"level", g.CurrentLevel,
			"prize", g.Prize,
		)
	} else {
		e.logger.Debug("game updated", "game_id", g.ID, "op", op, "level", g.CurrentLevel)
	}
	e.notify(ctx, u)
	return g, nil
}

func (e *Engine) notify(ctx context.Context, u Update) {
	for _, l := range e.listeners {
		l.GameUpdated(ctx, u)
	}
}

type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
