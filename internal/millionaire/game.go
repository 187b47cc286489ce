package millionaire

import (
	"fmt"
	"time"
)

// Status is derived from a game's stored fields; it is never stored.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusFail       Status = "fail"
	StatusTimeout    Status = "timeout"
	StatusMoney      Status = "money"
)

type Game struct {
	ID     string
	UserID string

	// Questions holds one entry per level; the index is the level.
	Questions []*GameQuestion

	CurrentLevel int
	IsFailed     bool
	Prize        int64
	CreatedAt    time.Time
	FinishedAt   *time.Time

	AudienceHelpUsed bool
	FiftyFiftyUsed   bool
	FriendCallUsed   bool
	DoubleAnswerUsed bool

	// Version is the optimistic lock counter maintained by the repository.
	Version int
}

// NewGame builds an unsaved game for userID from one question per level,
// given in level order. Answer keys are shuffled with rng.
func NewGame(userID string, questions []Question, rng Rand, now time.Time) (*Game, error) {
	if len(questions) != LevelCount {
		return nil, fmt.Errorf("need %d questions, got %d", LevelCount, len(questions))
	}
	g := &Game{
		UserID:    userID,
		Questions: make([]*GameQuestion, 0, LevelCount),
		CreatedAt: now,
	}
	for i, q := range questions {
		if q.Level != MinLevel+i {
			return nil, fmt.Errorf("question %d has level %d, want %d", i, q.Level, MinLevel+i)
		}
		g.Questions = append(g.Questions, newGameQuestion(rng, q))
	}
	return g, nil
}

func (g *Game) Finished() bool { return g.FinishedAt != nil }

// Status derives the game status. Timeout refines the failed branch only.
func (g *Game) Status() Status {
	switch {
	case g.FinishedAt == nil:
		return StatusInProgress
	case g.IsFailed:
		if g.FinishedAt.Sub(g.CreatedAt) >= TimeLimit {
			return StatusTimeout
		}
		return StatusFail
	case g.CurrentLevel > MaxLevel:
		return StatusWon
	default:
		return StatusMoney
	}
}

// PreviousLevel is the last fully answered level, -1 if none.
func (g *Game) PreviousLevel() int {
	return g.CurrentLevel - 1
}

// CurrentQuestion returns the question at the current level, or nil once
// every level has been answered.
func (g *Game) CurrentQuestion() *GameQuestion {
	if g.CurrentLevel < 0 || g.CurrentLevel >= len(g.Questions) {
		return nil
	}
	return g.Questions[g.CurrentLevel]
}

// PreviousQuestion returns the last answered question, or nil.
func (g *Game) PreviousQuestion() *GameQuestion {
	l := g.PreviousLevel()
	if l < 0 || l >= len(g.Questions) {
		return nil
	}
	return g.Questions[l]
}

// Expired reports whether the time limit has run out at now.
func (g *Game) Expired(now time.Time) bool {
	return now.Sub(g.CreatedAt) >= TimeLimit
}

func (g *Game) finish(now time.Time, prize int64, failed bool) {
	g.FinishedAt = &now
	g.Prize = prize
	g.IsFailed = failed
}

// timeOut finishes an expired game with the checkpoint prize and reports
// whether it did.
func (g *Game) timeOut(now time.Time) bool {
	if !g.Expired(now) {
		return false
	}
	g.finish(now, CheckpointPrize(g.PreviousLevel()), true)
	return true
}

// Answer grades keys against the current question. An expired game is
// finished as timed out regardless of keys; that is a normal result, not an
// error. correct is false in that case.
func (g *Game) Answer(now time.Time, keys ...Key) (correct bool, err error) {
	if g.Finished() {
		return false, ErrGameNotActive
	}
	q := g.CurrentQuestion()
	if q == nil {
		return false, ErrGameNotActive
	}
	if err := g.validateKeys(q, keys); err != nil {
		return false, err
	}
	if g.timeOut(now) {
		return false, nil
	}

	if !q.AnswerCorrect(keys...) {
		g.finish(now, CheckpointPrize(g.PreviousLevel()), true)
		return false, nil
	}

	g.CurrentLevel++
	if g.CurrentLevel > MaxLevel {
		g.finish(now, MaxPrize(), false)
	}
	return true, nil
}

func (g *Game) validateKeys(q *GameQuestion, keys []Key) error {
	maxKeys := 1
	if q.HasHelp(HelpDoubleAnswer) {
		maxKeys = 2
	}
	if len(keys) == 0 || len(keys) > maxKeys {
		return fmt.Errorf("%w: expected 1..%d keys, got %d", ErrInvalidAnswer, maxKeys, len(keys))
	}
	for _, k := range keys {
		if !k.Valid() {
			return fmt.Errorf("%w: unknown key %q", ErrInvalidAnswer, k)
		}
	}
	if len(keys) == 2 && keys[0] == keys[1] {
		return fmt.Errorf("%w: duplicate key %q", ErrInvalidAnswer, keys[0])
	}
	return nil
}

// UseHelp applies help t to the current question. Each help can be used
// once per game.
func (g *Game) UseHelp(rng Rand, t HelpType) (Help, error) {
	if g.Finished() {
		return Help{}, ErrGameNotActive
	}
	flag := g.helpFlag(t)
	if flag == nil {
		return Help{}, fmt.Errorf("%w: %q", ErrUnknownHelp, t)
	}
	q := g.CurrentQuestion()
	if q == nil {
		return Help{}, ErrGameNotActive
	}
	if *flag || q.HasHelp(t) {
		return Help{}, fmt.Errorf("%w: %s", ErrHelpAlreadyUsed, t)
	}

	h, err := q.ApplyHelp(rng, t)
	if err != nil {
		return Help{}, err
	}
	*flag = true
	return h, nil
}

// HelpUsed reports whether help t was used in this game.
func (g *Game) HelpUsed(t HelpType) bool {
	flag := g.helpFlag(t)
	return flag != nil && *flag
}

func (g *Game) helpFlag(t HelpType) *bool {
	switch t {
	case HelpAudience:
		return &g.AudienceHelpUsed
	case HelpFiftyFifty:
		return &g.FiftyFiftyUsed
	case HelpFriendCall:
		return &g.FriendCallUsed
	case HelpDoubleAnswer:
		return &g.DoubleAnswerUsed
	}
	return nil
}

// TakeMoney finishes the game paying the full amount of the last answered
// level. An expired game times out instead.
func (g *Game) TakeMoney(now time.Time) error {
	if g.Finished() {
		return ErrGameNotActive
	}
	if g.timeOut(now) {
		return nil
	}
	if g.CurrentLevel <= MinLevel {
		return ErrNothingToCashOut
	}
	g.finish(now, Prize(g.PreviousLevel()), false)
	return nil
}
