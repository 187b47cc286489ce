package millionaire

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"
)

func testQuestions() []Question {
	qs := make([]Question, 0, LevelCount)
	for _, l := range Levels() {
		qs = append(qs, Question{
			ID:      fmt.Sprintf("q%d", l),
			Level:   l,
			Text:    fmt.Sprintf("Question %d", l),
			Answers: [4]string{"right", "wrong 1", "wrong 2", "wrong 3"},
		})
	}
	return qs
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newTestGame(t *testing.T, createdAt time.Time) *Game {
	t.Helper()
	g, err := NewGame("user-1", testQuestions(), testRand(), createdAt)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func wrongKey(q *GameQuestion) Key {
	for _, k := range Keys {
		if k != q.CorrectKey() {
			return k
		}
	}
	return ""
}

func TestNewGameCoversEveryLevel(t *testing.T) {
	g := newTestGame(t, time.Now())

	if len(g.Questions) != LevelCount {
		t.Fatalf("questions = %d, want %d", len(g.Questions), LevelCount)
	}
	for i, q := range g.Questions {
		if q.Level() != i {
			t.Errorf("question %d has level %d", i, q.Level())
		}
		if len(q.HelpHash) != 0 {
			t.Errorf("question %d starts with helps %v", i, q.HelpHash)
		}
		if q.Variants()[q.CorrectKey()] != "right" {
			t.Errorf("question %d: correct key %q maps to %q", i, q.CorrectKey(), q.Variants()[q.CorrectKey()])
		}
	}
	if g.CurrentLevel != 0 || g.IsFailed || g.Finished() || g.Prize != 0 {
		t.Errorf("unexpected initial state: %+v", g)
	}
	if g.Status() != StatusInProgress {
		t.Errorf("status = %q, want in_progress", g.Status())
	}
}

func TestNewGameRejectsBadQuestions(t *testing.T) {
	qs := testQuestions()

	if _, err := NewGame("u", qs[:LevelCount-1], testRand(), time.Now()); err == nil {
		t.Error("expected error for missing level")
	}

	qs[3], qs[4] = qs[4], qs[3]
	if _, err := NewGame("u", qs, testRand(), time.Now()); err == nil {
		t.Error("expected error for out-of-order levels")
	}
}

func TestStatus(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := created.Add(d)
		return &ts
	}

	tests := []struct {
		name       string
		finishedAt *time.Time
		failed     bool
		level      int
		want       Status
	}{
		{"unfinished", nil, false, 3, StatusInProgress},
		{"unfinished failed flag ignored", nil, true, 3, StatusInProgress},
		{"failed in time", at(time.Minute), true, 3, StatusFail},
		{"failed at limit", at(TimeLimit), true, 3, StatusTimeout},
		{"failed after limit", at(time.Hour), true, 3, StatusTimeout},
		{"won", at(time.Minute), false, MaxLevel + 1, StatusWon},
		{"won late is still won", at(time.Hour), false, MaxLevel + 1, StatusWon},
		{"cashed out", at(time.Minute), false, 5, StatusMoney},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Game{CreatedAt: created, FinishedAt: tt.finishedAt, IsFailed: tt.failed, CurrentLevel: tt.level}
			if got := g.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnswerCorrectContinues(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now)
	q := g.CurrentQuestion()

	correct, err := g.Answer(now, q.CorrectKey())
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !correct {
		t.Error("expected correct answer")
	}
	if g.CurrentLevel != 1 {
		t.Errorf("level = %d, want 1", g.CurrentLevel)
	}
	if g.PreviousQuestion() != q {
		t.Error("previous question should be the one just answered")
	}
	if g.CurrentQuestion() == q {
		t.Error("current question should have advanced")
	}
	if g.Finished() || g.Status() != StatusInProgress {
		t.Errorf("status = %q, finished = %v", g.Status(), g.Finished())
	}
}

func TestAnswerCorrectOnLastLevelWins(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now)
	g.CurrentLevel = MaxLevel

	if _, err := g.Answer(now, g.CurrentQuestion().CorrectKey()); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if g.Status() != StatusWon {
		t.Errorf("status = %q, want won", g.Status())
	}
	if g.Prize != MaxPrize() {
		t.Errorf("prize = %d, want %d", g.Prize, MaxPrize())
	}
}

func TestAnswerWrong(t *testing.T) {
	tests := []struct {
		level     int
		wantPrize int64
	}{
		{0, 0},
		{1, 0},
		{4, 0},
		{5, Prize(4)},
		{9, Prize(4)},
		{10, Prize(9)},
		{14, Prize(9)},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level %d", tt.level), func(t *testing.T) {
			now := time.Now()
			g := newTestGame(t, now)
			g.CurrentLevel = tt.level

			correct, err := g.Answer(now, wrongKey(g.CurrentQuestion()))
			if err != nil {
				t.Fatalf("Answer: %v", err)
			}
			if correct {
				t.Error("expected incorrect answer")
			}
			if !g.IsFailed || !g.Finished() {
				t.Errorf("failed = %v, finished = %v", g.IsFailed, g.Finished())
			}
			if g.Status() != StatusFail {
				t.Errorf("status = %q, want fail", g.Status())
			}
			if g.CurrentLevel != tt.level {
				t.Errorf("level = %d, want %d", g.CurrentLevel, tt.level)
			}
			if g.Prize != tt.wantPrize {
				t.Errorf("prize = %d, want %d", g.Prize, tt.wantPrize)
			}
		})
	}
}

func TestAnswerAfterTimeLimit(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now.Add(-TimeLimit))
	g.CurrentLevel = 6

	correct, err := g.Answer(now, g.CurrentQuestion().CorrectKey())
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if correct {
		t.Error("a timed out answer must not count as correct")
	}
	if g.Status() != StatusTimeout {
		t.Errorf("status = %q, want timeout", g.Status())
	}
	if !g.IsFailed || !g.Finished() {
		t.Errorf("failed = %v, finished = %v", g.IsFailed, g.Finished())
	}
	if g.CurrentLevel != 6 {
		t.Errorf("level = %d, want 6", g.CurrentLevel)
	}
	if g.Prize != Prize(4) {
		t.Errorf("prize = %d, want %d", g.Prize, Prize(4))
	}
}

func TestAnswerFinishedGame(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now)
	if _, err := g.Answer(now, wrongKey(g.CurrentQuestion())); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	before := *g

	_, err := g.Answer(now, g.CurrentQuestion().CorrectKey())
	if !errors.Is(err, ErrGameNotActive) {
		t.Fatalf("err = %v, want ErrGameNotActive", err)
	}
	if g.CurrentLevel != before.CurrentLevel || g.Prize != before.Prize || g.FinishedAt != before.FinishedAt {
		t.Error("finished game was modified")
	}
}

func TestAnswerValidation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		keys []Key
	}{
		{"no keys", nil},
		{"unknown key", []Key{"e"}},
		{"two keys without double answer", []Key{KeyA, KeyB}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, now)
			_, err := g.Answer(now, tt.keys...)
			if !errors.Is(err, ErrInvalidAnswer) {
				t.Fatalf("err = %v, want ErrInvalidAnswer", err)
			}
			if g.Finished() || g.CurrentLevel != 0 {
				t.Error("invalid answer changed the game")
			}
		})
	}
}

func TestDoubleAnswer(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now)

	if _, err := g.UseHelp(testRand(), HelpDoubleAnswer); err != nil {
		t.Fatalf("UseHelp: %v", err)
	}
	q := g.CurrentQuestion()

	if _, err := g.Answer(now, wrongKey(q), wrongKey(q)); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("duplicate keys: err = %v, want ErrInvalidAnswer", err)
	}

	correct, err := g.Answer(now, wrongKey(q), q.CorrectKey())
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !correct || g.CurrentLevel != 1 {
		t.Errorf("correct = %v, level = %d", correct, g.CurrentLevel)
	}

	// The pair is only allowed on the question the help was applied to.
	next := g.CurrentQuestion()
	if _, err := g.Answer(now, wrongKey(next), next.CorrectKey()); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("err = %v, want ErrInvalidAnswer on the next question", err)
	}
}

func TestTakeMoney(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now)
	g.CurrentLevel = 7

	if err := g.TakeMoney(now); err != nil {
		t.Fatalf("TakeMoney: %v", err)
	}
	if g.Status() != StatusMoney {
		t.Errorf("status = %q, want money", g.Status())
	}
	if g.Prize != Prize(6) {
		t.Errorf("prize = %d, want %d", g.Prize, Prize(6))
	}
	if err := g.TakeMoney(now); !errors.Is(err, ErrGameNotActive) {
		t.Errorf("second cash-out: err = %v, want ErrGameNotActive", err)
	}
}

func TestTakeMoneyAtLevelZero(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now)

	if err := g.TakeMoney(now); !errors.Is(err, ErrNothingToCashOut) {
		t.Fatalf("err = %v, want ErrNothingToCashOut", err)
	}
	if g.Finished() || g.Prize != 0 {
		t.Error("failed cash-out changed the game")
	}
}

func TestTakeMoneyAfterTimeLimit(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now.Add(-time.Hour))
	g.CurrentLevel = 3

	if err := g.TakeMoney(now); err != nil {
		t.Fatalf("TakeMoney: %v", err)
	}
	if g.Status() != StatusTimeout {
		t.Errorf("status = %q, want timeout", g.Status())
	}
	if g.Prize != 0 {
		t.Errorf("prize = %d, want 0", g.Prize)
	}
}

func TestUseHelp(t *testing.T) {
	g := newTestGame(t, time.Now())
	rng := testRand()

	for _, ht := range HelpTypes {
		if g.HelpUsed(ht) {
			t.Errorf("%s used before start", ht)
		}
	}

	h, err := g.UseHelp(rng, HelpAudience)
	if err != nil {
		t.Fatalf("UseHelp: %v", err)
	}
	if h.Type != HelpAudience || len(h.Audience) != 4 {
		t.Errorf("unexpected payload %+v", h)
	}
	if !g.AudienceHelpUsed {
		t.Error("audience flag not set")
	}
	if _, ok := g.CurrentQuestion().HelpHash[HelpAudience]; !ok {
		t.Error("help not stored on the current question")
	}

	before := len(g.CurrentQuestion().HelpHash)
	if _, err := g.UseHelp(rng, HelpAudience); !errors.Is(err, ErrHelpAlreadyUsed) {
		t.Fatalf("second use: err = %v, want ErrHelpAlreadyUsed", err)
	}
	if len(g.CurrentQuestion().HelpHash) != before {
		t.Error("help hash changed on rejected request")
	}

	if _, err := g.UseHelp(rng, "crystal_ball"); !errors.Is(err, ErrUnknownHelp) {
		t.Errorf("err = %v, want ErrUnknownHelp", err)
	}
}

func TestUseHelpOncePerGame(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now)
	rng := testRand()

	if _, err := g.UseHelp(rng, HelpFiftyFifty); err != nil {
		t.Fatalf("UseHelp: %v", err)
	}
	if _, err := g.Answer(now, g.CurrentQuestion().CorrectKey()); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := g.UseHelp(rng, HelpFiftyFifty); !errors.Is(err, ErrHelpAlreadyUsed) {
		t.Errorf("err = %v, want ErrHelpAlreadyUsed on the next question", err)
	}
}

func TestGameScenario(t *testing.T) {
	now := time.Now()
	g := newTestGame(t, now)

	if _, err := g.Answer(now, g.CurrentQuestion().CorrectKey()); err != nil {
		t.Fatalf("answer level 0: %v", err)
	}
	if g.CurrentLevel != 1 || g.Status() != StatusInProgress {
		t.Fatalf("after level 0: level = %d, status = %q", g.CurrentLevel, g.Status())
	}

	if _, err := g.Answer(now, wrongKey(g.CurrentQuestion())); err != nil {
		t.Fatalf("answer level 1: %v", err)
	}
	if !g.IsFailed || !g.Finished() || g.Status() != StatusFail {
		t.Fatalf("after level 1: failed = %v, status = %q", g.IsFailed, g.Status())
	}
	if g.Prize != 0 {
		t.Errorf("prize = %d, want 0", g.Prize)
	}
}
