package server

import (
	"time"

	"github.com/playperu/millionaire/internal/millionaire"
)

// GameResponse is the player's view of a game. It never contains the
// correct key of a question still in play.
type GameResponse struct {
	ID             string             `json:"id"`
	Status         millionaire.Status `json:"status"`
	CurrentLevel   int                `json:"currentLevel"`
	Prize          int64              `json:"prize"`
	FireproofPrize int64              `json:"fireproofPrize"`
	CreatedAt      string             `json:"createdAt"`
	FinishedAt     *string            `json:"finishedAt"`
	HelpsUsed      map[string]bool    `json:"helpsUsed"`
	Question       *QuestionResponse  `json:"question,omitempty"`
}

// QuestionResponse is the question currently in play.
type QuestionResponse struct {
	Level    int                          `json:"level"`
	Text     string                       `json:"text"`
	Prize    int64                        `json:"prize"`
	Variants map[millionaire.Key]string   `json:"variants"`
	Helps    map[millionaire.HelpType]any `json:"helps"`
}

// GameSummary is a row in a game list.
type GameSummary struct {
	ID           string             `json:"id"`
	Status       millionaire.Status `json:"status"`
	CurrentLevel int                `json:"currentLevel"`
	Prize        int64              `json:"prize"`
	CreatedAt    string             `json:"createdAt"`
	FinishedAt   *string            `json:"finishedAt"`
}

func newGameResponse(g *millionaire.Game) GameResponse {
	resp := GameResponse{
		ID:             g.ID,
		Status:         g.Status(),
		CurrentLevel:   g.CurrentLevel,
		Prize:          g.Prize,
		FireproofPrize: millionaire.CheckpointPrize(g.PreviousLevel()),
		CreatedAt:      formatTime(g.CreatedAt),
		FinishedAt:     optionalTime(g.FinishedAt),
		HelpsUsed:      make(map[string]bool, len(millionaire.HelpTypes)),
	}
	for _, t := range millionaire.HelpTypes {
		resp.HelpsUsed[string(t)] = g.HelpUsed(t)
	}

	if q := g.CurrentQuestion(); q != nil && !g.Finished() {
		qr := &QuestionResponse{
			Level:    q.Level(),
			Text:     q.Text(),
			Prize:    millionaire.Prize(q.Level()),
			Variants: q.Variants(),
			Helps:    make(map[millionaire.HelpType]any, len(q.HelpHash)),
		}
		for t, h := range q.HelpHash {
			qr.Helps[t] = helpPayload(h)
		}
		resp.Question = qr
	}
	return resp
}

func newGameSummary(g *millionaire.Game) GameSummary {
	return GameSummary{
		ID:           g.ID,
		Status:       g.Status(),
		CurrentLevel: g.CurrentLevel,
		Prize:        g.Prize,
		CreatedAt:    formatTime(g.CreatedAt),
		FinishedAt:   optionalTime(g.FinishedAt),
	}
}

// helpPayload returns only the variant field that h.Type selects.
func helpPayload(h millionaire.Help) any {
	switch h.Type {
	case millionaire.HelpAudience:
		return h.Audience
	case millionaire.HelpFiftyFifty:
		return h.FiftyFifty
	case millionaire.HelpFriendCall:
		return h.FriendCall
	case millionaire.HelpDoubleAnswer:
		return h.DoubleAnswer
	}
	return nil
}

func optionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
