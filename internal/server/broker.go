package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/playperu/millionaire/internal/millionaire"
)

// SSEEvent is the payload published to game subscribers.
type SSEEvent struct {
	Type         string             `json:"type"`
	GameID       string             `json:"gameId"`
	Status       millionaire.Status `json:"status"`
	CurrentLevel int                `json:"currentLevel"`
	Prize        int64              `json:"prize"`
	HelpType     string             `json:"helpType,omitempty"`
}

// Broker is an in-process pub/sub for SSE events, keyed by game ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded SSE events for the given game.
func (b *Broker) Subscribe(gameID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan []byte]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the game's subscribers.
func (b *Broker) Unsubscribe(gameID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given game.
func (b *Broker) Publish(gameID string, event SSEEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[gameID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// GameUpdated publishes every committed transition to the game's stream.
func (b *Broker) GameUpdated(_ context.Context, u millionaire.Update) {
	ev := SSEEvent{
		Type:         string(u.Op),
		GameID:       u.Game.ID,
		Status:       u.Game.Status(),
		CurrentLevel: u.Game.CurrentLevel,
		Prize:        u.Game.Prize,
	}
	if u.Help != nil {
		ev.HelpType = string(u.Help.Type)
	}
	b.Publish(u.Game.ID, ev)
}
