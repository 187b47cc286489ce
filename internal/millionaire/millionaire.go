// Package millionaire holds the game session engine: questions, per-game
// question instances, help payloads, prize rules and the state transitions
// of a game. It has no external dependencies; storage is reached through the
// Repository interface.
package millionaire

import "time"

const (
	MinLevel   = 0
	MaxLevel   = 14
	LevelCount = MaxLevel - MinLevel + 1

	// TimeLimit is measured from game creation. It is checked lazily, on the
	// next answer or cash-out.
	TimeLimit = 35 * time.Minute
)

// Levels returns every level in play order.
func Levels() []int {
	levels := make([]int, 0, LevelCount)
	for l := MinLevel; l <= MaxLevel; l++ {
		levels = append(levels, l)
	}
	return levels
}
