// Package leaderboard keeps player balances in a Redis sorted set so the
// top of the table can be read without scanning the users table.
package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var ErrNotRanked = errors.New("user not on the leaderboard")

type Entry struct {
	UserID  string `json:"id"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type Board struct {
	rdb    *redis.Client
	scores string
	names  string
}

// New returns a board storing its data under keys prefixed with prefix.
func New(rdb *redis.Client, prefix string) *Board {
	return &Board{
		rdb:    rdb,
		scores: prefix + ":balances",
		names:  prefix + ":names",
	}
}

// Record sets the user's balance and display name.
func (b *Board) Record(ctx context.Context, e Entry) error {
	_, err := b.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, b.scores, redis.Z{Score: float64(e.Balance), Member: e.UserID})
		pipe.HSet(ctx, b.names, e.UserID, e.Name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.UserID, err)
	}
	return nil
}

// Top returns up to n entries, highest balance first.
func (b *Board) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}
	zs, err := b.rdb.ZRevRangeWithScores(ctx, b.scores, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading balances: %w", err)
	}
	if len(zs) == 0 {
		return []Entry{}, nil
	}

	ids := make([]string, len(zs))
	for i, z := range zs {
		ids[i] = z.Member.(string)
	}
	names, err := b.rdb.HMGet(ctx, b.names, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading names: %w", err)
	}

	entries := make([]Entry, len(zs))
	for i, z := range zs {
		entries[i] = Entry{UserID: ids[i], Balance: int64(z.Score)}
		if name, ok := names[i].(string); ok {
			entries[i].Name = name
		}
	}
	return entries, nil
}

// Rank returns the user's zero-based position.
func (b *Board) Rank(ctx context.Context, userID string) (int64, error) {
	rank, err := b.rdb.ZRevRank(ctx, b.scores, userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotRanked
	}
	if err != nil {
		return 0, fmt.Errorf("reading rank: %w", err)
	}
	return rank, nil
}

// Clear removes all leaderboard keys.
func (b *Board) Clear(ctx context.Context) error {
	return b.rdb.Del(ctx, b.scores, b.names).Err()
}
