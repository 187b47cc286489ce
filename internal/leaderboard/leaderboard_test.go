package leaderboard_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/playperu/millionaire/internal/leaderboard"
)

func newBoard(t *testing.T) *leaderboard.Board {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parsing redis url: %v", err)
	}
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { rdb.Close() })

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	b := leaderboard.New(rdb, "test:"+uuid.NewString())
	t.Cleanup(func() { b.Clear(context.Background()) })
	return b
}

func TestBoardTop(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()

	for _, e := range []leaderboard.Entry{
		{UserID: "u1", Name: "Ann", Balance: 1000},
		{UserID: "u2", Name: "Bob", Balance: 32000},
		{UserID: "u3", Name: "Cid", Balance: 0},
	} {
		if err := b.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	top, err := b.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	want := []leaderboard.Entry{
		{UserID: "u2", Name: "Bob", Balance: 32000},
		{UserID: "u1", Name: "Ann", Balance: 1000},
	}
	if len(top) != len(want) {
		t.Fatalf("len = %d, want %d", len(top), len(want))
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}
}

func TestBoardRecordOverwrites(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()

	b.Record(ctx, leaderboard.Entry{UserID: "u1", Name: "Ann", Balance: 100})
	b.Record(ctx, leaderboard.Entry{UserID: "u2", Name: "Bob", Balance: 500})
	b.Record(ctx, leaderboard.Entry{UserID: "u1", Name: "Ann", Balance: 1100})

	rank, err := b.Rank(ctx, "u1")
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if rank != 0 {
		t.Errorf("rank = %d, want 0", rank)
	}
}

func TestBoardRankMissing(t *testing.T) {
	b := newBoard(t)

	if _, err := b.Rank(context.Background(), "nobody"); !errors.Is(err, leaderboard.ErrNotRanked) {
		t.Errorf("err = %v, want ErrNotRanked", err)
	}
}

func TestBoardTopEmpty(t *testing.T) {
	b := newBoard(t)

	top, err := b.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("top = %v, want empty", top)
	}
}
