// Package health serves the dependency health endpoint.
package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// Checker verifies that an infrastructure dependency is reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// SQL checks a database connection pool.
func SQL(db *sql.DB) Checker {
	return CheckerFunc(db.PingContext)
}

// Redis checks a Redis client.
func Redis(rdb *redis.Client) Checker {
	return CheckerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
}

type Handler struct {
	checks  map[string]Checker
	logger  *slog.Logger
	timeout time.Duration
}

func NewHandler(logger *slog.Logger, checks map[string]Checker) *Handler {
	return &Handler{checks: checks, logger: logger, timeout: 3 * time.Second}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.check)
	return r
}

type result struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var mu sync.Mutex
	var wg sync.WaitGroup
	results := make(map[string]result, len(h.checks))
	status := http.StatusOK

	for name, c := range h.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			err := c.Check(ctx)
			res := result{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				h.logger.Error("health check failed", "name", name, "error", err)
				res.Status = "error"
				status = http.StatusServiceUnavailable
			}
			results[name] = res
		}()
	}
	wg.Wait()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(results)
}
