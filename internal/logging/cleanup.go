package logging

import (
	"context"
	"log/slog"
	"time"

	"nutritrack/internal/repository"
)

// Retention is how long persisted error logs are kept.
const Retention = 30 * 24 * time.Hour

// StartCleanup deletes expired system logs once a day until done is closed.
func StartCleanup(repo repository.SystemLogRepository, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cleanupOnce(context.Background(), repo, time.Now())
			case <-done:
				return
			}
		}
	}()
}

func cleanupOnce(ctx context.Context, repo repository.SystemLogRepository, now time.Time) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-Retention))
	if err != nil {
		slog.Warn("log cleanup failed", "component", "logging", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("log cleanup completed", "component", "logging", "deleted", deleted)
	}
}
