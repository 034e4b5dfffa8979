package repository

import (
	"context"
	"time"
)

// SystemLog is one persisted ERROR-level log record.
type SystemLog struct {
	ID        string
	Timestamp time.Time
	Level     string
	Message   string
	RequestID string
	UserID    string
	Error     string
	Extra     []byte
}

// SystemLogRepository stores error logs for later inspection.
type SystemLogRepository interface {
	InsertBatch(ctx context.Context, logs []SystemLog) error
	// List returns a page of logs, newest first.
	List(ctx context.Context, pq PageQuery) (*PageResult[SystemLog], error)
	// DeleteOlderThan removes records with a timestamp before cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
