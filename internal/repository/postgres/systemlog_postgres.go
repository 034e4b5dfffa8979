package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"nutritrack/internal/repository"
)

// SystemLogPostgres is a PostgreSQL implementation of repository.SystemLogRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type SystemLogPostgres struct {
	db *sql.DB
}

// NewSystemLogPostgres creates a new SystemLogPostgres repository.
func NewSystemLogPostgres(db *sql.DB) *SystemLogPostgres {
	return &SystemLogPostgres{db: db}
}

var _ repository.SystemLogRepository = (*SystemLogPostgres)(nil)

const systemLogColumns = 8

// InsertBatch writes all records with a single multi-row INSERT.
func (r *SystemLogPostgres) InsertBatch(ctx context.Context, logs []repository.SystemLog) error {
	if len(logs) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`INSERT INTO system_logs (id, ts, level, message, request_id, user_id, error, extra) VALUES `)
	args := make([]any, 0, len(logs)*systemLogColumns)
	for i, l := range logs {
		if i > 0 {
			b.WriteString(", ")
		}
		base := i * systemLogColumns
		b.WriteString("(")
		for c := 1; c <= systemLogColumns; c++ {
			if c > 1 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", base+c)
		}
		b.WriteString(")")
		args = append(args,
			l.ID,
			l.Timestamp,
			l.Level,
			l.Message,
			nullString(l.RequestID),
			nullString(l.UserID),
			nullString(l.Error),
			nullJSON(l.Extra),
		)
	}

	if _, err := r.db.ExecContext(ctx, b.String(), args...); err != nil {
		return fmt.Errorf("insert system logs: %w", err)
	}
	return nil
}

// List returns logs ordered by ts DESC with LIMIT/OFFSET and a total count.
func (r *SystemLogPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[repository.SystemLog], error) {
	const qCount = `SELECT COUNT(*) FROM system_logs`
	var total int64
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, ts, level, message, COALESCE(request_id, ''), COALESCE(user_id, ''), COALESCE(error, '')
		FROM system_logs
		ORDER BY ts DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]repository.SystemLog, 0)
	for rows.Next() {
		var l repository.SystemLog
		if err := rows.Scan(
			&l.ID,
			&l.Timestamp,
			&l.Level,
			&l.Message,
			&l.RequestID,
			&l.UserID,
			&l.Error,
		); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[repository.SystemLog]{Items: items, Total: total}, nil
}

// DeleteOlderThan removes records older than cutoff and reports how many went.
func (r *SystemLogPostgres) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM system_logs WHERE ts < $1`
	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
