package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_system_logs",
		SQL: `CREATE TABLE IF NOT EXISTS system_logs (
  id         UUID        PRIMARY KEY,
  ts         TIMESTAMPTZ NOT NULL DEFAULT now(),
  level      TEXT        NOT NULL,
  message    TEXT        NOT NULL,
  request_id TEXT,
  user_id    TEXT,
  error      TEXT,
  extra      JSONB
);`,
	},
	{
		Name: "create_index_system_logs_ts",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_system_logs_ts ON system_logs (ts DESC);`,
	},
	{
		Name: "create_index_system_logs_level",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_system_logs_level ON system_logs (level);`,
	},
	{
		Name: "create_index_system_logs_request_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_system_logs_request_id ON system_logs (request_id);`,
	},
}

// EnsureMigrated creates the system_logs schema when the sentinel table is missing.
// Progress is reported as structured events so a failed boot can be traced step by step.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	log := slog.Default().With("component", "database", "db_host", dbHost)

	log.Info("migration check", "event", "db_migration_check", "status", "starting")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('public.system_logs') IS NOT NULL").Scan(&exists)
	if err != nil {
		log.Error("migration failed",
			"event", "db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			"event", "db_migration_skip",
			"status", "success",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("migration started", "event", "db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration failed",
				"event", "db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("migration step applied",
			"event", "db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("migration finished",
		"event", "db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
