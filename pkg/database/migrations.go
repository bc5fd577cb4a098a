package database

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql"
)

// CreateGenerationLogGINIndexes creates full-text search GIN indexes on the
// generation_logs table (custom SQL not handled by the Ent schema), so
// operators can query failed generations by error text or warning content
// without a sequential scan.
func CreateGenerationLogGINIndexes(ctx context.Context, driver *sql.Driver) error {
	db := driver.DB()

	_, err := db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_generation_logs_error_message_gin
		ON generation_logs USING gin(to_tsvector('english', COALESCE(error_message, '')))`)
	if err != nil {
		return fmt.Errorf("failed to create error_message GIN index: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_generation_logs_warnings_gin
		ON generation_logs USING gin(warnings)`)
	if err != nil {
		return fmt.Errorf("failed to create warnings GIN index: %w", err)
	}

	return nil
}
