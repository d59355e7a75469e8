package sqlite

import (
	"context"
	_ "embed"
	"strings"
)

// schemaSQL creates the vocabulary and patterns tables if they are absent.
// Every statement is idempotent so the schema runs on each Attach.
//
//go:embed schema.sql
var schemaSQL string

// initSchema executes each statement of schemaSQL in order.
func initSchema(ctx context.Context, ex executor) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := ex.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
