package sqlite

import (
	"fmt"
	"time"
)

// Timestamps are stored as UTC RFC3339 text so they sort lexically.
const timestampLayout = time.RFC3339

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(value, column string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %q: %w", column, value, err)
	}
	return t, nil
}

// limitClause renders LIMIT/OFFSET for non-zero values. SQLite only accepts
// OFFSET after a LIMIT, so an offset alone gets an unbounded LIMIT -1.
func limitClause(limit, offset int) (string, []any) {
	switch {
	case limit > 0 && offset > 0:
		return " LIMIT ? OFFSET ?", []any{limit, offset}
	case limit > 0:
		return " LIMIT ?", []any{limit}
	case offset > 0:
		return " LIMIT -1 OFFSET ?", []any{offset}
	default:
		return "", nil
	}
}
