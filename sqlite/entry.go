package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/symdex"
)

// Compile-time interface verification.
var _ symdex.EntryService = (*EntryService)(nil)

// EntryService implements symdex.EntryService using SQLite.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// ReplaceEntries swaps every entry of a set inside one transaction.
// Returns ENOTFOUND if the set does not exist and EINVALID if the entries
// break an index invariant.
func (s *EntryService) ReplaceEntries(ctx context.Context, setID string, entries []*symdex.Entry) (err error) {
	// Validates keys and references the same way an in-memory index does.
	idx, err := symdex.NewIndex(entries)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err := setExists(ctx, tx, setID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM refs WHERE set_id = ?", setID); err != nil {
		return fmt.Errorf("delete refs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE set_id = ?", setID); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (set_id, position, symbol_key, label) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	refStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO refs (set_id, entry_position, position, url, relative, owner) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer refStmt.Close()

	for pos, e := range idx.Entries() {
		if _, err := entryStmt.ExecContext(ctx, setID, pos, e.Key, e.Label); err != nil {
			return fmt.Errorf("insert entry %q: %w", e.Key, err)
		}
		for i, ref := range e.References {
			if _, err := refStmt.ExecContext(ctx, setID, pos, i, ref.URL, ref.Relative, ref.Owner); err != nil {
				return fmt.Errorf("insert reference %d of %q: %w", i, e.Key, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, "UPDATE sets SET updated_at = ? WHERE id = ?",
		formatTimestamp(time.Now()), setID); err != nil {
		return err
	}

	return tx.Commit()
}

// FindEntries retrieves entries matching the filter in table order.
// Pagination counts entries, not references.
func (s *EntryService) FindEntries(ctx context.Context, filter symdex.EntryFilter) ([]*symdex.Entry, error) {
	var sub strings.Builder
	args := []any{filter.SetID}

	sub.WriteString("SELECT position FROM entries WHERE set_id = ?")
	if p := symdex.NormalizeKey(filter.Prefix); p != "" {
		sub.WriteString(" AND symbol_key >= ?")
		args = append(args, p)
		if upper, ok := prefixSuccessor(p); ok {
			sub.WriteString(" AND symbol_key < ?")
			args = append(args, upper)
		}
	}
	sub.WriteString(" ORDER BY position")
	clause, page := limitClause(filter.Limit, filter.Offset)
	sub.WriteString(clause)
	args = append(args, page...)

	query := `
		SELECT e.position, e.symbol_key, e.label, r.url, r.relative, r.owner
		FROM entries e
		JOIN refs r ON r.set_id = e.set_id AND r.entry_position = e.position
		WHERE e.set_id = ? AND e.position IN (` + sub.String() + `)
		ORDER BY e.position, r.position`
	args = append([]any{filter.SetID}, args...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*symdex.Entry
	var cur *symdex.Entry
	curPos := -1
	for rows.Next() {
		var pos int
		var key, label string
		var ref symdex.Reference
		if err := rows.Scan(&pos, &key, &label, &ref.URL, &ref.Relative, &ref.Owner); err != nil {
			return nil, err
		}
		if cur == nil || pos != curPos {
			cur = &symdex.Entry{Key: key, Label: label}
			curPos = pos
			entries = append(entries, cur)
		}
		ref.Label = label
		cur.References = append(cur.References, ref)
	}

	return entries, rows.Err()
}

// LoadIndex reads every entry of a set into memory.
// Returns ENOTFOUND if the set does not exist.
func (s *EntryService) LoadIndex(ctx context.Context, setID string) (*symdex.Index, error) {
	if err := setExists(ctx, s.db, setID); err != nil {
		return nil, err
	}
	entries, err := s.FindEntries(ctx, symdex.EntryFilter{SetID: setID})
	if err != nil {
		return nil, err
	}
	return symdex.NewIndex(entries)
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func setExists(ctx context.Context, q rowQuerier, id string) error {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM sets WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return symdex.Errorf(symdex.ENOTFOUND, "set not found")
	}
	return err
}

// prefixSuccessor returns the smallest string greater than every string
// with prefix p. The bool result is false when no such bound exists.
func prefixSuccessor(p string) (string, bool) {
	b := []byte(p)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1]), true
		}
	}
	return "", false
}
