package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/symdex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ symdex.SetService = (*SetService)(nil)

// SetService implements symdex.SetService using SQLite.
type SetService struct {
	db *DB
}

// NewSetService creates a new SetService.
func NewSetService(db *DB) *SetService {
	return &SetService{db: db}
}

const setColumns = "id, name, source_url, content_hash, created_at, updated_at"

// CreateSet creates a new set.
func (s *SetService) CreateSet(ctx context.Context, set *symdex.Set) error {
	if err := set.Validate(); err != nil {
		return err
	}
	if err := s.checkNameFree(ctx, set.Name, ""); err != nil {
		return err
	}

	set.ID = uuid.New().String()
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sets (id, name, source_url, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, set.ID, set.Name, set.SourceURL, set.ContentHash,
		formatTimestamp(set.CreatedAt), formatTimestamp(set.UpdatedAt))

	return err
}

// checkNameFree returns ECONFLICT if a set other than exceptID uses name.
func (s *SetService) checkNameFree(ctx context.Context, name, exceptID string) error {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM sets WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if id == exceptID {
		return nil
	}
	return symdex.Errorf(symdex.ECONFLICT, "set %q already exists", name)
}

// FindSetByID retrieves a set by ID.
func (s *SetService) FindSetByID(ctx context.Context, id string) (*symdex.Set, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+setColumns+" FROM sets WHERE id = ?", id)

	set, err := scanSet(row)
	if err == sql.ErrNoRows {
		return nil, symdex.Errorf(symdex.ENOTFOUND, "set not found")
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

// FindSets retrieves sets matching the filter, ordered by name.
func (s *SetService) FindSets(ctx context.Context, filter symdex.SetFilter) ([]*symdex.Set, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + setColumns + " FROM sets WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	clause, page := limitClause(filter.Limit, filter.Offset)
	query.WriteString(clause)
	args = append(args, page...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []*symdex.Set
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	return sets, rows.Err()
}

// UpdateSet updates an existing set.
func (s *SetService) UpdateSet(ctx context.Context, id string, upd symdex.SetUpdate) (*symdex.Set, error) {
	set, err := s.FindSetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		set.Name = *upd.Name
	}
	if upd.SourceURL != nil {
		set.SourceURL = *upd.SourceURL
	}
	if upd.ContentHash != nil {
		set.ContentHash = *upd.ContentHash
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	if upd.Name != nil {
		if err := s.checkNameFree(ctx, set.Name, id); err != nil {
			return nil, err
		}
	}

	set.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sets
		SET name = ?, source_url = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, set.Name, set.SourceURL, set.ContentHash, formatTimestamp(set.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	return set, nil
}

// DeleteSet permanently removes a set. Its entries are removed by cascade.
func (s *SetService) DeleteSet(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sets WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return symdex.Errorf(symdex.ENOTFOUND, "set not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSet(row scanner) (*symdex.Set, error) {
	var set symdex.Set
	var createdAt, updatedAt string

	if err := row.Scan(&set.ID, &set.Name, &set.SourceURL, &set.ContentHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if set.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if set.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &set, nil
}
