package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storehubapp/storehub-server/internal/domain"
	"github.com/storehubapp/storehub-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, store_id, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.StoreID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// collectTags drains rows into a slice, never returning nil.
func collectTags(rows *sql.Rows) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	return tags, nil
}

// CreateTag inserts a new tag. The store-existence check and the per-store
// name uniqueness check run in the same transaction as the insert, with the
// UNIQUE(name, store_id) index as the backstop.
// Returns store.ErrStoreNotFound when the store is absent and
// store.ErrAlreadyExists when the name is taken within the store.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM stores WHERE id = ?`, tag.StoreID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrStoreNotFound
	}
	if err != nil {
		return fmt.Errorf("check store: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM tags WHERE name = ? AND store_id = ?`, tag.Name, tag.StoreID).Scan(&exists)
	if err == nil {
		return store.ErrAlreadyExists.WithMessage("a tag with that name already exists in that store")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check tag name: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tags (id, name, store_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		tag.ID,
		tag.Name,
		tag.StoreID,
		formatTime(tag.CreatedAt),
		formatTime(tag.UpdatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			// Lost the race after our check passed; report the same conflict.
			return store.ErrAlreadyExists.WithMessage("a tag with that name already exists in that store")
		}
		return fmt.Errorf("insert tag: %w", err)
	}

	return tx.Commit()
}

// GetTag retrieves a tag by ID.
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return t, nil
}

// DeleteTag removes a tag and any item-tag links referencing it.
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM tags WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrTagNotFound
	}
	if err != nil {
		return fmt.Errorf("check tag: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_tags WHERE tag_id = ?`, id); err != nil {
		return fmt.Errorf("delete item_tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	return tx.Commit()
}
