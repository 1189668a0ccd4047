package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storehubapp/storehub-server/internal/domain"
	"github.com/storehubapp/storehub-server/internal/store"
)

// storeColumns is the ordered list of columns selected in store queries.
// Must match the scan order in scanStore.
const storeColumns = `id, name, created_at, updated_at`

// scanStore scans a sql.Row (or sql.Rows via its Scan method) into a domain.Store.
func scanStore(scanner interface{ Scan(dest ...any) error }) (*domain.Store, error) {
	var st domain.Store

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&st.ID,
		&st.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	st.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	st.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &st, nil
}

// CreateStore inserts a new store.
// Returns store.ErrAlreadyExists when the name is already taken.
func (s *Store) CreateStore(ctx context.Context, st *domain.Store) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stores (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		st.ID,
		st.Name,
		formatTime(st.CreatedAt),
		formatTime(st.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("a store with that name already exists")
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetStore retrieves a store by ID.
// Returns store.ErrStoreNotFound if the store does not exist.
func (s *Store) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE id = ?`, id)

	st, err := scanStore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return st, nil
}

// ListStores returns all stores in insertion (rowid) order.
func (s *Store) ListStores(ctx context.Context) ([]*domain.Store, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+storeColumns+` FROM stores ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()

	var stores []*domain.Store
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	if stores == nil {
		stores = []*domain.Store{}
	}

	return stores, nil
}

// DeleteStore removes a store and cascades to its items, tags, and every
// item-tag link referencing them. The deletes are explicit rather than left
// to the FK cascade so the whole teardown is one visible transaction.
// Returns store.ErrStoreNotFound if the store does not exist.
func (s *Store) DeleteStore(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM stores WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrStoreNotFound
	}
	if err != nil {
		return fmt.Errorf("check store: %w", err)
	}

	// Links first, then the entities that carry them, then the store.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM item_tags
		WHERE item_id IN (SELECT id FROM items WHERE store_id = ?)
		   OR tag_id  IN (SELECT id FROM tags  WHERE store_id = ?)`, id, id); err != nil {
		return fmt.Errorf("delete item_tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE store_id = ?`, id); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE store_id = ?`, id); err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stores WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	return tx.Commit()
}

// ListItemsForStore returns all items owned by a store in insertion order.
func (s *Store) ListItemsForStore(ctx context.Context, storeID string) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE store_id = ? ORDER BY rowid ASC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListTagsForStore returns all tags owned by a store in insertion order.
func (s *Store) ListTagsForStore(ctx context.Context, storeID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE store_id = ? ORDER BY rowid ASC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}
