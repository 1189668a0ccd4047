package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storehubapp/storehub-server/internal/domain"
	"github.com/storehubapp/storehub-server/internal/store"
)

// itemColumns is the ordered list of columns selected in item queries.
// Must match the scan order in scanItem.
const itemColumns = `id, name, price, description, store_id, created_at, updated_at`

// scanItem scans a sql.Row (or sql.Rows via its Scan method) into a domain.Item.
func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	var it domain.Item

	var (
		description sql.NullString
		storeID     sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&it.ID,
		&it.Name,
		&it.Price,
		&description,
		&storeID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		it.Description = description.String
	}
	if storeID.Valid {
		it.StoreID = storeID.String
	}

	it.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	it.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &it, nil
}

// collectItems drains rows into a slice, never returning nil.
func collectItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	if items == nil {
		items = []*domain.Item{}
	}
	return items, nil
}

// CreateItem inserts a new item after verifying its store exists.
// Returns store.ErrStoreNotFound when the referenced store is absent.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM stores WHERE id = ?`, item.StoreID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrStoreNotFound
	}
	if err != nil {
		return fmt.Errorf("check store: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO items (id, name, price, description, store_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Price,
		nullString(item.Description),
		item.StoreID,
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	return tx.Commit()
}

// GetItem retrieves an item by ID.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ListItems returns all items in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// UpsertItem updates an existing item's name and price, or inserts a new item
// under the caller-supplied ID when none exists. The caller chooses the
// identity; this is intentional upsert-by-id, not update-if-exists.
// Returns created=true when a new row was inserted.
func (s *Store) UpsertItem(ctx context.Context, item *domain.Item) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, item.ID)

	existing, err := scanItem(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, name, price, description, store_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.Name,
			item.Price,
			nullString(item.Description),
			nullString(item.StoreID),
			formatTime(item.CreatedAt),
			formatTime(item.UpdatedAt),
		); err != nil {
			return false, fmt.Errorf("insert item: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, err
		}
		return true, nil

	case err != nil:
		return false, fmt.Errorf("get item: %w", err)

	default:
		if _, err := tx.ExecContext(ctx, `
			UPDATE items SET name = ?, price = ?, updated_at = ? WHERE id = ?`,
			item.Name,
			item.Price,
			formatTime(item.UpdatedAt),
			item.ID,
		); err != nil {
			return false, fmt.Errorf("update item: %w", err)
		}
		// Preserve fields the update does not touch.
		item.Description = existing.Description
		item.StoreID = existing.StoreID
		item.CreatedAt = existing.CreatedAt
		if err := tx.Commit(); err != nil {
			return false, err
		}
		return false, nil
	}
}

// DeleteItem removes an item and any item-tag links referencing it.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_tags WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("delete item_tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	return tx.Commit()
}
