package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/storehubapp/storehub-server/internal/domain"
	"github.com/storehubapp/storehub-server/internal/id"
	"github.com/storehubapp/storehub-server/internal/store"
)

// LinkTag inserts an item-tag association. Both existence checks and the
// insert run in one transaction so a concurrent delete of either side cannot
// leave a dangling link. Idempotent: an existing link is not an error and no
// second row is created.
// Returns store.ErrItemNotFound / store.ErrTagNotFound when a side is absent.
func (s *Store) LinkTag(ctx context.Context, itemID, tagID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := checkLinkSides(ctx, tx, itemID, tagID); err != nil {
		return err
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM item_tags WHERE item_id = ? AND tag_id = ?`, itemID, tagID).Scan(&exists)
	if err == nil {
		// Already linked.
		return tx.Commit()
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check link: %w", err)
	}

	linkID, err := id.Generate(id.PrefixLink)
	if err != nil {
		return fmt.Errorf("generate link id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO item_tags (id, item_id, tag_id, created_at)
		VALUES (?, ?, ?, ?)`,
		linkID, itemID, tagID, formatTime(time.Now()),
	); err != nil {
		if isUniqueViolation(err) {
			// Lost an idempotency race; the link exists, which is what we wanted.
			return tx.Commit()
		}
		return fmt.Errorf("insert item_tag: %w", err)
	}

	return tx.Commit()
}

// UnlinkTag removes an item-tag association. Both sides must exist; a missing
// link is a no-op, not an error.
// Returns store.ErrItemNotFound / store.ErrTagNotFound when a side is absent.
func (s *Store) UnlinkTag(ctx context.Context, itemID, tagID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := checkLinkSides(ctx, tx, itemID, tagID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM item_tags WHERE item_id = ? AND tag_id = ?`, itemID, tagID); err != nil {
		return fmt.Errorf("delete item_tag: %w", err)
	}

	return tx.Commit()
}

// checkLinkSides verifies both the item and the tag exist within tx.
func checkLinkSides(ctx context.Context, tx *sql.Tx, itemID, tagID string) error {
	var exists int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, itemID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}

	err = tx.QueryRowContext(ctx, `SELECT 1 FROM tags WHERE id = ?`, tagID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrTagNotFound
	}
	if err != nil {
		return fmt.Errorf("check tag: %w", err)
	}

	return nil
}

// ListTagsForItem returns all tags linked to an item in link insertion order.
func (s *Store) ListTagsForItem(ctx context.Context, itemID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.store_id, t.created_at, t.updated_at
		FROM tags t
		JOIN item_tags it ON it.tag_id = t.id
		WHERE it.item_id = ?
		ORDER BY it.rowid ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query item tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// ListItemsForTag returns all items linked to a tag in link insertion order.
func (s *Store) ListItemsForTag(ctx context.Context, tagID string) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.name, i.price, i.description, i.store_id, i.created_at, i.updated_at
		FROM items i
		JOIN item_tags it ON it.item_id = i.id
		WHERE it.tag_id = ?
		ORDER BY it.rowid ASC`, tagID)
	if err != nil {
		return nil, fmt.Errorf("query tag items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListItemTags returns every association row. Used by integrity checks and
// tests scanning for orphaned links.
func (s *Store) ListItemTags(ctx context.Context) ([]*domain.ItemTag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, tag_id, created_at FROM item_tags ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query item_tags: %w", err)
	}
	defer rows.Close()

	var links []*domain.ItemTag
	for rows.Next() {
		var (
			link      domain.ItemTag
			createdAt string
		)
		if err := rows.Scan(&link.ID, &link.ItemID, &link.TagID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan item_tag: %w", err)
		}
		link.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		links = append(links, &link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	if links == nil {
		links = []*domain.ItemTag{}
	}

	return links, nil
}
