// Package store defines the persistence interface for the StoreHub server.
package store

import (
	"context"

	"github.com/storehubapp/storehub-server/internal/domain"
)

// Store defines the interface for all persistence operations. Every
// check-then-act sequence (uniqueness checks, cascade deletes, link
// management) runs inside a single transaction in the implementation, with
// UNIQUE constraints as the backstop against races the checks cannot close.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Stores
	CreateStore(ctx context.Context, s *domain.Store) error
	GetStore(ctx context.Context, id string) (*domain.Store, error)
	ListStores(ctx context.Context) ([]*domain.Store, error)
	DeleteStore(ctx context.Context, id string) error
	ListItemsForStore(ctx context.Context, storeID string) ([]*domain.Item, error)
	ListTagsForStore(ctx context.Context, storeID string) ([]*domain.Tag, error)

	// Items
	CreateItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]*domain.Item, error)
	UpsertItem(ctx context.Context, item *domain.Item) (created bool, err error)
	DeleteItem(ctx context.Context, id string) error

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	// Item-tag links
	LinkTag(ctx context.Context, itemID, tagID string) error
	UnlinkTag(ctx context.Context, itemID, tagID string) error
	ListTagsForItem(ctx context.Context, itemID string) ([]*domain.Tag, error)
	ListItemsForTag(ctx context.Context, tagID string) ([]*domain.Item, error)
	ListItemTags(ctx context.Context) ([]*domain.ItemTag, error)

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
