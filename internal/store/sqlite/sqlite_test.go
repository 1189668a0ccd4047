package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storehubapp/storehub-server/internal/domain"
	"github.com/storehubapp/storehub-server/internal/store"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func makeStore(id, name string) *domain.Store {
	now := time.Now()
	return &domain.Store{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
}

func makeItem(id, name, storeID string, price float64) *domain.Item {
	now := time.Now()
	return &domain.Item{ID: id, Name: name, Price: price, StoreID: storeID, CreatedAt: now, UpdatedAt: now}
}

func makeTag(id, name, storeID string) *domain.Tag {
	now := time.Now()
	return &domain.Tag{ID: id, Name: name, StoreID: storeID, CreatedAt: now, UpdatedAt: now}
}

// Store operations.

func TestCreateStore(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	st := makeStore("store-001", "Groceries")
	require.NoError(t, s.CreateStore(ctx, st))

	retrieved, err := s.GetStore(ctx, "store-001")
	require.NoError(t, err)
	assert.Equal(t, st.ID, retrieved.ID)
	assert.Equal(t, st.Name, retrieved.Name)
	assert.WithinDuration(t, st.CreatedAt, retrieved.CreatedAt, time.Millisecond)
}

func TestCreateStore_DuplicateName(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))

	err := s.CreateStore(ctx, makeStore("store-002", "Groceries"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// Storage unchanged: only the first store exists.
	stores, err := s.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "store-001", stores[0].ID)
}

func TestGetStore_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetStore(context.Background(), "store-missing")
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestListStores_InsertionOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	stores, err := s.ListStores(ctx)
	require.NoError(t, err)
	assert.NotNil(t, stores)
	assert.Empty(t, stores)

	require.NoError(t, s.CreateStore(ctx, makeStore("store-b", "Beta")))
	require.NoError(t, s.CreateStore(ctx, makeStore("store-a", "Alpha")))

	stores, err = s.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "store-b", stores[0].ID)
	assert.Equal(t, "store-a", stores[1].ID)
}

func TestDeleteStore_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.DeleteStore(context.Background(), "store-missing")
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestDeleteStore_CascadeLeavesNoOrphans(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))
	require.NoError(t, s.CreateStore(ctx, makeStore("store-002", "Hardware")))

	require.NoError(t, s.CreateItem(ctx, makeItem("item-001", "Milk", "store-001", 2.49)))
	require.NoError(t, s.CreateItem(ctx, makeItem("item-002", "Bread", "store-001", 1.99)))
	require.NoError(t, s.CreateItem(ctx, makeItem("item-003", "Hammer", "store-002", 12.50)))

	require.NoError(t, s.CreateTag(ctx, makeTag("tag-001", "dairy", "store-001")))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-002", "bakery", "store-001")))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-003", "tools", "store-002")))

	require.NoError(t, s.LinkTag(ctx, "item-001", "tag-001"))
	require.NoError(t, s.LinkTag(ctx, "item-002", "tag-002"))
	require.NoError(t, s.LinkTag(ctx, "item-003", "tag-003"))

	require.NoError(t, s.DeleteStore(ctx, "store-001"))

	// The store, its items, and its tags are gone.
	_, err := s.GetStore(ctx, "store-001")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetItem(ctx, "item-001")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetItem(ctx, "item-002")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTag(ctx, "tag-001")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The other store is untouched.
	_, err = s.GetItem(ctx, "item-003")
	require.NoError(t, err)

	// Full scan: no orphaned link rows remain.
	links, err := s.ListItemTags(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "item-003", links[0].ItemID)
	assert.Equal(t, "tag-003", links[0].TagID)
}

// Item operations.

func TestCreateItem_StoreMustExist(t *testing.T) {
	s := setupTestStore(t)

	err := s.CreateItem(context.Background(), makeItem("item-001", "Milk", "store-missing", 2.49))
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestCreateItem_WithDescription(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))

	item := makeItem("item-001", "Milk", "store-001", 2.49)
	item.Description = "Whole milk, 1 liter"
	require.NoError(t, s.CreateItem(ctx, item))

	retrieved, err := s.GetItem(ctx, "item-001")
	require.NoError(t, err)
	assert.Equal(t, "Whole milk, 1 liter", retrieved.Description)
	assert.InDelta(t, 2.49, retrieved.Price, 0.0001)
}

func TestUpsertItem_UpdatesInPlace(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))

	item := makeItem("item-001", "widget", "store-001", 9.99)
	item.Description = "A widget"
	require.NoError(t, s.CreateItem(ctx, item))

	created, err := s.UpsertItem(ctx, makeItem("item-001", "widget2", "", 12.99))
	require.NoError(t, err)
	assert.False(t, created)

	retrieved, err := s.GetItem(ctx, "item-001")
	require.NoError(t, err)
	assert.Equal(t, "widget2", retrieved.Name)
	assert.InDelta(t, 12.99, retrieved.Price, 0.0001)

	// Store, description, and creation time survive the update.
	assert.Equal(t, "store-001", retrieved.StoreID)
	assert.Equal(t, "A widget", retrieved.Description)
	assert.WithinDuration(t, item.CreatedAt, retrieved.CreatedAt, time.Millisecond)
}

func TestUpsertItem_CreatesUnderExplicitID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.UpsertItem(ctx, makeItem("item-explicit", "new", "", 1.0))
	require.NoError(t, err)
	assert.True(t, created)

	retrieved, err := s.GetItem(ctx, "item-explicit")
	require.NoError(t, err)
	assert.Equal(t, "new", retrieved.Name)
	assert.Empty(t, retrieved.StoreID)
}

func TestDeleteItem_RemovesLinks(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))
	require.NoError(t, s.CreateItem(ctx, makeItem("item-001", "Milk", "store-001", 2.49)))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-001", "dairy", "store-001")))
	require.NoError(t, s.LinkTag(ctx, "item-001", "tag-001"))

	require.NoError(t, s.DeleteItem(ctx, "item-001"))

	// The tag survives, the link does not.
	_, err := s.GetTag(ctx, "tag-001")
	require.NoError(t, err)

	links, err := s.ListItemTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestDeleteItem_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.DeleteItem(context.Background(), "item-missing")
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

// Tag operations.

func TestCreateTag_UniquePerStore(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-a", "A")))
	require.NoError(t, s.CreateStore(ctx, makeStore("store-b", "B")))

	// Create tag "red" in store A.
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-001", "red", "store-a")))

	// "red" again in store A conflicts.
	err := s.CreateTag(ctx, makeTag("tag-002", "red", "store-a"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// "red" in store B succeeds.
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-003", "red", "store-b")))
}

func TestCreateTag_StoreMustExist(t *testing.T) {
	s := setupTestStore(t)

	err := s.CreateTag(context.Background(), makeTag("tag-001", "red", "store-missing"))
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestDeleteTag_RemovesLinks(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))
	require.NoError(t, s.CreateItem(ctx, makeItem("item-001", "Milk", "store-001", 2.49)))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-001", "dairy", "store-001")))
	require.NoError(t, s.LinkTag(ctx, "item-001", "tag-001"))

	require.NoError(t, s.DeleteTag(ctx, "tag-001"))

	_, err := s.GetItem(ctx, "item-001")
	require.NoError(t, err)

	links, err := s.ListItemTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)
}

// Item-tag links.

func TestLinkTag_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))
	require.NoError(t, s.CreateItem(ctx, makeItem("item-001", "Milk", "store-001", 2.49)))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-001", "dairy", "store-001")))

	require.NoError(t, s.LinkTag(ctx, "item-001", "tag-001"))
	require.NoError(t, s.LinkTag(ctx, "item-001", "tag-001"))

	links, err := s.ListItemTags(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestLinkTag_MissingSides(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))
	require.NoError(t, s.CreateItem(ctx, makeItem("item-001", "Milk", "store-001", 2.49)))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-001", "dairy", "store-001")))

	err := s.LinkTag(ctx, "item-missing", "tag-001")
	assert.ErrorIs(t, err, store.ErrItemNotFound)

	err = s.LinkTag(ctx, "item-001", "tag-missing")
	assert.ErrorIs(t, err, store.ErrTagNotFound)
}

func TestUnlinkTag_NoopWhenLinkAbsent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))
	require.NoError(t, s.CreateItem(ctx, makeItem("item-001", "Milk", "store-001", 2.49)))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-001", "dairy", "store-001")))

	// No link exists: still a success.
	require.NoError(t, s.UnlinkTag(ctx, "item-001", "tag-001"))

	// Missing item or tag is an error.
	err := s.UnlinkTag(ctx, "item-missing", "tag-001")
	assert.ErrorIs(t, err, store.ErrItemNotFound)

	err = s.UnlinkTag(ctx, "item-001", "tag-missing")
	assert.ErrorIs(t, err, store.ErrTagNotFound)
}

func TestListTagsForItem(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))
	require.NoError(t, s.CreateItem(ctx, makeItem("item-001", "Milk", "store-001", 2.49)))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-001", "dairy", "store-001")))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-002", "fresh", "store-001")))

	tags, err := s.ListTagsForItem(ctx, "item-001")
	require.NoError(t, err)
	assert.Empty(t, tags)

	require.NoError(t, s.LinkTag(ctx, "item-001", "tag-001"))
	require.NoError(t, s.LinkTag(ctx, "item-001", "tag-002"))

	tags, err = s.ListTagsForItem(ctx, "item-001")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "tag-001", tags[0].ID)
	assert.Equal(t, "tag-002", tags[1].ID)
}

// Users.

func TestCreateUser_CollisionOnUsernameOrEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now()
	user := &domain.User{
		ID:           "user-001",
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.CreateUser(ctx, user))

	// Username collision with a different email.
	dup := &domain.User{
		ID:           "user-002",
		Username:     "bob",
		Email:        "other@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// Email collision with a different username.
	dup = &domain.User{
		ID:           "user-003",
		Username:     "alice",
		Email:        "bob@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserByUsername(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, s.CreateUser(ctx, &domain.User{
		ID:           "user-001",
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	user, err := s.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "user-001", user.ID)

	_, err = s.GetUserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, s.CreateUser(ctx, &domain.User{
		ID:           "user-001",
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	require.NoError(t, s.DeleteUser(ctx, "user-001"))

	_, err := s.GetUser(ctx, "user-001")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = s.DeleteUser(ctx, "user-001")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestPing(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

// Unique-index backstops.
//
// The conflict checks in CreateStore/CreateTag/CreateUser run inside the
// insert transaction, so the UNIQUE-violation branches only fire when a
// concurrent writer commits between check and insert. Simulate the losing
// racer with direct inserts that bypass the checks and verify the driver
// error is classified as the same conflict.

func TestCreateTag_UniqueIndexBackstop(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateStore(ctx, makeStore("store-001", "Groceries")))
	require.NoError(t, s.CreateTag(ctx, makeTag("tag-001", "red", "store-001")))

	now := formatTime(time.Now())
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, store_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		"tag-002", "red", "store-001", now, now)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err), "duplicate (name, store_id) insert should read as a unique violation: %v", err)
}

func TestCreateUser_UniqueIndexBackstop(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, s.CreateUser(ctx, &domain.User{
		ID: "user-001", Username: "alice", Email: "alice@example.com",
		PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	}))

	ts := formatTime(now)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		"user-002", "alice", "other@example.com", "hash", ts, ts)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err), "duplicate username insert should read as a unique violation: %v", err)
}

func TestIsUniqueViolation_OtherErrors(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(context.Canceled))
}
