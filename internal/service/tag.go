package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/storehubapp/storehub-server/internal/domain"
	"github.com/storehubapp/storehub-server/internal/id"
	"github.com/storehubapp/storehub-server/internal/store"
)

// TagService orchestrates tag operations and item-tag links.
// Tags are scoped to a store; the same name may exist in different stores but
// not twice in the same store.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(st store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  st,
		logger: logger,
	}
}

// CreateTagRequest contains the data for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

// TagDetail is a tag with its owning store and linked items.
type TagDetail struct {
	Tag   *domain.Tag
	Store *domain.Store
	Items []*domain.Item
}

// CreateTag creates a new tag in a store. Checks run in order: missing name,
// missing store, duplicate name in store.
func (s *TagService) CreateTag(ctx context.Context, storeID string, req CreateTagRequest) (*TagDetail, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tagID, err := id.Generate(id.PrefixTag)
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	now := time.Now()
	tag := &domain.Tag{
		ID:        tagID,
		Name:      req.Name,
		StoreID:   storeID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "store_id", storeID, "name", tag.Name)

	return s.detail(ctx, tag)
}

// GetTag returns a tag with its store and linked items.
func (s *TagService) GetTag(ctx context.Context, tagID string) (*TagDetail, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, tag)
}

// ListTagsForStore returns all tags in a store. Fails when the store is absent.
func (s *TagService) ListTagsForStore(ctx context.Context, storeID string) ([]*TagDetail, error) {
	// Distinguish a missing store from a store with no tags.
	if _, err := s.store.GetStore(ctx, storeID); err != nil {
		return nil, err
	}

	tags, err := s.store.ListTagsForStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	details := make([]*TagDetail, len(tags))
	for i, tag := range tags {
		d, err := s.detail(ctx, tag)
		if err != nil {
			return nil, err
		}
		details[i] = d
	}

	return details, nil
}

// DeleteTag removes a tag and its item-tag links.
func (s *TagService) DeleteTag(ctx context.Context, tagID string) error {
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		return err
	}

	s.logger.Info("tag deleted", "tag_id", tagID)

	return nil
}

// LinkTag links a tag to an item and returns the item's updated tag set.
// Idempotent: linking an already-linked pair succeeds without a new row.
func (s *TagService) LinkTag(ctx context.Context, itemID, tagID string) ([]*domain.Tag, error) {
	if err := s.store.LinkTag(ctx, itemID, tagID); err != nil {
		return nil, err
	}

	tags, err := s.store.ListTagsForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list tags for item: %w", err)
	}

	s.logger.Info("tag linked", "item_id", itemID, "tag_id", tagID)

	return tags, nil
}

// UnlinkTag removes the link between a tag and an item. A missing link is a
// no-op; a missing item or tag is an error. Returns the item and tag so the
// caller can report what was unlinked.
func (s *TagService) UnlinkTag(ctx context.Context, itemID, tagID string) (*domain.Item, *domain.Tag, error) {
	if err := s.store.UnlinkTag(ctx, itemID, tagID); err != nil {
		return nil, nil, err
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("get item after unlink: %w", err)
	}

	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, nil, fmt.Errorf("get tag after unlink: %w", err)
	}

	s.logger.Info("tag unlinked", "item_id", itemID, "tag_id", tagID)

	return item, tag, nil
}

func (s *TagService) detail(ctx context.Context, tag *domain.Tag) (*TagDetail, error) {
	st, err := s.store.GetStore(ctx, tag.StoreID)
	if err != nil {
		return nil, fmt.Errorf("get store for tag: %w", err)
	}

	items, err := s.store.ListItemsForTag(ctx, tag.ID)
	if err != nil {
		return nil, fmt.Errorf("list items for tag: %w", err)
	}

	return &TagDetail{
		Tag:   tag,
		Store: st,
		Items: items,
	}, nil
}
