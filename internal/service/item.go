package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/storehubapp/storehub-server/internal/domain"
	"github.com/storehubapp/storehub-server/internal/id"
	"github.com/storehubapp/storehub-server/internal/store"
)

// ItemService orchestrates item operations.
type ItemService struct {
	store  store.Store
	logger *slog.Logger
}

// NewItemService creates a new item service.
func NewItemService(st store.Store, logger *slog.Logger) *ItemService {
	return &ItemService{
		store:  st,
		logger: logger,
	}
}

// CreateItemRequest contains the data for creating an item.
type CreateItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=80"`
	Price       float64 `json:"price" validate:"gte=0"`
	StoreID     string  `json:"store_id" validate:"required"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=500"`
}

// UpsertItemRequest contains the data for updating an item in place, or
// creating it under the caller-supplied ID when it does not exist.
type UpsertItemRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=80"`
	Price float64 `json:"price" validate:"gte=0"`
}

// ItemDetail is an item with its owning store and linked tags. Store is nil
// for items created through upsert that never belonged to a store.
type ItemDetail struct {
	Item  *domain.Item
	Store *domain.Store
	Tags  []*domain.Tag
}

// CreateItem creates a new item in an existing store.
func (s *ItemService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemDetail, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	itemID, err := id.Generate(id.PrefixItem)
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}

	now := time.Now()
	item := &domain.Item{
		ID:          itemID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		StoreID:     req.StoreID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created", "item_id", item.ID, "store_id", item.StoreID)

	return s.detail(ctx, item)
}

// GetItem returns an item with its store and tags.
func (s *ItemService) GetItem(ctx context.Context, itemID string) (*ItemDetail, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, item)
}

// ListItems returns all items with their stores and tags.
func (s *ItemService) ListItems(ctx context.Context) ([]*ItemDetail, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]*ItemDetail, len(items))
	for i, item := range items {
		d, err := s.detail(ctx, item)
		if err != nil {
			return nil, err
		}
		details[i] = d
	}

	return details, nil
}

// UpsertItem updates an item's name and price, or creates the item under the
// given ID when it does not exist. Created items have no store.
func (s *ItemService) UpsertItem(ctx context.Context, itemID string, req UpsertItemRequest) (*ItemDetail, bool, error) {
	if err := validate.Validate(req); err != nil {
		return nil, false, err
	}

	now := time.Now()
	item := &domain.Item{
		ID:        itemID,
		Name:      req.Name,
		Price:     req.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.store.UpsertItem(ctx, item)
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("item upserted", "item_id", itemID, "created", created)

	detail, err := s.detail(ctx, item)
	if err != nil {
		return nil, false, err
	}

	return detail, created, nil
}

// DeleteItem removes an item and its item-tag links.
func (s *ItemService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.logger.Info("item deleted", "item_id", itemID)

	return nil
}

func (s *ItemService) detail(ctx context.Context, item *domain.Item) (*ItemDetail, error) {
	var st *domain.Store
	if item.StoreID != "" {
		var err error
		st, err = s.store.GetStore(ctx, item.StoreID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("get store for item: %w", err)
		}
	}

	tags, err := s.store.ListTagsForItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list tags for item: %w", err)
	}

	return &ItemDetail{
		Item:  item,
		Store: st,
		Tags:  tags,
	}, nil
}
