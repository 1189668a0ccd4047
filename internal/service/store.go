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

// StoreService orchestrates store operations.
type StoreService struct {
	store  store.Store
	logger *slog.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(st store.Store, logger *slog.Logger) *StoreService {
	return &StoreService{
		store:  st,
		logger: logger,
	}
}

// CreateStoreRequest contains the data for creating a store.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

// StoreDetail is a store with its owned items and tags, the shape the API
// serializes for single-store responses.
type StoreDetail struct {
	Store *domain.Store
	Items []*domain.Item
	Tags  []*domain.Tag
}

// CreateStore creates a new store. The name must be unique across all stores.
func (s *StoreService) CreateStore(ctx context.Context, req CreateStoreRequest) (*domain.Store, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	storeID, err := id.Generate(id.PrefixStore)
	if err != nil {
		return nil, fmt.Errorf("generate store ID: %w", err)
	}

	now := time.Now()
	st := &domain.Store{
		ID:        storeID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateStore(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("store created", "store_id", st.ID, "name", st.Name)

	return st, nil
}

// GetStore returns a store with its items and tags.
func (s *StoreService) GetStore(ctx context.Context, storeID string) (*StoreDetail, error) {
	st, err := s.store.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, st)
}

// ListStores returns all stores with their items and tags, in insertion order.
func (s *StoreService) ListStores(ctx context.Context) ([]*StoreDetail, error) {
	stores, err := s.store.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]*StoreDetail, len(stores))
	for i, st := range stores {
		d, err := s.detail(ctx, st)
		if err != nil {
			return nil, err
		}
		details[i] = d
	}

	return details, nil
}

// DeleteStore removes a store and cascades to its items, tags, and their
// item-tag links.
func (s *StoreService) DeleteStore(ctx context.Context, storeID string) error {
	if err := s.store.DeleteStore(ctx, storeID); err != nil {
		return err
	}

	s.logger.Info("store deleted", "store_id", storeID)

	return nil
}

func (s *StoreService) detail(ctx context.Context, st *domain.Store) (*StoreDetail, error) {
	items, err := s.store.ListItemsForStore(ctx, st.ID)
	if err != nil {
		return nil, fmt.Errorf("list items for store: %w", err)
	}

	tags, err := s.store.ListTagsForStore(ctx, st.ID)
	if err != nil {
		return nil, fmt.Errorf("list tags for store: %w", err)
	}

	return &StoreDetail{
		Store: st,
		Items: items,
		Tags:  tags,
	}, nil
}
