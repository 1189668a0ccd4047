package api

import (
	"time"

	"github.com/storehubapp/storehub-server/internal/domain"
	"github.com/storehubapp/storehub-server/internal/service"
)

// Summary records are the minimal shapes embedded inside other responses,
// breaking the store/item/tag serialization cycle.

// StoreSummary is the minimal store shape nested in item and tag responses.
type StoreSummary struct {
	ID   string `json:"id" doc:"Store ID"`
	Name string `json:"name" doc:"Store name"`
}

// ItemSummary is the minimal item shape nested in store and tag responses.
type ItemSummary struct {
	ID    string  `json:"id" doc:"Item ID"`
	Name  string  `json:"name" doc:"Item name"`
	Price float64 `json:"price" doc:"Item price"`
}

// TagSummary is the minimal tag shape nested in store and item responses.
type TagSummary struct {
	ID   string `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// StoreResponse contains store data with its items and tags.
type StoreResponse struct {
	ID        string        `json:"id" doc:"Store ID"`
	Name      string        `json:"name" doc:"Store name"`
	Items     []ItemSummary `json:"items" doc:"Items in this store"`
	Tags      []TagSummary  `json:"tags" doc:"Tags in this store"`
	CreatedAt time.Time     `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time     `json:"updated_at" doc:"Last update time"`
}

// ItemResponse contains item data with its store and tags. Store is null for
// items created through update that never belonged to a store.
type ItemResponse struct {
	ID          string        `json:"id" doc:"Item ID"`
	Name        string        `json:"name" doc:"Item name"`
	Price       float64       `json:"price" doc:"Item price"`
	Description string        `json:"description,omitempty" doc:"Item description"`
	Store       *StoreSummary `json:"store" doc:"Owning store"`
	Tags        []TagSummary  `json:"tags" doc:"Linked tags"`
	CreatedAt   time.Time     `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time     `json:"updated_at" doc:"Last update time"`
}

// TagResponse contains tag data with its store and linked items.
type TagResponse struct {
	ID        string        `json:"id" doc:"Tag ID"`
	Name      string        `json:"name" doc:"Tag name"`
	Store     StoreSummary  `json:"store" doc:"Owning store"`
	Items     []ItemSummary `json:"items" doc:"Linked items"`
	CreatedAt time.Time     `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time     `json:"updated_at" doc:"Last update time"`
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Mapping helpers ===

func mapStoreSummary(st *domain.Store) StoreSummary {
	return StoreSummary{ID: st.ID, Name: st.Name}
}

func mapItemSummaries(items []*domain.Item) []ItemSummary {
	out := make([]ItemSummary, len(items))
	for i, it := range items {
		out[i] = ItemSummary{ID: it.ID, Name: it.Name, Price: it.Price}
	}
	return out
}

func mapTagSummaries(tags []*domain.Tag) []TagSummary {
	out := make([]TagSummary, len(tags))
	for i, t := range tags {
		out[i] = TagSummary{ID: t.ID, Name: t.Name}
	}
	return out
}

func mapStoreResponse(d *service.StoreDetail) StoreResponse {
	return StoreResponse{
		ID:        d.Store.ID,
		Name:      d.Store.Name,
		Items:     mapItemSummaries(d.Items),
		Tags:      mapTagSummaries(d.Tags),
		CreatedAt: d.Store.CreatedAt,
		UpdatedAt: d.Store.UpdatedAt,
	}
}

func mapItemResponse(d *service.ItemDetail) ItemResponse {
	resp := ItemResponse{
		ID:          d.Item.ID,
		Name:        d.Item.Name,
		Price:       d.Item.Price,
		Description: d.Item.Description,
		Tags:        mapTagSummaries(d.Tags),
		CreatedAt:   d.Item.CreatedAt,
		UpdatedAt:   d.Item.UpdatedAt,
	}
	if d.Store != nil {
		summary := mapStoreSummary(d.Store)
		resp.Store = &summary
	}
	return resp
}

func mapTagResponse(d *service.TagDetail) TagResponse {
	return TagResponse{
		ID:        d.Tag.ID,
		Name:      d.Tag.Name,
		Store:     mapStoreSummary(d.Store),
		Items:     mapItemSummaries(d.Items),
		CreatedAt: d.Tag.CreatedAt,
		UpdatedAt: d.Tag.UpdatedAt,
	}
}
