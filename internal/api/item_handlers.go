package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/storehubapp/storehub-server/internal/service"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createItem",
		Method:        http.MethodPost,
		Path:          "/api/v1/items",
		Summary:       "Create item",
		Description:   "Creates a new item in an existing store",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List items",
		Description: "Returns all items with their stores and tags",
		Tags:        []string{"Items"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get item",
		Description: "Returns an item by ID with its store and tags",
		Tags:        []string{"Items"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPut,
		Path:        "/api/v1/items/{id}",
		Summary:     "Update item",
		Description: "Updates an item's name and price, or creates the item under the given ID when it does not exist",
		Tags:        []string{"Items"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteItem",
		Method:        http.MethodDelete,
		Path:          "/api/v1/items/{id}",
		Summary:       "Delete item",
		Description:   "Deletes an item and its tag links",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusAccepted,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteItem)
}

// === DTOs ===

// CreateItemRequest is the request body for creating an item.
type CreateItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=80" doc:"Item name"`
	Price       float64 `json:"price" validate:"gte=0" doc:"Item price"`
	StoreID     string  `json:"store_id" validate:"required" doc:"Owning store ID"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=500" doc:"Item description"`
}

// CreateItemInput wraps the create item request for Huma.
type CreateItemInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateItemRequest
}

// ItemOutput wraps the item response for Huma.
type ItemOutput struct {
	Body ItemResponse
}

// GetItemInput contains parameters for getting an item.
type GetItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
}

// ListItemsInput contains parameters for listing items.
type ListItemsInput struct {
	Authorization string `header:"Authorization"`
}

// ListItemsResponse contains a list of items.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items" doc:"List of items"`
}

// ListItemsOutput wraps the list items response for Huma.
type ListItemsOutput struct {
	Body ListItemsResponse
}

// UpdateItemRequest is the request body for updating an item.
type UpdateItemRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=80" doc:"Item name"`
	Price float64 `json:"price" validate:"gte=0" doc:"Item price"`
}

// UpdateItemInput wraps the update item request for Huma.
type UpdateItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
	Body          UpdateItemRequest
}

// DeleteItemInput contains parameters for deleting an item.
type DeleteItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
}

// === Handlers ===

func (s *Server) handleCreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	detail, err := s.services.Item.CreateItem(ctx, service.CreateItemRequest{
		Name:        input.Body.Name,
		Price:       input.Body.Price,
		StoreID:     input.Body.StoreID,
		Description: input.Body.Description,
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItemResponse(detail)}, nil
}

func (s *Server) handleListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	details, err := s.services.Item.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ItemResponse, len(details))
	for i, d := range details {
		resp[i] = mapItemResponse(d)
	}

	return &ListItemsOutput{Body: ListItemsResponse{Items: resp}}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *GetItemInput) (*ItemOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	detail, err := s.services.Item.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItemResponse(detail)}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	detail, _, err := s.services.Item.UpsertItem(ctx, input.ID, service.UpsertItemRequest{
		Name:  input.Body.Name,
		Price: input.Body.Price,
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItemResponse(detail)}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *DeleteItemInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Item.DeleteItem(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Item deleted"}}, nil
}
