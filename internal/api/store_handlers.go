package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/storehubapp/storehub-server/internal/service"
)

func (s *Server) registerStoreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createStore",
		Method:        http.MethodPost,
		Path:          "/api/v1/stores",
		Summary:       "Create store",
		Description:   "Creates a new store. Names are unique across all stores.",
		Tags:          []string{"Stores"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "listStores",
		Method:      http.MethodGet,
		Path:        "/api/v1/stores",
		Summary:     "List stores",
		Description: "Returns all stores with their items and tags",
		Tags:        []string{"Stores"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListStores)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStore",
		Method:      http.MethodGet,
		Path:        "/api/v1/stores/{id}",
		Summary:     "Get store",
		Description: "Returns a store by ID with its items and tags",
		Tags:        []string{"Stores"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetStore)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteStore",
		Method:        http.MethodDelete,
		Path:          "/api/v1/stores/{id}",
		Summary:       "Delete store",
		Description:   "Deletes a store, its items, its tags, and their links",
		Tags:          []string{"Stores"},
		DefaultStatus: http.StatusAccepted,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteStore)
}

// === DTOs ===

// CreateStoreRequest is the request body for creating a store.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80" doc:"Store name"`
}

// CreateStoreInput wraps the create store request for Huma.
type CreateStoreInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateStoreRequest
}

// StoreOutput wraps the store response for Huma.
type StoreOutput struct {
	Body StoreResponse
}

// GetStoreInput contains parameters for getting a store.
type GetStoreInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Store ID"`
}

// ListStoresInput contains parameters for listing stores.
type ListStoresInput struct {
	Authorization string `header:"Authorization"`
}

// ListStoresResponse contains a list of stores.
type ListStoresResponse struct {
	Stores []StoreResponse `json:"stores" doc:"List of stores"`
}

// ListStoresOutput wraps the list stores response for Huma.
type ListStoresOutput struct {
	Body ListStoresResponse
}

// DeleteStoreInput contains parameters for deleting a store.
type DeleteStoreInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Store ID"`
}

// === Handlers ===

func (s *Server) handleCreateStore(ctx context.Context, input *CreateStoreInput) (*StoreOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	st, err := s.services.Store.CreateStore(ctx, service.CreateStoreRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Store.GetStore(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	return &StoreOutput{Body: mapStoreResponse(detail)}, nil
}

func (s *Server) handleListStores(ctx context.Context, input *ListStoresInput) (*ListStoresOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	details, err := s.services.Store.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]StoreResponse, len(details))
	for i, d := range details {
		resp[i] = mapStoreResponse(d)
	}

	return &ListStoresOutput{Body: ListStoresResponse{Stores: resp}}, nil
}

func (s *Server) handleGetStore(ctx context.Context, input *GetStoreInput) (*StoreOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	detail, err := s.services.Store.GetStore(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &StoreOutput{Body: mapStoreResponse(detail)}, nil
}

func (s *Server) handleDeleteStore(ctx context.Context, input *DeleteStoreInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Store.DeleteStore(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Store deleted"}}, nil
}
