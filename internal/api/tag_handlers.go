package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/storehubapp/storehub-server/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/stores/{id}/tags",
		Summary:       "Create tag",
		Description:   "Creates a new tag in a store. Names are unique within a store.",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "listStoreTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/stores/{id}/tags",
		Summary:     "List store tags",
		Description: "Returns all tags in a store",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListStoreTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID with its store and linked items",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteTag",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tags/{id}",
		Summary:       "Delete tag",
		Description:   "Deletes a tag and its item links",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusAccepted,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "linkTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/items/{id}/tags/{tagID}",
		Summary:       "Link tag to item",
		Description:   "Links a tag to an item and returns the item's current tag set. Idempotent.",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleLinkTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "unlinkTag",
		Method:        http.MethodDelete,
		Path:          "/api/v1/items/{id}/tags/{tagID}",
		Summary:       "Unlink tag from item",
		Description:   "Removes the link between a tag and an item. A missing link is a no-op.",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusAccepted,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleUnlinkTag)
}

// === DTOs ===

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80" doc:"Tag name"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Store ID"`
	Body          CreateTagRequest
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// ListStoreTagsInput contains parameters for listing a store's tags.
type ListStoreTagsInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Store ID"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"List of tags"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// GetTagInput contains parameters for getting a tag.
type GetTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Tag ID"`
}

// DeleteTagInput contains parameters for deleting a tag.
type DeleteTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Tag ID"`
}

// LinkTagInput contains parameters for linking a tag to an item.
type LinkTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
	TagID         string `path:"tagID" doc:"Tag ID"`
}

// ItemTagsResponse contains an item's current tag set.
type ItemTagsResponse struct {
	Tags []TagSummary `json:"tags" doc:"Tags linked to the item"`
}

// ItemTagsOutput wraps the item tags response for Huma.
type ItemTagsOutput struct {
	Body ItemTagsResponse
}

// UnlinkTagInput contains parameters for unlinking a tag from an item.
type UnlinkTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
	TagID         string `path:"tagID" doc:"Tag ID"`
}

// UnlinkTagResponse reports what was unlinked.
type UnlinkTagResponse struct {
	Message string      `json:"message" doc:"Success message"`
	Item    ItemSummary `json:"item" doc:"The item"`
	Tag     TagSummary  `json:"tag" doc:"The tag"`
}

// UnlinkTagOutput wraps the unlink response for Huma.
type UnlinkTagOutput struct {
	Body UnlinkTagResponse
}

// === Handlers ===

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	detail, err := s.services.Tag.CreateTag(ctx, input.ID, service.CreateTagRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: mapTagResponse(detail)}, nil
}

func (s *Server) handleListStoreTags(ctx context.Context, input *ListStoreTagsInput) (*ListTagsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	details, err := s.services.Tag.ListTagsForStore(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(details))
	for i, d := range details {
		resp[i] = mapTagResponse(d)
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *GetTagInput) (*TagOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	detail, err := s.services.Tag.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: mapTagResponse(detail)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *DeleteTagInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Tag.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag deleted"}}, nil
}

func (s *Server) handleLinkTag(ctx context.Context, input *LinkTagInput) (*ItemTagsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.LinkTag(ctx, input.ID, input.TagID)
	if err != nil {
		return nil, err
	}

	return &ItemTagsOutput{Body: ItemTagsResponse{Tags: mapTagSummaries(tags)}}, nil
}

func (s *Server) handleUnlinkTag(ctx context.Context, input *UnlinkTagInput) (*UnlinkTagOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	item, tag, err := s.services.Tag.UnlinkTag(ctx, input.ID, input.TagID)
	if err != nil {
		return nil, err
	}

	return &UnlinkTagOutput{
		Body: UnlinkTagResponse{
			Message: "Item removed from tag",
			Item:    ItemSummary{ID: item.ID, Name: item.Name, Price: item.Price},
			Tag:     TagSummary{ID: tag.ID, Name: tag.Name},
		},
	}, nil
}
