package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createStore creates a store over HTTP and returns its response.
func (ts *testServer) createStore(t *testing.T, token, name string) StoreResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/stores",
		map[string]any{"name": name},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, "Create store failed: %s", resp.Body.String())

	var body StoreResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	return body
}

// createItem creates an item over HTTP and returns its response.
func (ts *testServer) createItem(t *testing.T, token, storeID, name string, price float64) ItemResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/items",
		map[string]any{"name": name, "price": price, "store_id": storeID},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, "Create item failed: %s", resp.Body.String())

	var body ItemResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	return body
}

// createTag creates a tag over HTTP and returns its response.
func (ts *testServer) createTag(t *testing.T, token, storeID, name string) TagResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/stores/"+storeID+"/tags",
		map[string]any{"name": name},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, "Create tag failed: %s", resp.Body.String())

	var body TagResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	return body
}

func TestCreateStore_Success(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")

	assert.NotEmpty(t, store.ID)
	assert.Equal(t, "Groceries", store.Name)
	assert.Empty(t, store.Items)
	assert.Empty(t, store.Tags)
}

func TestCreateStore_DuplicateName(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	ts.createStore(t, token, "Groceries")

	resp := ts.api.Post("/api/v1/stores",
		map[string]any{"name": "Groceries"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestCreateStore_MissingName(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	// Missing required fields are rejected at the schema layer.
	resp := ts.api.Post("/api/v1/stores",
		map[string]any{},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	// An empty name passes the schema but fails field validation.
	resp = ts.api.Post("/api/v1/stores",
		map[string]any{"name": ""},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetStore_IncludesItemsAndTags(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")
	item := ts.createItem(t, token, store.ID, "Milk", 2.49)
	tag := ts.createTag(t, token, store.ID, "dairy")

	resp := ts.api.Get("/api/v1/stores/"+store.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body StoreResponse
	decodeBody(t, resp.Body.Bytes(), &body)

	require.Len(t, body.Items, 1)
	assert.Equal(t, item.ID, body.Items[0].ID)
	assert.InDelta(t, 2.49, body.Items[0].Price, 0.0001)
	require.Len(t, body.Tags, 1)
	assert.Equal(t, tag.ID, body.Tags[0].ID)
}

func TestGetStore_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	resp := ts.api.Get("/api/v1/stores/store-missing", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListStores(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	ts.createStore(t, token, "First")
	ts.createStore(t, token, "Second")

	resp := ts.api.Get("/api/v1/stores", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListStoresResponse
	decodeBody(t, resp.Body.Bytes(), &body)

	require.Len(t, body.Stores, 2)
	assert.Equal(t, "First", body.Stores[0].Name)
	assert.Equal(t, "Second", body.Stores[1].Name)
}

func TestDeleteStore_Cascades(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")
	item := ts.createItem(t, token, store.ID, "Milk", 2.49)
	tag := ts.createTag(t, token, store.ID, "dairy")

	resp := ts.api.Delete("/api/v1/stores/"+store.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusAccepted, resp.Code)

	resp = ts.api.Get("/api/v1/stores/"+store.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/items/"+item.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/tags/"+tag.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateItem_Success(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")
	item := ts.createItem(t, token, store.ID, "Milk", 2.49)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Milk", item.Name)
	require.NotNil(t, item.Store)
	assert.Equal(t, store.ID, item.Store.ID)
	assert.Empty(t, item.Tags)
}

func TestCreateItem_StoreNotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	resp := ts.api.Post("/api/v1/items",
		map[string]any{"name": "Milk", "price": 2.49, "store_id": "store-missing"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateItem_NegativePrice(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")

	resp := ts.api.Post("/api/v1/items",
		map[string]any{"name": "Milk", "price": -1.0, "store_id": store.ID},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateItem_UpdatesExisting(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")
	item := ts.createItem(t, token, store.ID, "widget", 9.99)

	resp := ts.api.Put("/api/v1/items/"+item.ID,
		map[string]any{"name": "widget2", "price": 12.99},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ItemResponse
	decodeBody(t, resp.Body.Bytes(), &body)

	assert.Equal(t, item.ID, body.ID)
	assert.Equal(t, "widget2", body.Name)
	assert.InDelta(t, 12.99, body.Price, 0.0001)

	// Still owned by the same store.
	require.NotNil(t, body.Store)
	assert.Equal(t, store.ID, body.Store.ID)
}

func TestUpdateItem_CreatesUnderUnknownID(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	resp := ts.api.Put("/api/v1/items/item-explicit",
		map[string]any{"name": "new", "price": 1.0},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ItemResponse
	decodeBody(t, resp.Body.Bytes(), &body)

	assert.Equal(t, "item-explicit", body.ID)
	assert.Nil(t, body.Store)
}

func TestDeleteItem_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	resp := ts.api.Delete("/api/v1/items/item-missing", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateTag_DuplicateInStore(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	storeA := ts.createStore(t, token, "Store A")
	storeB := ts.createStore(t, token, "Store B")

	ts.createTag(t, token, storeA.ID, "red")

	// Same name in the same store conflicts.
	resp := ts.api.Post("/api/v1/stores/"+storeA.ID+"/tags",
		map[string]any{"name": "red"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusConflict, resp.Code)

	// Same name in a different store is fine.
	tagB := ts.createTag(t, token, storeB.ID, "red")
	assert.Equal(t, "red", tagB.Name)
	assert.Equal(t, storeB.ID, tagB.Store.ID)
}

func TestCreateTag_StoreNotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	resp := ts.api.Post("/api/v1/stores/store-missing/tags",
		map[string]any{"name": "red"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListStoreTags_StoreNotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	resp := ts.api.Get("/api/v1/stores/store-missing/tags", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestLinkTag_ReturnsTagSet(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")
	item := ts.createItem(t, token, store.ID, "Milk", 2.49)
	dairy := ts.createTag(t, token, store.ID, "dairy")
	fresh := ts.createTag(t, token, store.ID, "fresh")

	resp := ts.api.Post("/api/v1/items/"+item.ID+"/tags/"+dairy.ID,
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	var body ItemTagsResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	require.Len(t, body.Tags, 1)

	resp = ts.api.Post("/api/v1/items/"+item.ID+"/tags/"+fresh.ID,
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	decodeBody(t, resp.Body.Bytes(), &body)
	require.Len(t, body.Tags, 2)

	// Linking again is idempotent.
	resp = ts.api.Post("/api/v1/items/"+item.ID+"/tags/"+dairy.ID,
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Len(t, body.Tags, 2)
}

func TestLinkTag_MissingSides(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")
	item := ts.createItem(t, token, store.ID, "Milk", 2.49)
	tag := ts.createTag(t, token, store.ID, "dairy")

	resp := ts.api.Post("/api/v1/items/item-missing/tags/"+tag.ID,
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Post("/api/v1/items/"+item.ID+"/tags/tag-missing",
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUnlinkTag(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")
	item := ts.createItem(t, token, store.ID, "Milk", 2.49)
	tag := ts.createTag(t, token, store.ID, "dairy")

	resp := ts.api.Post("/api/v1/items/"+item.ID+"/tags/"+tag.ID,
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Delete("/api/v1/items/"+item.ID+"/tags/"+tag.ID,
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusAccepted, resp.Code)

	var body UnlinkTagResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Equal(t, item.ID, body.Item.ID)
	assert.Equal(t, tag.ID, body.Tag.ID)

	// Unlinking again is a no-op, still a success.
	resp = ts.api.Delete("/api/v1/items/"+item.ID+"/tags/"+tag.ID,
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusAccepted, resp.Code)

	// Missing sides are 404.
	resp = ts.api.Delete("/api/v1/items/item-missing/tags/"+tag.ID,
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteTag_RemovesLinksOnly(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t)

	store := ts.createStore(t, token, "Groceries")
	item := ts.createItem(t, token, store.ID, "Milk", 2.49)
	tag := ts.createTag(t, token, store.ID, "dairy")

	resp := ts.api.Post("/api/v1/items/"+item.ID+"/tags/"+tag.ID,
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Delete("/api/v1/tags/"+tag.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusAccepted, resp.Code)

	// The item survives with no tags.
	resp = ts.api.Get("/api/v1/items/"+item.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ItemResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Empty(t, body.Tags)
}
