package domain

import "time"

// Tag is a label scoped to a single store. Tag names are unique within a
// store but may repeat across stores.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StoreID   string    `json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemTag is one link in the item-tag many-to-many relation. The association
// row is the owned artifact; neither item nor tag owns the other.
type ItemTag struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
