package domain

import "time"

// Item is a product listed in exactly one store. StoreID is set at creation
// and never reassigned. Items relate to tags many-to-many through ItemTag.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	StoreID     string    `json:"store_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
