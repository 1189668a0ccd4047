// Package domain contains the core entity types for the StoreHub catalog.
package domain

import "time"

// Store is the top-level catalog aggregate. A store exclusively owns its
// items and tags: deleting a store deletes both collections and every
// item-tag link that references them.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
