// Package id generates the prefixed NanoID identifiers used across the
// catalog: "store-…", "item-…", "tag-…", "link-…" and "user-…".
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each entity kind. The prefix makes an ID self-describing
// in logs and API payloads.
const (
	PrefixStore = "store"
	PrefixItem  = "item"
	PrefixTag   = "tag"
	PrefixLink  = "link"
	PrefixUser  = "user"
)

// Generate creates a prefixed unique ID, e.g. "store-V1StGXR8_Z5jdHi6B-myT".
// The NanoID part is 21 URL-safe characters.
//
// Returns an error if the system has insufficient entropy for secure
// random generation.
func Generate(prefix string) (string, error) {
	nano, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nano, nil
}
