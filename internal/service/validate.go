// Package service implements the business logic for the StoreHub catalog and
// its users. Services validate input, orchestrate storage operations, and
// compose the nested response shapes the API layer serializes.
package service

import (
	"github.com/storehubapp/storehub-server/internal/validation"
)

// validate is a shared validator instance for request validation.
var validate = validation.New()
