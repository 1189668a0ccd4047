package api

import (
	"github.com/storehubapp/storehub-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Store *service.StoreService
	Item  *service.ItemService
	Tag   *service.TagService
	Auth  *service.AuthService
	User  *service.UserService
}
