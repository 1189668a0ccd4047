package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/storehubapp/storehub-server/internal/api"
	"github.com/storehubapp/storehub-server/internal/config"
	"github.com/storehubapp/storehub-server/internal/logger"
	"github.com/storehubapp/storehub-server/internal/metrics"
	"github.com/storehubapp/storehub-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	services := &api.Services{
		Store: do.MustInvoke[*service.StoreService](i),
		Item:  do.MustInvoke[*service.ItemService](i),
		Tag:   do.MustInvoke[*service.TagService](i),
		Auth:  do.MustInvoke[*service.AuthService](i),
		User:  do.MustInvoke[*service.UserService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, m, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "name", cfg.Server.Name)

	return &HTTPServerHandle{Server: srv}, nil
}
