package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/storehubapp/storehub-server/internal/config"
	"github.com/storehubapp/storehub-server/internal/email"
	"github.com/storehubapp/storehub-server/internal/logger"
	"github.com/storehubapp/storehub-server/internal/revocation"
	"github.com/storehubapp/storehub-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.Database.Path)

	return &StoreHandle{Store: db}, nil
}

// RevocationHandle wraps the token revocation store with shutdown capability.
type RevocationHandle struct {
	revocation.Store
}

// Shutdown implements do.Shutdownable.
func (h *RevocationHandle) Shutdown() error {
	return h.Close()
}

// ProvideRevocationStore provides the token revocation store. Redis when
// configured, an in-process cache otherwise.
func ProvideRevocationStore(i do.Injector) (*RevocationHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Redis.Addr == "" {
		log.Info("Token revocation store: in-process cache")
		return &RevocationHandle{Store: revocation.NewMemoryStore()}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	rs, err := revocation.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	log.Info("Token revocation store: redis", "addr", cfg.Redis.Addr)

	return &RevocationHandle{Store: rs}, nil
}

// ProvideNotifier provides the email notifier. SMTP when configured, a
// log-only notifier otherwise.
func ProvideNotifier(i do.Injector) (email.Notifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.SMTP.Host == "" {
		log.Info("Email delivery disabled, welcome messages are logged only")
		return email.NewLogNotifier(log.Logger), nil
	}

	log.Info("Email delivery enabled", "host", cfg.SMTP.Host, "from", cfg.SMTP.From)

	return email.NewSMTPNotifier(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		log.Logger,
	), nil
}
