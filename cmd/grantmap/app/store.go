package app

import (
	"context"

	"github.com/agentstation/grantmap/internal/store/memory"
	"github.com/agentstation/grantmap/internal/store/sqlstore"
	"github.com/agentstation/grantmap/pkg/constants"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/store"
)

// openStore connects the configured gateway, checks it answers and applies
// schema migrations. Any failure here is fatal to the command.
func openStore(ctx context.Context, cfg *Config) (store.Store, error) {
	if cfg.Store == StoreMemory {
		return memory.New(), nil
	}

	dialect, err := sqlstore.ParseDialect(cfg.Store)
	if err != nil {
		return nil, &errors.FatalError{Stage: "open", Err: err}
	}
	st, err := sqlstore.Open(dialect, cfg.DSN)
	if err != nil {
		return nil, &errors.FatalError{Stage: "open", Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, constants.DefaultPingTimeout)
	defer cancel()
	if err := st.Ping(pingCtx); err != nil {
		_ = st.Close()
		return nil, &errors.FatalError{Stage: "ping", Err: err}
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, &errors.FatalError{Stage: "migrate", Err: err}
	}
	return st, nil
}
