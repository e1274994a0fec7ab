package shell

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/jsil-dev/host-sdk/go/infrastructure/kvstore"
	_ "github.com/lib/pq" // postgres driver
)

// openStore builds the key-value backend selected by cfg. The returned closer
// releases a database connection the shell opened itself; it is nil otherwise.
// A non-nil db is used for the postgres backend instead of dialing cfg.DSN.
func openStore(ctx context.Context, cfg entities.StorageConfig, db *sqlx.DB) (ports.KVStore, func() error, error) {
	switch cfg.Backend {
	case "", entities.StorageBackendMemory:
		return kvstore.NewMemoryStore(), nil, nil

	case entities.StorageBackendFile:
		if cfg.Path == "" {
			return nil, nil, &errors.ConfigError{Field: "storage.path", Err: fmt.Errorf("required for the file backend")}
		}
		return kvstore.NewFileStore(kvstore.WithPath(cfg.Path)), nil, nil

	case entities.StorageBackendPostgres:
		var closer func() error
		if db == nil {
			if cfg.DSN == "" {
				return nil, nil, &errors.ConfigError{Field: "storage.dsn", Err: fmt.Errorf("required for the postgres backend")}
			}
			conn, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
			}
			db, closer = conn, conn.Close
		}
		store, err := kvstore.NewSQLStore(db, cfg.Table)
		if err == nil {
			err = store.EnsureSchema(ctx)
		}
		if err != nil {
			if closer != nil {
				_ = closer()
			}
			return nil, nil, err
		}
		return store, closer, nil

	default:
		return nil, nil, &errors.ConfigError{Field: "storage.backend", Err: fmt.Errorf("unknown backend %q", cfg.Backend)}
	}
}
