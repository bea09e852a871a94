package cli

import (
	"fmt"
	"os"

	"catalog-service/internal/config"
	"catalog-service/internal/kvstore"
	"catalog-service/internal/store"
)

// openStore loads configuration and opens the bolt-backed store every
// command operates on. The caller owns closing the returned BoltStore.
func openStore() (*config.Config, *kvstore.BoltStore, *store.KVStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o750); err != nil {
		return nil, nil, nil, fmt.Errorf("create data directory: %w", err)
	}
	bolt, err := kvstore.OpenBolt(cfg.Storage.Path())
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, bolt, store.NewKVStore(bolt), nil
}
