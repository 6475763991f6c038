package d1

import (
	"context"

	"godata/godata_d1_adapter/config"
	"godata/godata_d1_adapter/pkg/logger"
	"godata/godata_d1_adapter/storage"
)

type Store struct {
	cfg      config.Config
	client   *Client
	registry *tableRegistry
	log      logger.LoggerI
	record   storage.RecordRepoI
}

// NewAdapter builds the adapter and launches the table-registry catalog seed
// in the background. The constructor does not wait for the seed: operations
// issued before it completes may provision a table redundantly, which is
// harmless because the DDL is idempotent.
func NewAdapter(ctx context.Context, cfg config.Config, log logger.LoggerI) (storage.StorageI, error) {
	client := NewClient(cfg, log)
	registry := newTableRegistry(client, cfg.AutocreateTables, log)

	go registry.warm(context.WithoutCancel(ctx))

	return &Store{
		cfg:      cfg,
		client:   client,
		registry: registry,
		log:      log,
	}, nil
}

func (s *Store) Record() storage.RecordRepoI {
	if s.record == nil {
		s.record = NewRecordRepo(s.client, s.registry, s.log)
	}

	return s.record
}

func (s *Store) CloseDB() {
	s.client.Close()
}
