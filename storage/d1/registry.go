package d1

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"godata/godata_d1_adapter/models"
	"godata/godata_d1_adapter/pkg/helper"
	"godata/godata_d1_adapter/pkg/logger"
)

const listTablesQuery = `SELECT name FROM sqlite_master WHERE type = 'table'`

// tableRegistry caches the set of table names known to exist remotely, so
// CRUD operations skip the schema round-trip after the first call per table.
// Names are never removed: there is no table-drop support.
type tableRegistry struct {
	mu     sync.Mutex
	tables map[string]struct{}

	client     *Client
	autocreate bool
	log        logger.LoggerI
}

func newTableRegistry(client *Client, autocreate bool, log logger.LoggerI) *tableRegistry {
	return &tableRegistry{
		tables:     make(map[string]struct{}),
		client:     client,
		autocreate: autocreate,
		log:        log,
	}
}

func (r *tableRegistry) has(table string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tables[table]
	return ok
}

func (r *tableRegistry) add(table string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tables[table] = struct{}{}
}

// Ensure provisions the table on first sight. Concurrent calls for the same
// uncached table may both issue the CREATE; that is harmless because the DDL
// carries IF NOT EXISTS. A provisioning failure is not cached, so the next
// call retries.
func (r *tableRegistry) Ensure(ctx context.Context, idAttribute string, props []models.Property, table string) error {
	if r.has(table) {
		return nil
	}

	if !r.autocreate {
		return helper.TableNotFoundErr(table)
	}

	ddl := compileCreateTable(idAttribute, props, table)
	if _, err := r.client.ExecuteSQL(ctx, ddl, nil); err != nil {
		return errors.Wrapf(err, "error while creating table %s", table)
	}

	r.add(table)
	return nil
}

// warm seeds the cache from the remote catalog. It runs detached from the
// adapter constructor; operations issued before it finishes may trigger a
// redundant CREATE TABLE IF NOT EXISTS.
func (r *tableRegistry) warm(ctx context.Context) {
	res, err := r.client.ExecuteSQL(ctx, listTablesQuery, nil)
	if err != nil {
		r.log.Warn("---WarmTableRegistry--->>> !!!", logger.Error(err))
		return
	}

	for _, row := range res.Results {
		if name := cast.ToString(row["name"]); name != "" {
			r.add(name)
		}
	}
}
