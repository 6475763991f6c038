package d1pool

import (
	"context"

	"godata/godata_d1_adapter/models"
	"godata/godata_d1_adapter/storage/d1"
)

var D1Pool = make(map[string]*Pool) // there we save d1 clients by database_id

// Pool wraps one remote database's execution client so processes that span
// several databases can route by database id.
type Pool struct {
	Client *d1.Client
}

func (b *Pool) ExecuteSQL(ctx context.Context, sqlText string, params []any) (*models.QueryResult, error) {
	return b.Client.ExecuteSQL(ctx, sqlText, params)
}

func Add(databaseId string, conn *Pool) {
	if databaseId == "" {
		return
	}

	_, ok := D1Pool[databaseId]
	if ok {
		return
	}

	D1Pool[databaseId] = conn
}

func Get(databaseId string) (conn *Pool) {
	if databaseId == "" {
		return nil
	}

	pool, ok := D1Pool[databaseId]
	if !ok {
		return nil
	}

	return pool
}

func Remove(databaseId string) {
	delete(D1Pool, databaseId)
}
