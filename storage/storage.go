package storage

import (
	"context"

	"godata/godata_d1_adapter/models"
)

type StorageI interface {
	Record() RecordRepoI
	CloseDB()
}

// RecordRepoI is the adapter's whole contract toward the calling mapper
// framework: every operation returns its primary payload plus the execution
// metadata of the remote call that produced it.
type RecordRepoI interface {
	Count(ctx context.Context, mapper *models.Mapper, query models.Query) (int64, *models.Meta, error)
	Create(ctx context.Context, mapper *models.Mapper, props models.Record) (models.Record, *models.Meta, error)
	CreateMany(ctx context.Context, mapper *models.Mapper, records []models.Record) ([]models.Record, *models.Meta, error)
	Find(ctx context.Context, mapper *models.Mapper, id any) (models.Record, *models.Meta, error)
	FindAll(ctx context.Context, mapper *models.Mapper, query models.Query) ([]models.Record, *models.Meta, error)
	Update(ctx context.Context, mapper *models.Mapper, id any, props models.Record) (models.Record, *models.Meta, error)
	UpdateAll(ctx context.Context, mapper *models.Mapper, props models.Record, query models.Query) ([]models.Record, *models.Meta, error)
	UpdateMany(ctx context.Context, mapper *models.Mapper, records []models.Record) ([]models.Record, []*models.Meta, error)
	Destroy(ctx context.Context, mapper *models.Mapper, id any) (*models.Meta, error)
	DestroyAll(ctx context.Context, mapper *models.Mapper, query models.Query) (*models.Meta, error)
	Sum(ctx context.Context, mapper *models.Mapper, field string, query models.Query) (float64, *models.Meta, error)
}
