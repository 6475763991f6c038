package d1

import (
	"context"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"godata/godata_d1_adapter/models"
	"godata/godata_d1_adapter/pkg/helper"
	"godata/godata_d1_adapter/pkg/logger"
	"godata/godata_d1_adapter/storage"
)

type recordRepo struct {
	client   *Client
	registry *tableRegistry
	log      logger.LoggerI
}

func NewRecordRepo(client *Client, registry *tableRegistry, log logger.LoggerI) storage.RecordRepoI {
	return &recordRepo{
		client:   client,
		registry: registry,
		log:      log,
	}
}

// resolveTable maps a mapper to its table: the explicit override when set,
// otherwise the snake_case form of the logical name.
func resolveTable(mapper *models.Mapper) string {
	if mapper.Table != "" {
		return mapper.Table
	}

	return helper.SnakeCase(mapper.Name)
}

func (r *recordRepo) ensureTable(ctx context.Context, mapper *models.Mapper) (string, error) {
	table := resolveTable(mapper)

	if err := r.registry.Ensure(ctx, mapper.IDField(), mapper.Properties(), table); err != nil {
		return "", err
	}

	return table, nil
}

func (r *recordRepo) Count(ctx context.Context, mapper *models.Mapper, query models.Query) (int64, *models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return 0, nil, err
	}

	builder := compileQuery(query).applySelect(sq.Select("COUNT(*) AS count").From(table))

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return 0, nil, errors.Wrap(err, "error while building count query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return 0, nil, err
	}

	var count int64
	if len(res.Results) > 0 {
		count = cast.ToInt64(res.Results[0]["count"])
	}

	return count, &res.Meta, nil
}

func (r *recordRepo) Create(ctx context.Context, mapper *models.Mapper, props models.Record) (models.Record, *models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return nil, nil, err
	}

	row, err := helper.CoerceProps(props)
	if err != nil {
		return nil, nil, err
	}

	sqlText, args, err := sq.Insert(table).SetMap(row).ToSql()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error while building insert query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return nil, nil, err
	}

	record := make(models.Record, len(props)+1)
	for key, val := range props {
		record[key] = val
	}
	if res.Meta.LastRowID != 0 {
		record[mapper.IDField()] = res.Meta.LastRowID
	}

	return record, &res.Meta, nil
}

// CreateMany issues one multi-row INSERT. The remote API does not report
// per-row generated ids for batch inserts, so the input records come back
// unchanged.
func (r *recordRepo) CreateMany(ctx context.Context, mapper *models.Mapper, records []models.Record) ([]models.Record, *models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return records, &models.Meta{}, nil
	}

	seen := make(map[string]struct{})
	var cols []string
	for _, rec := range records {
		for key := range rec {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				cols = append(cols, key)
			}
		}
	}
	sort.Strings(cols)

	builder := sq.Insert(table).Columns(cols...)
	for _, rec := range records {
		row, err := helper.CoerceProps(rec)
		if err != nil {
			return nil, nil, err
		}

		vals := make([]any, len(cols))
		for i, col := range cols {
			vals[i] = row[col]
		}
		builder = builder.Values(vals...)
	}

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error while building insert query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return nil, nil, err
	}

	return records, &res.Meta, nil
}

// Find returns a nil record when no row matches: absence is not an error.
func (r *recordRepo) Find(ctx context.Context, mapper *models.Mapper, id any) (models.Record, *models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return nil, nil, err
	}

	sqlText, args, err := sq.Select("*").From(table).Where(sq.Eq{mapper.IDField(): id}).ToSql()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error while building select query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return nil, nil, err
	}

	if len(res.Results) == 0 {
		return nil, &res.Meta, nil
	}

	return res.Results[0], &res.Meta, nil
}

func (r *recordRepo) FindAll(ctx context.Context, mapper *models.Mapper, query models.Query) ([]models.Record, *models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return nil, nil, err
	}

	builder := compileQuery(query).applySelect(sq.Select("*").From(table))

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error while building select query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return nil, nil, err
	}

	return res.Results, &res.Meta, nil
}

// Update performs the UPDATE and then re-fetches the row by id, because the
// remote API does not return updated rows directly.
func (r *recordRepo) Update(ctx context.Context, mapper *models.Mapper, id any, props models.Record) (models.Record, *models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return nil, nil, err
	}

	row, err := helper.CoerceProps(props)
	if err != nil {
		return nil, nil, err
	}
	delete(row, mapper.IDField())

	sqlText, args, err := sq.Update(table).SetMap(row).Where(sq.Eq{mapper.IDField(): id}).ToSql()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error while building update query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return nil, nil, err
	}

	record, _, err := r.Find(ctx, mapper, id)
	if err != nil {
		return nil, nil, err
	}

	return record, &res.Meta, nil
}

// UpdateAll mutates every matching row but returns no records, only the
// changes count; there is no follow-up fetch for bulk updates.
func (r *recordRepo) UpdateAll(ctx context.Context, mapper *models.Mapper, props models.Record, query models.Query) ([]models.Record, *models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return nil, nil, err
	}

	row, err := helper.CoerceProps(props)
	if err != nil {
		return nil, nil, err
	}

	builder := compileQuery(query).applyUpdate(sq.Update(table).SetMap(row))

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error while building update query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return nil, nil, err
	}

	return []models.Record{}, &res.Meta, nil
}

// UpdateMany updates records strictly one at a time, in input order, keyed
// by each record's id attribute. A failure stops the loop: the already
// applied prefix stays applied, the remainder is never attempted.
func (r *recordRepo) UpdateMany(ctx context.Context, mapper *models.Mapper, records []models.Record) ([]models.Record, []*models.Meta, error) {
	updated := make([]models.Record, 0, len(records))
	metas := make([]*models.Meta, 0, len(records))

	for _, rec := range records {
		id, ok := rec[mapper.IDField()]
		if !ok || id == nil {
			return updated, metas, errors.Errorf("record is missing the %s attribute", mapper.IDField())
		}

		record, meta, err := r.Update(ctx, mapper, id, rec)
		if err != nil {
			return updated, metas, err
		}

		updated = append(updated, record)
		metas = append(metas, meta)
	}

	return updated, metas, nil
}

func (r *recordRepo) Destroy(ctx context.Context, mapper *models.Mapper, id any) (*models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return nil, err
	}

	sqlText, args, err := sq.Delete(table).Where(sq.Eq{mapper.IDField(): id}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error while building delete query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return nil, err
	}

	return &res.Meta, nil
}

func (r *recordRepo) DestroyAll(ctx context.Context, mapper *models.Mapper, query models.Query) (*models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return nil, err
	}

	builder := compileQuery(query).applyDelete(sq.Delete(table))

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error while building delete query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return nil, err
	}

	return &res.Meta, nil
}

func (r *recordRepo) Sum(ctx context.Context, mapper *models.Mapper, field string, query models.Query) (float64, *models.Meta, error) {
	table, err := r.ensureTable(ctx, mapper)
	if err != nil {
		return 0, nil, err
	}

	builder := compileQuery(query).applySelect(sq.Select("SUM(" + field + ") AS sum").From(table))

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return 0, nil, errors.Wrap(err, "error while building sum query")
	}

	res, err := r.client.ExecuteSQL(ctx, sqlText, args)
	if err != nil {
		return 0, nil, err
	}

	var sum float64
	if len(res.Results) > 0 {
		sum = cast.ToFloat64(res.Results[0]["sum"])
	}

	return sum, &res.Meta, nil
}
