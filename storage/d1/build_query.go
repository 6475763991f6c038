package d1

import (
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/spf13/cast"

	"godata/godata_d1_adapter/models"
	"godata/godata_d1_adapter/pkg/helper"
)

// compiledQuery is the intermediate form an abstract query compiles into
// before being folded into a statement builder. Predicates are all ANDed;
// there is no OR support.
type compiledQuery struct {
	where     sq.And
	orderBy   []string
	limit     uint64
	offset    uint64
	hasLimit  bool
	hasOffset bool
}

// compileQuery consumes a deep copy of the abstract query, so the caller's
// object is never mutated.
func compileQuery(query models.Query) compiledQuery {
	var cq compiledQuery

	if len(query) == 0 {
		return cq
	}

	cq.consume(helper.DeepCopyQuery(query))

	return cq
}

// consume processes limit, offset, orderBy and where in that order, removing
// each from the working copy, then treats every remaining key as a field
// predicate. A nested where is compiled recursively into the same state, so
// arbitrarily deep nesting merges into one conjunction.
func (cq *compiledQuery) consume(query map[string]any) {
	if raw, ok := query["limit"]; ok {
		cq.limit = cast.ToUint64(raw)
		cq.hasLimit = true
		delete(query, "limit")
	}

	if raw, ok := query["offset"]; ok {
		cq.offset = cast.ToUint64(raw)
		cq.hasOffset = true
		delete(query, "offset")
	}

	if raw, ok := query["orderBy"]; ok {
		cq.orderBy = append(cq.orderBy, orderClauses(raw)...)
		delete(query, "orderBy")
	}

	if raw, ok := query["where"]; ok {
		if nested, ok := asMap(raw); ok {
			cq.consume(nested)
		}
		delete(query, "where")
	}

	// remaining keys are field names; sorted so compiled SQL is deterministic
	fields := make([]string, 0, len(query))
	for field := range query {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		cq.fieldPredicates(field, query[field])
	}
}

func asMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case models.Query:
		return v, true
	}

	return nil, false
}

func (cq *compiledQuery) fieldPredicates(field string, raw any) {
	preds, ok := asMap(raw)
	if !ok {
		// a bare value is shorthand for equality
		cq.predicate(field, "==", raw)
		return
	}

	ops := make([]string, 0, len(preds))
	for op := range preds {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	for _, op := range ops {
		cq.predicate(field, op, preds[op])
	}
}

// predicate appends one comparison clause. Operators outside the recognized
// set are dropped without error.
func (cq *compiledQuery) predicate(field, op string, value any) {
	switch op {
	case "==", "===":
		cq.where = append(cq.where, sq.Eq{field: value})
	case "!=", "!==":
		cq.where = append(cq.where, sq.NotEq{field: value})
	case ">":
		cq.where = append(cq.where, sq.Gt{field: value})
	case ">=":
		cq.where = append(cq.where, sq.GtOrEq{field: value})
	case "<":
		cq.where = append(cq.where, sq.Lt{field: value})
	case "<=":
		cq.where = append(cq.where, sq.LtOrEq{field: value})
	case "in", "contains":
		cq.where = append(cq.where, sq.Eq{field: toSlice(value)})
	case "notIn", "notContains":
		cq.where = append(cq.where, sq.NotEq{field: toSlice(value)})
	}
}

func toSlice(value any) []any {
	if vals, ok := value.([]any); ok {
		return vals
	}

	return []any{value}
}

// orderClauses accepts a bare field name, a list of field names, or a list
// of (field, direction) pairs. Directions are normalized to lowercase.
func orderClauses(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v + " asc"}
	case []any:
		clauses := make([]string, 0, len(v))
		for _, entry := range v {
			if pair, ok := entry.([]any); ok && len(pair) > 0 {
				field := cast.ToString(pair[0])
				dir := "asc"
				if len(pair) > 1 {
					dir = strings.ToLower(cast.ToString(pair[1]))
				}
				clauses = append(clauses, field+" "+dir)
				continue
			}
			clauses = append(clauses, cast.ToString(entry)+" asc")
		}
		return clauses
	}

	return nil
}

func (cq compiledQuery) applySelect(builder sq.SelectBuilder) sq.SelectBuilder {
	if len(cq.where) > 0 {
		builder = builder.Where(cq.where)
	}
	if len(cq.orderBy) > 0 {
		builder = builder.OrderBy(cq.orderBy...)
	}
	if cq.hasLimit {
		builder = builder.Limit(cq.limit)
	}
	if cq.hasOffset {
		builder = builder.Offset(cq.offset)
	}

	return builder
}

// sqlite rejects ORDER BY and LIMIT on UPDATE/DELETE, so those builders only
// receive the filter conjunction.
func (cq compiledQuery) applyUpdate(builder sq.UpdateBuilder) sq.UpdateBuilder {
	if len(cq.where) > 0 {
		builder = builder.Where(cq.where)
	}

	return builder
}

func (cq compiledQuery) applyDelete(builder sq.DeleteBuilder) sq.DeleteBuilder {
	if len(cq.where) > 0 {
		builder = builder.Where(cq.where)
	}

	return builder
}
