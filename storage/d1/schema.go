package d1

import (
	"strings"

	"github.com/spf13/cast"

	"godata/godata_d1_adapter/models"
)

var sqlColumnTypes = map[string]string{
	"string":  "TEXT",
	"number":  "INTEGER",
	"integer": "INTEGER",
	"boolean": "INTEGER",
	"object":  "TEXT",
	"array":   "TEXT",
}

func columnType(t string) string {
	val, ok := sqlColumnTypes[t]
	if !ok {
		return "TEXT"
	}

	return val
}

// compileCreateTable derives an idempotent CREATE TABLE statement from a
// declarative schema. Column order is the synthesized id (when the schema
// does not declare one) followed by the properties in declaration order.
// Object and array properties are stored as JSON text; the caller is
// responsible for serializing values, not this compiler.
func compileCreateTable(idAttribute string, props []models.Property, table string) string {
	var cols []string

	declared := false
	for _, prop := range props {
		if prop.Name == idAttribute {
			declared = true
			break
		}
	}

	if !declared {
		cols = append(cols, idAttribute+" INTEGER PRIMARY KEY AUTOINCREMENT")
	}

	for _, prop := range props {
		// avoids a duplicate id column once one is already present
		if prop.Name == idAttribute && len(cols) > 0 {
			continue
		}

		col := prop.Name + " " + columnType(prop.Type)

		if prop.Name == idAttribute {
			col += " PRIMARY KEY AUTOINCREMENT"
		}
		if prop.Required || prop.NotNull {
			col += " NOT NULL"
		}
		if prop.Unique {
			col += " UNIQUE"
		}
		if prop.Default != nil {
			// string defaults are quoted, not escaped: schema is trusted input
			if s, ok := prop.Default.(string); ok {
				col += " DEFAULT '" + s + "'"
			} else {
				col += " DEFAULT " + cast.ToString(prop.Default)
			}
		}

		cols = append(cols, col)
	}

	return "CREATE TABLE IF NOT EXISTS " + table + " (" + strings.Join(cols, ", ") + ")"
}
