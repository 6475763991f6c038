package d1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"godata/godata_d1_adapter/models"
)

func TestCompileCreateTableDeclaredID(t *testing.T) {
	props := []models.Property{
		{Name: "id", Type: "integer"},
		{Name: "name", Type: "string", Required: true},
		{Name: "email", Type: "string", Unique: true},
	}

	ddl := compileCreateTable("id", props, "t")

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, email TEXT UNIQUE)",
		ddl,
	)
}

func TestCompileCreateTableSynthesizedID(t *testing.T) {
	props := []models.Property{
		{Name: "name", Type: "string"},
	}

	ddl := compileCreateTable("_id", props, "user_profile")

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS user_profile (_id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)",
		ddl,
	)
}

func TestCompileCreateTableNoProperties(t *testing.T) {
	ddl := compileCreateTable("_id", nil, "empty")

	assert.Equal(t, "CREATE TABLE IF NOT EXISTS empty (_id INTEGER PRIMARY KEY AUTOINCREMENT)", ddl)
}

func TestCompileCreateTableColumnTypes(t *testing.T) {
	props := []models.Property{
		{Name: "title", Type: "string"},
		{Name: "score", Type: "number"},
		{Name: "age", Type: "integer"},
		{Name: "active", Type: "boolean"},
		{Name: "payload", Type: "object"},
		{Name: "tags", Type: "array"},
		{Name: "mystery", Type: "something"},
		{Name: "untyped"},
	}

	ddl := compileCreateTable("_id", props, "t")

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS t (_id INTEGER PRIMARY KEY AUTOINCREMENT, "+
			"title TEXT, score INTEGER, age INTEGER, active INTEGER, "+
			"payload TEXT, tags TEXT, mystery TEXT, untyped TEXT)",
		ddl,
	)
}

func TestCompileCreateTableDefaults(t *testing.T) {
	props := []models.Property{
		{Name: "status", Type: "string", Default: "new"},
		{Name: "score", Type: "number", Default: 10},
		{Name: "active", Type: "boolean", Default: true},
	}

	ddl := compileCreateTable("_id", props, "t")

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS t (_id INTEGER PRIMARY KEY AUTOINCREMENT, "+
			"status TEXT DEFAULT 'new', score INTEGER DEFAULT 10, active INTEGER DEFAULT true)",
		ddl,
	)
}

func TestCompileCreateTableNotNullVariants(t *testing.T) {
	props := []models.Property{
		{Name: "a", Type: "string", NotNull: true},
		{Name: "b", Type: "string", Required: true},
	}

	ddl := compileCreateTable("_id", props, "t")

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS t (_id INTEGER PRIMARY KEY AUTOINCREMENT, a TEXT NOT NULL, b TEXT NOT NULL)",
		ddl,
	)
}

func TestCompileCreateTableIdempotent(t *testing.T) {
	props := []models.Property{{Name: "name", Type: "string"}}

	first := compileCreateTable("_id", props, "t")
	second := compileCreateTable("_id", props, "t")

	assert.Equal(t, first, second)
	assert.Contains(t, first, "IF NOT EXISTS")
}
