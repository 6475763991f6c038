package d1pool

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAddGetRemove(t *testing.T) {
	databaseId := uuid.NewString()

	first := &Pool{}
	Add(databaseId, first)
	assert.Same(t, first, Get(databaseId))

	// duplicate adds keep the original connection
	Add(databaseId, &Pool{})
	assert.Same(t, first, Get(databaseId))

	Remove(databaseId)
	assert.Nil(t, Get(databaseId))
}

func TestEmptyDatabaseId(t *testing.T) {
	Add("", &Pool{})

	assert.Nil(t, Get(""))
}
