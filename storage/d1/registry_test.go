package d1

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godata/godata_d1_adapter/models"
)

func TestEnsureProvisionsOnce(t *testing.T) {
	fake := newFakeD1(t, nil)
	reg := newTableRegistry(fake.client(), true, testLog)

	props := []models.Property{{Name: "name", Type: "string"}}

	require.NoError(t, reg.Ensure(context.Background(), "_id", props, "users"))
	require.NoError(t, reg.Ensure(context.Background(), "_id", props, "users"))
	require.NoError(t, reg.Ensure(context.Background(), "_id", props, "users"))

	assert.Equal(t, 1, fake.callCount())
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS users (_id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)",
		fake.call(0).SQL,
	)
}

func TestEnsureAutocreateDisabled(t *testing.T) {
	fake := newFakeD1(t, nil)
	reg := newTableRegistry(fake.client(), false, testLog)

	err := reg.Ensure(context.Background(), "_id", nil, "users")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "users")
	assert.Equal(t, 0, fake.callCount())
}

func TestEnsureFailureNotCached(t *testing.T) {
	fake := newFakeD1(t, func(call int, req queryRequest) (int, string) {
		if call == 0 {
			return http.StatusOK, failureBody(`[{"code":7500,"message":"locked"}]`)
		}
		return http.StatusOK, successBody("[]", "{}")
	})
	reg := newTableRegistry(fake.client(), true, testLog)

	err := reg.Ensure(context.Background(), "_id", nil, "users")
	require.Error(t, err)

	require.NoError(t, reg.Ensure(context.Background(), "_id", nil, "users"))
	assert.Equal(t, 2, fake.callCount())

	// now cached
	require.NoError(t, reg.Ensure(context.Background(), "_id", nil, "users"))
	assert.Equal(t, 2, fake.callCount())
}

func TestWarmSeedsCatalog(t *testing.T) {
	fake := newFakeD1(t, func(call int, req queryRequest) (int, string) {
		if strings.Contains(req.SQL, "sqlite_master") {
			return http.StatusOK, successBody(`[{"name":"users"},{"name":"orders"}]`, "{}")
		}
		return http.StatusOK, successBody("[]", "{}")
	})
	reg := newTableRegistry(fake.client(), true, testLog)

	reg.warm(context.Background())

	assert.True(t, reg.has("users"))
	assert.True(t, reg.has("orders"))
	assert.False(t, reg.has("missing"))

	// seeded tables are not provisioned again
	require.NoError(t, reg.Ensure(context.Background(), "_id", nil, "users"))
	assert.Equal(t, 1, fake.callCount())
}

func TestWarmFailureLeavesCacheCold(t *testing.T) {
	fake := newFakeD1(t, func(call int, req queryRequest) (int, string) {
		if strings.Contains(req.SQL, "sqlite_master") {
			return http.StatusOK, failureBody(`[{"code":7500,"message":"unavailable"}]`)
		}
		return http.StatusOK, successBody("[]", "{}")
	})
	reg := newTableRegistry(fake.client(), true, testLog)

	reg.warm(context.Background())
	assert.False(t, reg.has("users"))

	require.NoError(t, reg.Ensure(context.Background(), "_id", nil, "users"))
	assert.Equal(t, 2, fake.callCount())
}
