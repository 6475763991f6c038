package d1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"godata/godata_d1_adapter/config"
	"godata/godata_d1_adapter/pkg/logger"
)

var testLog logger.LoggerI

func TestMain(m *testing.M) {
	testLog = logger.NewLogger("d1_adapter_test", logger.LevelError)
	defer func() {
		_ = logger.Cleanup(testLog)
	}()

	os.Exit(m.Run())
}

// fakeD1 records every query request and answers with scripted envelopes.
type fakeD1 struct {
	srv     *httptest.Server
	respond func(call int, req queryRequest) (int, string)

	mu    sync.Mutex
	calls []queryRequest
}

func newFakeD1(t *testing.T, respond func(call int, req queryRequest) (int, string)) *fakeD1 {
	f := &fakeD1{respond: respond}

	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		f.mu.Lock()
		call := len(f.calls)
		f.calls = append(f.calls, req)
		f.mu.Unlock()

		status, body := http.StatusOK, successBody("[]", "{}")
		if f.respond != nil {
			status, body = f.respond(call, req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(f.srv.Close)

	return f
}

func (f *fakeD1) config() config.Config {
	return config.Config{
		D1BaseURL:        f.srv.URL,
		D1AccountID:      "acct-test",
		D1DatabaseID:     "db-test",
		D1APIToken:       "token-test",
		AutocreateTables: true,
		RequestTimeout:   5 * time.Second,
	}
}

func (f *fakeD1) client() *Client {
	return NewClient(f.config(), testLog)
}

func (f *fakeD1) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

func (f *fakeD1) call(i int) queryRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[i]
}

func successBody(results, meta string) string {
	return fmt.Sprintf(
		`{"success":true,"result":[{"results":%s,"meta":%s,"success":true}],"errors":[],"messages":[]}`,
		results, meta,
	)
}

func failureBody(errs string) string {
	return fmt.Sprintf(`{"success":false,"result":[],"errors":%s,"messages":[]}`, errs)
}
