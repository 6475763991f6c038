package d1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"godata/godata_d1_adapter/config"
	"godata/godata_d1_adapter/models"
	"godata/godata_d1_adapter/pkg/helper"
	span "godata/godata_d1_adapter/pkg/jaeger"
	"godata/godata_d1_adapter/pkg/logger"
)

// Client executes SQL against one remote database over its HTTP query
// endpoint. It owns the endpoint URL and the bearer token; it keeps no other
// state, the database is stateless per request from the adapter's point of
// view.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	log      logger.LoggerI
}

func NewClient(cfg config.Config, log logger.LoggerI) *Client {
	return &Client{
		endpoint: fmt.Sprintf(
			"%s/accounts/%s/d1/database/%s/query",
			strings.TrimRight(cfg.D1BaseURL, "/"),
			cfg.D1AccountID,
			cfg.D1DatabaseID,
		),
		token: cfg.D1APIToken,
		http:  &http.Client{Timeout: cfg.RequestTimeout},
		log:   log,
	}
}

type queryRequest struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

// ExecuteSQL posts one parameterized statement and returns the first (and
// only) result set of the response envelope. Transport failures propagate
// unchanged, no retries.
func (c *Client) ExecuteSQL(ctx context.Context, sqlText string, params []any) (*models.QueryResult, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "d1.ExecuteSQL", sqlText)
	defer dbSpan.Finish()

	started := time.Now()
	c.log.Debug("---ExecuteSQL--->>>", logger.String("sql", sqlText), logger.Any("params", params))

	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(queryRequest{SQL: sqlText, Params: params})
	if err != nil {
		return nil, errors.Wrap(err, "error while marshalling query request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "error while building query request")
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("---ExecuteSQL--->>> !!!", logger.Error(err), logger.Duration("duration", time.Since(started)))
		return nil, err
	}
	defer resp.Body.Close()

	var envelope models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.log.Error("---ExecuteSQL--->>> !!!", logger.Error(err), logger.Duration("duration", time.Since(started)))
		return nil, errors.Wrap(err, "error while decoding query response")
	}

	if !envelope.Success {
		err := helper.RemoteErr(envelope.Errors)
		c.log.Error("---ExecuteSQL--->>> !!!", logger.Error(err), logger.Duration("duration", time.Since(started)))
		return nil, err
	}

	c.log.Debug("---ExecuteSQL--->>> done", logger.Duration("duration", time.Since(started)))

	// the API returns a singleton result set per single-statement query
	if len(envelope.Result) == 0 {
		return &models.QueryResult{}, nil
	}

	return &envelope.Result[0], nil
}

func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
