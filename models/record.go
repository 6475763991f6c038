package models

// Record is a dynamic row: field name to value. Schemas are optional and
// partial, so no fixed record type is inferred from them.
type Record map[string]any

// Meta carries the per-statement execution metadata reported by the remote
// database. Only LastRowID and Changes are interpreted by the adapter, the
// rest is passed through to the caller.
type Meta struct {
	Changes     int64   `json:"changes"`
	LastRowID   int64   `json:"last_row_id"`
	RowsRead    int64   `json:"rows_read"`
	RowsWritten int64   `json:"rows_written"`
	Duration    float64 `json:"duration"`
	ServedBy    string  `json:"served_by"`
	SizeAfter   int64   `json:"size_after"`
}

// QueryResult is one statement's result set inside the envelope.
type QueryResult struct {
	Results []Record `json:"results"`
	Meta    Meta     `json:"meta"`
	Success bool     `json:"success"`
}

type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Envelope is the JSON wrapper the remote database API returns for every
// query call.
type Envelope struct {
	Success  bool            `json:"success"`
	Result   []QueryResult   `json:"result"`
	Errors   []ResponseError `json:"errors"`
	Messages []any           `json:"messages"`
}
