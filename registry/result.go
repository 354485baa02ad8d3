package registry

import (
	"context"
)

// Coordinator receives the restart broadcast after a submission changes
// configuration workers care about.
type Coordinator interface {
	SignalRestart(ctx context.Context) error
}

// RowResult reports the outcome of one row of a reconcile batch.
type RowResult struct {
	Index int    `json:"index"`
	Op    string `json:"op"`
	Key   string `json:"key"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// Result reports a whole reconcile batch. Applied counts rows that reached
// the store; invalid rows are present in Rows with their error and count
// toward nothing.
type Result struct {
	Batch   string      `json:"batch"`
	Applied int         `json:"applied"`
	Rows    []RowResult `json:"rows"`
}

// Failed reports whether any row in the batch was rejected.
func (r Result) Failed() bool {
	for _, row := range r.Rows {
		if row.Error != "" {
			return true
		}
	}
	return false
}
