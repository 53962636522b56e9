package targets

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/jdwit/canvastream-ingest/internal/types"
)

// StdoutTarget prints every row as a JSON line instead of writing it.
type StdoutTarget struct {
	table string
}

func (c *StdoutTarget) PutItem(_ context.Context, item interface{}) error {
	jsonData, err := json.Marshal(item)
	if err != nil {
		return &WriteError{Table: c.table, Failed: 1, Err: err}
	}
	fmt.Printf("[%s] Item: %s\n", c.table, jsonData)
	return nil
}

func (c *StdoutTarget) BatchPutItems(ctx context.Context, items []types.Item) error {
	for _, item := range items {
		if err := c.PutItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func NewStdoutTarget(table string) *StdoutTarget {
	return &StdoutTarget{table: table}
}
