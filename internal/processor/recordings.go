package processor

import (
	"context"
	"fmt"
	"github.com/jdwit/canvastream-ingest/internal/types"
)

// LoadRecordings writes every record of the JSON array stored in obj as a
// row. The whole file is parsed before the first write, and any write failure
// aborts the load. It returns the number of rows written.
func (p *Processor) LoadRecordings(ctx context.Context, obj types.S3ObjectInfo) (int, error) {
	body, err := p.store.Get(ctx, obj)
	if err != nil {
		return 0, err
	}

	items, err := parseRecords(body)
	if err != nil {
		return 0, &ParseError{Source: fmt.Sprintf("s3://%s/%s", obj.Bucket, obj.Key), Err: err}
	}

	if err := p.target.BatchPutItems(ctx, items); err != nil {
		return 0, err
	}

	return len(items), nil
}
