package processor

import (
	"context"
	"github.com/jdwit/canvastream-ingest/internal/types"
)

// IndexObject upserts the metadata row of obj, keyed by its key. The object
// body is never downloaded.
func (p *Processor) IndexObject(ctx context.Context, obj types.S3ObjectInfo) (types.ObjectMetadata, error) {
	head, err := p.store.Head(ctx, obj)
	if err != nil {
		return types.ObjectMetadata{}, err
	}

	row := types.NewObjectMetadata(obj, head.Size, head.LastModified, head.ContentType)
	if err := p.target.PutItem(ctx, row); err != nil {
		return types.ObjectMetadata{}, err
	}

	return row, nil
}
