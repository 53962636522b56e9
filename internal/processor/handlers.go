package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/aws/aws-lambda-go/events"
	"github.com/convox/logger"
	"github.com/jdwit/canvastream-ingest/internal/config"
	"github.com/jdwit/canvastream-ingest/internal/types"
	"strings"
)

// HandleRecordingEvent loads the recording file named by an EventBridge
// "Object Created" event. Errors are logged with the event and returned so the
// platform retries the invocation.
func (p *Processor) HandleRecordingEvent(ctx context.Context, event events.CloudWatchEvent) error {
	raw := logEvent(p.logger(ctx, "receive"), event)

	log := p.logger(ctx, "recording").Start()

	obj, err := decodeObjectCreated(event.Detail)
	if err != nil {
		return log.Namespace("event=%q state=error", raw).Error(err)
	}

	log = log.Namespace("bucket=%s key=%q", obj.Bucket, obj.Key)

	count, err := p.LoadRecordings(ctx, obj)
	if err != nil {
		return log.Namespace("event=%q state=error", raw).Error(err)
	}

	log.Successf("items=%d", count)

	return nil
}

// HandleMetadataEvent indexes every object listed in the event detail, in
// order. The first failure is logged with its record and returned, the
// remaining records are not attempted.
func (p *Processor) HandleMetadataEvent(ctx context.Context, event events.CloudWatchEvent) error {
	raw := logEvent(p.logger(ctx, "receive"), event)

	log := p.logger(ctx, "object")

	records, err := decodeRecords(event.Detail)
	if err != nil {
		return log.Namespace("event=%q state=error", raw).Error(err)
	}

	for _, record := range records {
		if err := p.indexRecord(ctx, record); err != nil {
			rec, merr := json.Marshal(record)
			if merr != nil {
				rec = event.Detail
			}
			return log.Namespace("record=%q state=error", rec).Error(err)
		}
	}

	return nil
}

func (p *Processor) indexRecord(ctx context.Context, record types.S3Record) error {
	obj, err := objectInfo(record.S3.Bucket.Name, record.S3.Object.Key)
	if err != nil {
		return err
	}

	log := p.logger(ctx, "object").Namespace("bucket=%s key=%q", obj.Bucket, obj.Key).Start()

	row, err := p.IndexObject(ctx, obj)
	if err != nil {
		return err
	}

	log.Successf("size=%d content_type=%q", row.Size, row.ContentType)

	return nil
}

// HandleS3URL runs the per-object step of handler on every object under an
// s3://bucket/prefix URL, one object at a time.
func (p *Processor) HandleS3URL(ctx context.Context, handler, url string) error {
	bucket, prefix, err := parseS3Url(url)
	if err != nil {
		return p.logger(ctx, "backfill").Namespace("state=error").Errorf("failed to parse S3 URL: %v", err)
	}

	objects, err := p.store.List(ctx, bucket, prefix)
	if err != nil {
		return p.logger(ctx, "backfill").Namespace("state=error").Error(err)
	}

	for _, obj := range objects {
		log := p.logger(ctx, "backfill").Namespace("handler=%s bucket=%s key=%q", handler, obj.Bucket, obj.Key).Start()

		switch handler {
		case config.HandlerRecording:
			var count int
			if count, err = p.LoadRecordings(ctx, obj); err == nil {
				log.Successf("items=%d", count)
			}
		case config.HandlerMetadata:
			if _, err = p.IndexObject(ctx, obj); err == nil {
				log.Success()
			}
		default:
			err = fmt.Errorf("unknown handler: %s", handler)
		}

		if err != nil {
			return log.Namespace("state=error").Error(err)
		}
	}

	p.logger(ctx, "backfill").Logf("objects=%d", len(objects))

	return nil
}

func logEvent(log *logger.Logger, event events.CloudWatchEvent) []byte {
	raw, err := json.Marshal(event)
	if err != nil {
		raw = event.Detail
	}
	log.Logf("event=%q", raw)
	return raw
}

func parseS3Url(url string) (bucket string, prefix string, err error) {
	if !strings.HasPrefix(url, "s3://") {
		return "", "", fmt.Errorf("invalid S3 URL, missing 's3://' prefix")
	}
	trimmedS3URL := strings.TrimPrefix(url, "s3://")
	splitPos := strings.Index(trimmedS3URL, "/")
	if splitPos == -1 {
		return "", "", fmt.Errorf("invalid S3 URL, no '/' found after bucket name")
	}
	bucket = trimmedS3URL[:splitPos]
	prefix = trimmedS3URL[splitPos+1:]
	return bucket, prefix, nil
}
