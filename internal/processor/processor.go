package processor

import (
	"context"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/convox/logger"
	"github.com/jdwit/canvastream-ingest/internal/config"
	"github.com/jdwit/canvastream-ingest/internal/storage"
	"github.com/jdwit/canvastream-ingest/internal/targets"
)

// Processor mirrors S3 objects into a table. It holds no per-invocation
// state and is shared by every invocation of the process.
type Processor struct {
	store  *storage.ObjectStore
	target targets.Target
	log    *logger.Logger
}

func NewProcessor(sess *session.Session, cfg config.Config) (*Processor, error) {
	targetType := targets.TargetDynamoDB
	if cfg.DryRun {
		targetType = targets.TargetStdout
	}

	t, err := targets.GetTarget(targetType, cfg.Table, sess)
	if err != nil {
		return nil, err
	}

	return newProcessor(storage.NewObjectStore(s3.New(sess)), t, logger.New("ns=ingest")), nil
}

func newProcessor(store *storage.ObjectStore, target targets.Target, log *logger.Logger) *Processor {
	return &Processor{
		store:  store,
		target: target,
		log:    log,
	}
}

// logger returns the processor logger positioned at step, tagged with the
// Lambda request id when ctx carries one.
func (p *Processor) logger(ctx context.Context, step string) *logger.Logger {
	log := p.log.At(step)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.Replace("request", lc.AwsRequestID)
	}
	return log
}
