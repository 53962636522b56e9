package main

import (
	"context"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/convox/logger"
	"github.com/jdwit/canvastream-ingest/internal/config"
	"github.com/jdwit/canvastream-ingest/internal/processor"
	"github.com/pkg/errors"
	"os"
)

func createSession(endpoint string) (*session.Session, error) {
	if endpoint != "" {
		// localstack
		return session.NewSession(&aws.Config{
			Endpoint:         aws.String(endpoint),
			DisableSSL:       aws.Bool(true),
			S3ForcePathStyle: aws.Bool(true),
		})
	}

	return session.NewSession()
}

func main() {
	log := logger.New("ns=ingest")

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	cfg.Log(log)

	sess, err := createSession(cfg.Endpoint)
	if err != nil {
		log.Error(errors.Wrap(err, "creating aws session"))
		os.Exit(1)
	}

	p, err := processor.NewProcessor(sess, cfg)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		log.Logf("mode=lambda handler=%s", cfg.Handler)
		switch cfg.Handler {
		case config.HandlerRecording:
			lambda.Start(p.HandleRecordingEvent)
		case config.HandlerMetadata:
			lambda.Start(p.HandleMetadataEvent)
		}
		return
	}

	log.Logf("mode=cli handler=%s", cfg.Handler)
	if len(cfg.Args) < 1 {
		log.Errorf("s3 url is required as an argument")
		os.Exit(1)
	}
	if err := p.HandleS3URL(context.Background(), cfg.Handler, cfg.Args[0]); err != nil {
		os.Exit(1)
	}
}
