package processor

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/convox/logger"
	"github.com/jdwit/canvastream-ingest/internal/storage"
	"github.com/jdwit/canvastream-ingest/internal/types"
	"github.com/stretchr/testify/mock"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3) HeadObjectWithContext(ctx aws.Context, input *s3.HeadObjectInput, _ ...request.Option) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3) ListObjectsV2WithContext(ctx aws.Context, input *s3.ListObjectsV2Input, _ ...request.Option) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

type mockTarget struct {
	mock.Mock
}

func (m *mockTarget) PutItem(ctx context.Context, item interface{}) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockTarget) BatchPutItems(ctx context.Context, items []types.Item) error {
	return m.Called(ctx, items).Error(0)
}

func newTestProcessor() (*Processor, *mockS3, *mockTarget, *bytes.Buffer) {
	client := &mockS3{}
	target := &mockTarget{}
	var buf bytes.Buffer
	p := newProcessor(storage.NewObjectStore(client), target, logger.NewWriter("ns=ingest", &buf))
	return p, client, target, &buf
}
