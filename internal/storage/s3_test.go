package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jdwit/canvastream-ingest/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

var obj = types.S3ObjectInfo{Bucket: "b", Key: "recordings/r1.json"}

func TestObjectStore_Get(t *testing.T) {
	ctx := context.Background()
	client := &mockS3{}
	client.On("GetObjectWithContext", ctx, &s3.GetObjectInput{
		Bucket: aws.String("b"),
		Key:    aws.String("recordings/r1.json"),
	}).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(`[{"id":"1"}]`))}, nil)

	body, err := NewObjectStore(client).Get(ctx, obj)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(body))
	client.AssertExpectations(t)
}

func TestObjectStore_GetErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		notFound bool
	}{
		{name: "missing key", err: awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil), notFound: true},
		{name: "missing bucket", err: awserr.New(s3.ErrCodeNoSuchBucket, "The specified bucket does not exist", nil), notFound: true},
		{name: "access denied", err: awserr.New("AccessDenied", "Access Denied", nil)},
		{name: "transport", err: errors.New("connection reset by peer")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := &mockS3{}
			client.On("GetObjectWithContext", mock.Anything, mock.Anything).Return(nil, test.err)

			body, err := NewObjectStore(client).Get(context.Background(), obj)
			require.Error(t, err)
			assert.Nil(t, body)

			var nf *ObjectNotFoundError
			var ae *AccessError
			assert.Equal(t, test.notFound, errors.As(err, &nf))
			assert.Equal(t, !test.notFound, errors.As(err, &ae))
			assert.ErrorIs(t, err, test.err)
		})
	}
}

func TestObjectStore_Head(t *testing.T) {
	modified := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	client := &mockS3{}
	client.On("HeadObjectWithContext", mock.Anything, &s3.HeadObjectInput{
		Bucket: aws.String("b"),
		Key:    aws.String("img .png"),
	}).Return(&s3.HeadObjectOutput{
		ContentLength: aws.Int64(1024),
		ContentType:   aws.String("image/png"),
		LastModified:  aws.Time(modified),
	}, nil)

	head, err := NewObjectStore(client).Head(context.Background(), types.S3ObjectInfo{Bucket: "b", Key: "img .png"})
	require.NoError(t, err)
	assert.Equal(t, ObjectHead{Size: 1024, LastModified: modified, ContentType: "image/png"}, head)
}

func TestObjectStore_HeadNotFound(t *testing.T) {
	client := &mockS3{}
	client.On("HeadObjectWithContext", mock.Anything, mock.Anything).
		Return(nil, awserr.NewRequestFailure(awserr.New("NotFound", "Not Found", nil), 404, "req"))

	_, err := NewObjectStore(client).Head(context.Background(), obj)

	var nf *ObjectNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, obj, nf.Object)
}

func TestObjectStore_List(t *testing.T) {
	client := &mockS3{}
	client.On("ListObjectsV2WithContext", mock.Anything, &s3.ListObjectsV2Input{
		Bucket: aws.String("b"),
		Prefix: aws.String("recordings/"),
	}).Return(&s3.ListObjectsV2Output{
		Contents:              []*s3.Object{{Key: aws.String("recordings/r1.json")}},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("next"),
	}, nil).Once()
	client.On("ListObjectsV2WithContext", mock.Anything, &s3.ListObjectsV2Input{
		Bucket:            aws.String("b"),
		Prefix:            aws.String("recordings/"),
		ContinuationToken: aws.String("next"),
	}).Return(&s3.ListObjectsV2Output{
		Contents:    []*s3.Object{{Key: aws.String("recordings/r2.json")}},
		IsTruncated: aws.Bool(false),
	}, nil).Once()

	objects, err := NewObjectStore(client).List(context.Background(), "b", "recordings/")
	require.NoError(t, err)
	assert.Equal(t, []types.S3ObjectInfo{
		{Bucket: "b", Key: "recordings/r1.json"},
		{Bucket: "b", Key: "recordings/r2.json"},
	}, objects)
	client.AssertExpectations(t)
}
