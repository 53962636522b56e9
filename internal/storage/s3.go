package storage

import (
	"context"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jdwit/canvastream-ingest/internal/types"
	"github.com/pkg/errors"
	"io"
	"time"
)

type S3API interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
	HeadObjectWithContext(ctx aws.Context, input *s3.HeadObjectInput, opts ...request.Option) (*s3.HeadObjectOutput, error)
	ListObjectsV2WithContext(ctx aws.Context, input *s3.ListObjectsV2Input, opts ...request.Option) (*s3.ListObjectsV2Output, error)
}

// ObjectHead is the metadata of an object, fetched without its body.
type ObjectHead struct {
	Size         int64
	LastModified time.Time
	ContentType  string
}

// ObjectStore reads objects and object metadata from S3.
type ObjectStore struct {
	client S3API
}

func NewObjectStore(client S3API) *ObjectStore {
	return &ObjectStore{client: client}
}

// Get returns the full body of an object.
func (s *ObjectStore) Get(ctx context.Context, obj types.S3ObjectInfo) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
	})
	if err != nil {
		return nil, classify(obj, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &AccessError{Object: obj, Err: errors.Wrap(err, "reading body")}
	}

	return body, nil
}

// Head returns the size, last modification time and content type of an object.
func (s *ObjectStore) Head(ctx context.Context, obj types.S3ObjectInfo) (ObjectHead, error) {
	out, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
	})
	if err != nil {
		return ObjectHead{}, classify(obj, err)
	}

	return ObjectHead{
		Size:         aws.Int64Value(out.ContentLength),
		LastModified: aws.TimeValue(out.LastModified),
		ContentType:  aws.StringValue(out.ContentType),
	}, nil
}

// List returns every object under prefix, following continuation tokens.
func (s *ObjectStore) List(ctx context.Context, bucket, prefix string) ([]types.S3ObjectInfo, error) {
	var objects []types.S3ObjectInfo
	var continuationToken *string
	for {
		resp, err := s.client.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, classify(types.S3ObjectInfo{Bucket: bucket, Key: prefix}, err)
		}

		for _, item := range resp.Contents {
			objects = append(objects, types.S3ObjectInfo{
				Bucket: bucket,
				Key:    aws.StringValue(item.Key),
			})
		}

		if !aws.BoolValue(resp.IsTruncated) {
			break
		}
		continuationToken = resp.NextContinuationToken
	}

	return objects, nil
}
