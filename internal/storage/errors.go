package storage

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jdwit/canvastream-ingest/internal/types"
)

// HeadObject reports a missing object with a bare status code.
const errCodeNotFound = "NotFound"

// ObjectNotFoundError is returned when the bucket or the object does not exist.
type ObjectNotFoundError struct {
	Object types.S3ObjectInfo
	Err    error
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("object not found: s3://%s/%s: %v", e.Object.Bucket, e.Object.Key, e.Err)
}

func (e *ObjectNotFoundError) Unwrap() error { return e.Err }

// AccessError is returned for every other failure reading an object.
type AccessError struct {
	Object types.S3ObjectInfo
	Err    error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("unable to read s3://%s/%s: %v", e.Object.Bucket, e.Object.Key, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

func classify(obj types.S3ObjectInfo, err error) error {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchBucket, s3.ErrCodeNoSuchKey, errCodeNotFound:
			return &ObjectNotFoundError{Object: obj, Err: err}
		}
	}
	return &AccessError{Object: obj, Err: err}
}
