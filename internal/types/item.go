package types

import "time"

// Item is a single table row decoded from a recording file. No schema is
// imposed, whatever the file holds is written.
type Item map[string]interface{}

// ObjectMetadata is the row written for every indexed object.
type ObjectMetadata struct {
	FileID       string `json:"file_id" dynamodbav:"file_id"`
	BucketName   string `json:"bucket_name" dynamodbav:"bucket_name"`
	Size         int64  `json:"size" dynamodbav:"size"`
	LastModified string `json:"last_modified" dynamodbav:"last_modified"`
	ContentType  string `json:"content_type" dynamodbav:"content_type"`
}

// NewObjectMetadata builds the row for an object from its head metadata.
func NewObjectMetadata(obj S3ObjectInfo, size int64, lastModified time.Time, contentType string) ObjectMetadata {
	return ObjectMetadata{
		FileID:       obj.Key,
		BucketName:   obj.Bucket,
		Size:         size,
		LastModified: lastModified.UTC().Format(time.RFC3339),
		ContentType:  contentType,
	}
}
