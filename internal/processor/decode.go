package processor

import (
	"encoding/json"
	"github.com/jdwit/canvastream-ingest/internal/types"
	"github.com/pkg/errors"
	"net/url"
)

// decodeKey reverses the form encoding S3 applies to keys in notifications,
// so "a%2Bb.json" becomes "a+b.json" and "my+file.json" becomes "my file.json".
func decodeKey(key string) (string, error) {
	decoded, err := url.QueryUnescape(key)
	if err != nil {
		return "", &ParseError{Source: "object key " + key, Err: err}
	}
	return decoded, nil
}

func decodeObjectCreated(detail json.RawMessage) (types.S3ObjectInfo, error) {
	var d types.ObjectCreatedDetail
	if err := json.Unmarshal(detail, &d); err != nil {
		return types.S3ObjectInfo{}, &ParseError{Source: "event detail", Err: err}
	}

	return objectInfo(d.Bucket.Name, d.Object.Key)
}

func decodeRecords(detail json.RawMessage) ([]types.S3Record, error) {
	var d types.RecordsDetail
	if err := json.Unmarshal(detail, &d); err != nil {
		return nil, &ParseError{Source: "event detail", Err: err}
	}

	return d.Records, nil
}

func objectInfo(bucket, rawKey string) (types.S3ObjectInfo, error) {
	if bucket == "" {
		return types.S3ObjectInfo{}, &ParseError{Source: "event detail", Err: errors.New("missing bucket name")}
	}
	if rawKey == "" {
		return types.S3ObjectInfo{}, &ParseError{Source: "event detail", Err: errors.New("missing object key")}
	}

	key, err := decodeKey(rawKey)
	if err != nil {
		return types.S3ObjectInfo{}, err
	}

	return types.S3ObjectInfo{Bucket: bucket, Key: key}, nil
}
