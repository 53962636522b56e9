package targets

import (
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/jdwit/canvastream-ingest/internal/types"
)

const (
	TargetDynamoDB = "dynamodb"
	TargetStdout   = "stdout"
)

// Target writes rows into a table.
type Target interface {
	// PutItem writes a single row, replacing any row with the same key.
	PutItem(ctx context.Context, item interface{}) error
	// BatchPutItems writes every row, grouping them into batch requests.
	BatchPutItems(ctx context.Context, items []types.Item) error
}

// GetTarget returns the target of the given type writing to table.
func GetTarget(targetType, table string, sess *session.Session) (Target, error) {
	switch targetType {
	case TargetDynamoDB:
		return NewDynamoDBTarget(table, sess), nil
	case TargetStdout:
		return NewStdoutTarget(table), nil
	}

	return nil, fmt.Errorf("unsupported target type: %s", targetType)
}
