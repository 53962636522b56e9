package targets

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/jdwit/canvastream-ingest/internal/types"
	"github.com/pkg/errors"
)

const (
	// maxBatchCount The maximum number of put requests in a BatchWriteItem call is 25
	maxBatchCount = 25
	// maxBatchPasses bounds how often unprocessed items of a single batch are resubmitted
	maxBatchPasses = 5
)

type DynamoDBAPI interface {
	PutItemWithContext(ctx aws.Context, input *dynamodb.PutItemInput, opts ...request.Option) (*dynamodb.PutItemOutput, error)
	BatchWriteItemWithContext(ctx aws.Context, input *dynamodb.BatchWriteItemInput, opts ...request.Option) (*dynamodb.BatchWriteItemOutput, error)
}

type DynamoDBTarget struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBTarget(table string, sess *session.Session) *DynamoDBTarget {
	return NewDynamoDBTargetWithClient(table, dynamodb.New(sess))
}

func NewDynamoDBTargetWithClient(table string, client DynamoDBAPI) *DynamoDBTarget {
	return &DynamoDBTarget{client: client, table: table}
}

func (d *DynamoDBTarget) PutItem(ctx context.Context, item interface{}) error {
	av, err := marshalItem(item)
	if err != nil {
		return &WriteError{Table: d.table, Failed: 1, Err: err}
	}

	_, err = d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      av,
	})
	if err != nil {
		return &WriteError{Table: d.table, Failed: 1, Err: err}
	}

	return nil
}

// BatchPutItems marshals every item up front, so an item that cannot be
// represented fails the call before anything is written.
func (d *DynamoDBTarget) BatchPutItems(ctx context.Context, items []types.Item) error {
	requests := make([]*dynamodb.WriteRequest, 0, len(items))
	for i, item := range items {
		av, err := marshalItem(item)
		if err != nil {
			return &WriteError{Table: d.table, Failed: len(items), Err: errors.Wrapf(err, "item %d", i)}
		}
		requests = append(requests, &dynamodb.WriteRequest{PutRequest: &dynamodb.PutRequest{Item: av}})
	}

	for i := 0; i < len(requests); i += maxBatchCount {
		high := i + maxBatchCount
		if high > len(requests) {
			high = len(requests)
		}

		if err := d.writeBatch(ctx, requests[i:high]); err != nil {
			return err
		}
	}

	return nil
}

func (d *DynamoDBTarget) writeBatch(ctx context.Context, batch []*dynamodb.WriteRequest) error {
	pending := batch
	for pass := 0; pass < maxBatchPasses && len(pending) > 0; pass++ {
		resp, err := d.client.BatchWriteItemWithContext(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]*dynamodb.WriteRequest{
				d.table: pending,
			},
		})
		if err != nil {
			return &WriteError{Table: d.table, Failed: len(pending), Err: err}
		}

		pending = resp.UnprocessedItems[d.table]
	}

	if len(pending) > 0 {
		return &WriteError{
			Table:  d.table,
			Failed: len(pending),
			Err:    fmt.Errorf("unprocessed after %d attempts", maxBatchPasses),
		}
	}

	return nil
}

// encoder keeps empty strings as S values, the SDK default writes them as NULL.
var encoder = dynamodbattribute.NewEncoder(func(e *dynamodbattribute.Encoder) {
	e.NullEmptyString = false
})

func marshalItem(item interface{}) (map[string]*dynamodb.AttributeValue, error) {
	if m, ok := item.(types.Item); ok {
		item = numbers(m)
	}

	av, err := encoder.Encode(item)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling item")
	}

	if av.M == nil {
		return nil, errors.Errorf("marshaling item: %T is not a map", item)
	}

	return av.M, nil
}

// numbers replaces json.Number values so they are written as DynamoDB numbers
// instead of strings.
func numbers(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		return dynamodbattribute.Number(t)
	case types.Item:
		out := make(types.Item, len(t))
		for k, e := range t {
			out[k] = numbers(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = numbers(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = numbers(e)
		}
		return out
	}

	return v
}
