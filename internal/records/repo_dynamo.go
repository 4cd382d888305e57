package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DefaultDynamoTable is used when no table name is configured.
const DefaultDynamoTable = "resume_analyses"

type putItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoSink writes each record as one item keyed by id.
type DynamoSink struct {
	client putItemAPI
	table  string
}

// NewDynamoSink builds a sink from a resolved aws.Config.
func NewDynamoSink(cfg aws.Config, table string) *DynamoSink {
	return newDynamoSink(dynamodb.NewFromConfig(cfg), table)
}

func newDynamoSink(client putItemAPI, table string) *DynamoSink {
	table = strings.TrimSpace(table)
	if table == "" {
		table = DefaultDynamoTable
	}
	return &DynamoSink{client: client, table: table}
}

// Save marshals the record and issues a single PutItem.
func (s *DynamoSink) Save(ctx context.Context, rec Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamodb put item table=%s: %w", s.table, err)
	}
	return nil
}
