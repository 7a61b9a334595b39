package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/ledger"
)

// Client is the subset of the DynamoDB API the ledger uses.
// *dynamodb.Client satisfies it.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

var _ Client = (*dynamodb.Client)(nil)

const (
	attrName       = "name"
	attrAlgorithm  = "algorithm"
	attrSeed       = "seed"
	attrDigest     = "digest"
	attrSize       = "size"
	attrRecordedAt = "recorded_at"
)

// putCondition admits the first record for a name and identical re-records.
// Attribute names go through placeholders since "name" is a DynamoDB reserved word.
const putCondition = "attribute_not_exists(#name) OR (#digest = :digest AND #algorithm = :algorithm AND #seed = :seed)"

// Ledger implements ledger.Ledger on a DynamoDB table.
//
// Table schema:
//   - Partition key: name (string) - the blob name
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name hashkit-ledger \
//	  --attribute-definitions AttributeName=name,AttributeType=S \
//	  --key-schema AttributeName=name,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type Ledger struct {
	client Client
	table  string
	now    func() time.Time
}

var _ ledger.Ledger = (*Ledger)(nil)

// NewLedger creates a ledger on table using client.
func NewLedger(client Client, table string) *Ledger {
	return &Ledger{
		client: client,
		table:  table,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// New loads the default AWS config and creates a ledger on table.
func New(ctx context.Context, table string, optFns ...func(*config.LoadOptions) error) (*Ledger, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load config: %w", err)
	}
	return NewLedger(dynamodb.NewFromConfig(cfg), table), nil
}

// Put records e with a conditional write. A different digest already stored
// under the same name yields a *ledger.ConflictError.
func (l *Ledger) Put(ctx context.Context, e ledger.Entry) error {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = l.now()
	}

	_, err := l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(l.table),
		Item:                marshalEntry(e),
		ConditionExpression: aws.String(putCondition),
		ExpressionAttributeNames: map[string]string{
			"#name":      attrName,
			"#digest":    attrDigest,
			"#algorithm": attrAlgorithm,
			"#seed":      attrSeed,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":digest":    &types.AttributeValueMemberS{Value: e.Digest.Hex()},
			":algorithm": &types.AttributeValueMemberS{Value: e.Algorithm.String()},
			":seed":      &types.AttributeValueMemberN{Value: strconv.FormatUint(e.Seed, 10)},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err == nil {
		return nil
	}

	var condErr *types.ConditionalCheckFailedException
	if !errors.As(err, &condErr) {
		return fmt.Errorf("dynamodb: put %s: %w", e.Name, err)
	}

	conflict := &ledger.ConflictError{Proposed: e}
	if condErr.Item != nil {
		if existing, perr := unmarshalEntry(condErr.Item); perr == nil {
			conflict.Existing = existing
		}
	}
	return conflict
}

// Get reads the entry for name with a strongly consistent read.
func (l *Ledger) Get(ctx context.Context, name string) (ledger.Entry, error) {
	out, err := l.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(l.table),
		Key:            map[string]types.AttributeValue{attrName: &types.AttributeValueMemberS{Value: name}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("dynamodb: get %s: %w", name, err)
	}
	if len(out.Item) == 0 {
		return ledger.Entry{}, ledger.ErrNotFound
	}
	return unmarshalEntry(out.Item)
}

func marshalEntry(e ledger.Entry) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrName:       &types.AttributeValueMemberS{Value: e.Name},
		attrAlgorithm:  &types.AttributeValueMemberS{Value: e.Algorithm.String()},
		attrSeed:       &types.AttributeValueMemberN{Value: strconv.FormatUint(e.Seed, 10)},
		attrDigest:     &types.AttributeValueMemberS{Value: e.Digest.Hex()},
		attrSize:       &types.AttributeValueMemberN{Value: strconv.FormatInt(e.Size, 10)},
		attrRecordedAt: &types.AttributeValueMemberS{Value: e.RecordedAt.Format(time.RFC3339Nano)},
	}
}

func stringAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("dynamodb: invalid %s attribute", key)
	}
	return v.Value, nil
}

func numberAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key].(*types.AttributeValueMemberN)
	if !ok {
		return "", fmt.Errorf("dynamodb: invalid %s attribute", key)
	}
	return v.Value, nil
}

func unmarshalEntry(item map[string]types.AttributeValue) (ledger.Entry, error) {
	var (
		e   ledger.Entry
		err error
		s   string
	)

	if e.Name, err = stringAttr(item, attrName); err != nil {
		return e, err
	}

	if s, err = stringAttr(item, attrAlgorithm); err != nil {
		return e, err
	}
	if e.Algorithm, err = hashkit.ParseAlgorithm(s); err != nil {
		return e, err
	}

	if s, err = numberAttr(item, attrSeed); err != nil {
		return e, err
	}
	if e.Seed, err = strconv.ParseUint(s, 10, 64); err != nil {
		return e, fmt.Errorf("dynamodb: parse seed: %w", err)
	}

	if s, err = stringAttr(item, attrDigest); err != nil {
		return e, err
	}
	if e.Digest, err = hashkit.ParseDigest(s); err != nil {
		return e, err
	}

	if s, err = numberAttr(item, attrSize); err != nil {
		return e, err
	}
	if e.Size, err = strconv.ParseInt(s, 10, 64); err != nil {
		return e, fmt.Errorf("dynamodb: parse size: %w", err)
	}

	// recorded_at is informational; tolerate items written without it.
	if s, err = stringAttr(item, attrRecordedAt); err == nil {
		e.RecordedAt, _ = time.Parse(time.RFC3339Nano, s)
	}

	return e, nil
}
