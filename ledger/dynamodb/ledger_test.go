package dynamodb

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/ledger"
)

// fakeClient is an in-memory DynamoDB table keyed by name that evaluates
// the ledger's put condition.
type fakeClient struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	puts  []*dynamodb.PutItemInput
	err   error
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue)}
}

func sAttr(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	if v, ok := item[key].(*types.AttributeValueMemberN); ok {
		return v.Value
	}
	return ""
}

func (f *fakeClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, params)

	name := sAttr(params.Item, attrName)
	if existing, ok := f.items[name]; ok && aws.ToString(params.ConditionExpression) == putCondition {
		vals := params.ExpressionAttributeValues
		same := sAttr(existing, attrDigest) == sAttr(vals, ":digest") &&
			sAttr(existing, attrAlgorithm) == sAttr(vals, ":algorithm") &&
			sAttr(existing, attrSeed) == sAttr(vals, ":seed")
		if !same {
			condErr := &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
			if params.ReturnValuesOnConditionCheckFailure == types.ReturnValuesOnConditionCheckFailureAllOld {
				condErr.Item = existing
			}
			return nil, condErr
		}
	}

	f.items[name] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[sAttr(params.Key, attrName)]}, nil
}

func entry(t *testing.T, name, content string) ledger.Entry {
	t.Helper()
	d, err := hashkit.Sum(hashkit.Murmur3_128x64, []byte(content), hashkit.WithSeed(7))
	require.NoError(t, err)
	return ledger.Entry{Name: name, Algorithm: hashkit.Murmur3_128x64, Seed: 7, Digest: d, Size: int64(len(content))}
}

func TestLedger_PutGet(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	l := NewLedger(client, "hashkit-ledger")
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	_, err := l.Get(ctx, "a")
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	e := entry(t, "a", "payload")
	require.NoError(t, l.Put(ctx, e))

	got, err := l.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.Matches(e))
	assert.Equal(t, int64(7), got.Size)
	assert.True(t, l.now().Equal(got.RecordedAt))

	require.Len(t, client.puts, 1)
	put := client.puts[0]
	assert.Equal(t, "hashkit-ledger", aws.ToString(put.TableName))
	assert.Equal(t, putCondition, aws.ToString(put.ConditionExpression))
	assert.Equal(t, "name", put.ExpressionAttributeNames["#name"])
}

func TestLedger_IdempotentPut(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newFakeClient(), "t")

	e := entry(t, "a", "payload")
	require.NoError(t, l.Put(ctx, e))
	require.NoError(t, l.Put(ctx, e))
}

func TestLedger_Conflict(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newFakeClient(), "t")

	first := entry(t, "a", "payload")
	require.NoError(t, l.Put(ctx, first))

	err := l.Put(ctx, entry(t, "a", "tampered"))
	require.ErrorIs(t, err, ledger.ErrConflict)

	var conflict *ledger.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.True(t, conflict.Existing.Matches(first))
}

func TestLedger_ClientError(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.err = errors.New("throttled")
	l := NewLedger(client, "t")

	err := l.Put(ctx, entry(t, "a", "payload"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ledger.ErrConflict)

	_, err = l.Get(ctx, "a")
	assert.ErrorContains(t, err, "throttled")
}

func TestUnmarshalEntry_Invalid(t *testing.T) {
	item := marshalEntry(entry(t, "a", "payload"))
	item[attrDigest] = &types.AttributeValueMemberS{Value: "zz"}
	_, err := unmarshalEntry(item)
	assert.ErrorIs(t, err, hashkit.ErrInvalidDigest)

	item = marshalEntry(entry(t, "a", "payload"))
	delete(item, attrSeed)
	_, err = unmarshalEntry(item)
	assert.Error(t, err)

	item = marshalEntry(entry(t, "a", "payload"))
	delete(item, attrRecordedAt)
	e, err := unmarshalEntry(item)
	require.NoError(t, err)
	assert.True(t, e.RecordedAt.IsZero())
}
