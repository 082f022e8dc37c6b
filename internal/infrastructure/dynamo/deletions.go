package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
)

// DeletionRepo manages account deletion requests.
// PK: id. GSI status-index: status (hash) + scheduled_purge_at (range) lets the
// purge worker enumerate due pending requests without a table scan.
type DeletionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDeletionRepo(client *dynamodb.Client, tableName string) *DeletionRepo {
	return &DeletionRepo{client: client, tableName: tableName}
}

func (r *DeletionRepo) Put(ctx context.Context, req *domain.AccountDeletionRequest) error {
	item, err := attributevalue.MarshalMap(req)
	if err != nil {
		return fmt.Errorf("marshal deletion request: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put deletion request: %w (%w)", err, domain.ErrDatastore)
	}
	return nil
}

// ListDue returns pending requests whose scheduled purge time is at or before now.
func (r *DeletionRepo) ListDue(ctx context.Context, now time.Time) ([]domain.AccountDeletionRequest, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("status-index"),
		KeyConditionExpression: aws.String("#s = :pending AND scheduled_purge_at <= :now"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: domain.DeletionStatusPending},
			":now":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Unix())},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query due deletion requests: %w (%w)", err, domain.ErrDatastore)
	}
	var reqs []domain.AccountDeletionRequest
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// Claim atomically flips status pending -> processing so overlapping purge
// cycles cannot double-process the same request. Returns domain.ErrNotFound
// when another cycle already claimed (or completed) it.
func (r *DeletionRepo) Claim(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, domain.DeletionStatusPending, domain.DeletionStatusProcessing, nil)
}

// Release reverts a claimed request to pending after a failed purge attempt,
// making it eligible for retry next cycle.
func (r *DeletionRepo) Release(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, domain.DeletionStatusProcessing, domain.DeletionStatusPending, nil)
}

// Complete marks a claimed request purged. Completed requests are never
// reprocessed: they no longer match the pending filter.
func (r *DeletionRepo) Complete(ctx context.Context, id string, purgedAt time.Time) error {
	return r.setStatus(ctx, id, domain.DeletionStatusProcessing, domain.DeletionStatusCompleted, &purgedAt)
}

func (r *DeletionRepo) setStatus(ctx context.Context, id, from, to string, purgedAt *time.Time) error {
	updates := map[string]interface{}{"status": to}
	if purgedAt != nil {
		updates["purged_at"] = purgedAt.UTC()
	}
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	ue.Values[":from"] = &types.AttributeValueMemberS{Value: from}
	ue.Names["#s"] = "status"
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("id", id),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("#s = :from"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return fmt.Errorf("deletion request not in state %s: %w", from, domain.ErrNotFound)
		}
		return fmt.Errorf("update deletion request status: %w (%w)", err, domain.ErrDatastore)
	}
	return nil
}
