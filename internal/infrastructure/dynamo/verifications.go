package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
)

// VerificationRepo manages pending signup verification records.
// PK: email, SK: code.
type VerificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationRepo(client *dynamodb.Client, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName}
}

func (r *VerificationRepo) Put(ctx context.Context, v *domain.VerificationRequest) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put verification: %w (%w)", err, domain.ErrDatastore)
	}
	return nil
}

func (r *VerificationRepo) Get(ctx context.Context, email, code string) (*domain.VerificationRequest, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("email", email, "code", code),
	})
	if err != nil {
		return nil, fmt.Errorf("get verification: %w (%w)", err, domain.ErrDatastore)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("verification not found: %w", domain.ErrNotFound)
	}
	var v domain.VerificationRequest
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// MarkUsed flips used to true. The flag is monotonic; nothing ever resets it.
func (r *VerificationRepo) MarkUsed(ctx context.Context, email, code string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{"used": true})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       compositeKey("email", email, "code", code),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		return fmt.Errorf("mark verification used: %w (%w)", err, domain.ErrDatastore)
	}
	return nil
}

// DeleteUnusedByEmail removes every unused code for the email, enforcing
// one-active-code-per-email on re-initiated signups.
func (r *VerificationRepo) DeleteUnusedByEmail(ctx context.Context, email string) error {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String("email = :e"),
		FilterExpression:          aws.String("used = :f"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
			":f": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		return fmt.Errorf("query verifications: %w (%w)", err, domain.ErrDatastore)
	}
	var items []domain.VerificationRequest
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return err
	}
	for _, v := range items {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       compositeKey("email", v.Email, "code", v.Code),
		})
		if err != nil {
			return fmt.Errorf("delete stale verification: %w (%w)", err, domain.ErrDatastore)
		}
	}
	return nil
}
