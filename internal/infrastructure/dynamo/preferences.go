package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
)

// PreferencesRepo provides typed DynamoDB operations for the travel_preferences table.
type PreferencesRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPreferencesRepo(client *dynamodb.Client, tableName string) *PreferencesRepo {
	return &PreferencesRepo{client: client, tableName: tableName}
}

func (r *PreferencesRepo) Put(ctx context.Context, p *domain.TravelPreferences) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal travel preferences: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put travel preferences: %w (%w)", err, domain.ErrDatastore)
	}
	return nil
}

func (r *PreferencesRepo) Get(ctx context.Context, userID string) (*domain.TravelPreferences, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return nil, fmt.Errorf("get travel preferences: %w (%w)", err, domain.ErrDatastore)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("travel preferences not found: %w", domain.ErrNotFound)
	}
	var p domain.TravelPreferences
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete hard-deletes the preferences row. Absent rows delete as a no-op.
func (r *PreferencesRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return fmt.Errorf("delete travel preferences: %w (%w)", err, domain.ErrDatastore)
	}
	return nil
}
