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

// RoleRepo provides typed DynamoDB operations for the roles table.
type RoleRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRoleRepo(client *dynamodb.Client, tableName string) *RoleRepo {
	return &RoleRepo{client: client, tableName: tableName}
}

func (r *RoleRepo) Put(ctx context.Context, role *domain.Role) error {
	item, err := attributevalue.MarshalMap(role)
	if err != nil {
		return fmt.Errorf("marshal role: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// GetByName looks up a role through the name-index GSI. Role names are unique.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("name-index"),
		KeyConditionExpression:    aws.String("#n = :v"),
		ExpressionAttributeNames:  map[string]string{"#n": "name"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: name}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query role by name: %w (%w)", err, domain.ErrDatastore)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("role %q not found: %w", name, domain.ErrNotFound)
	}
	var role domain.Role
	if err := attributevalue.UnmarshalMap(out.Items[0], &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// RoleAssignmentRepo stores (user, role) pairs. PK: user_id, SK: role_id.
type RoleAssignmentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRoleAssignmentRepo(client *dynamodb.Client, tableName string) *RoleAssignmentRepo {
	return &RoleAssignmentRepo{client: client, tableName: tableName}
}

func (r *RoleAssignmentRepo) Put(ctx context.Context, a *domain.RoleAssignment) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal role assignment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put role assignment: %w (%w)", err, domain.ErrDatastore)
	}
	return nil
}

// DeleteByUser removes every role assignment for the user. Deleting an absent
// assignment is a no-op.
func (r *RoleAssignmentRepo) DeleteByUser(ctx context.Context, userID string) error {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID}},
	})
	if err != nil {
		return fmt.Errorf("query role assignments: %w (%w)", err, domain.ErrDatastore)
	}
	var assignments []domain.RoleAssignment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &assignments); err != nil {
		return err
	}
	for _, a := range assignments {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       compositeKey("user_id", a.UserID, "role_id", a.RoleID),
		})
		if err != nil {
			return fmt.Errorf("delete role assignment: %w (%w)", err, domain.ErrDatastore)
		}
	}
	return nil
}
