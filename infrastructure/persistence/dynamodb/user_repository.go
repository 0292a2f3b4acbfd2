package dynamodb

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/application/ports"
	"storefront-backend/domain/core/entities"
	pkgerrors "storefront-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository implements the UserRepository port using DynamoDB
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// userItem represents the DynamoDB item structure for a user
type userItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	UserID     string `dynamodbav:"UserID"`
	Name       string `dynamodbav:"Name"`
	Email      string `dynamodbav:"Email"`
	Photo      string `dynamodbav:"Photo"`
	Role       string `dynamodbav:"Role"`
	Gender     string `dynamodbav:"Gender"`
	DOB        string `dynamodbav:"DOB"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

func userToItem(u *entities.User) userItem {
	return userItem{
		PK:         fmt.Sprintf("%s#%s", entityUser, u.ID),
		SK:         skMetadata,
		GSI1PK:     fmt.Sprintf("ENTITY#%s", entityUser),
		GSI1SK:     sortableTime(u.CreatedAt),
		EntityType: entityUser,
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Photo:      u.Photo,
		Role:       string(u.Role),
		Gender:     string(u.Gender),
		DOB:        u.DOB.UTC().Format(time.RFC3339),
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (item userItem) toEntity() (*entities.User, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user createdAt: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user updatedAt: %w", err)
	}
	dob, err := time.Parse(time.RFC3339, item.DOB)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user dob: %w", err)
	}
	return &entities.User{
		ID:        item.UserID,
		Name:      item.Name,
		Email:     item.Email,
		Photo:     item.Photo,
		Role:      entities.UserRole(item.Role),
		Gender:    entities.Gender(item.Gender),
		DOB:       dob,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Save persists a user
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	av, err := attributevalue.MarshalMap(userToItem(user))
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save user",
			zap.Error(err),
			zap.String("userID", user.ID),
		)
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": stringAttr(fmt.Sprintf("%s#%s", entityUser, id)),
			"SK": stringAttr(skMetadata),
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return item.toEntity()
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": stringAttr(fmt.Sprintf("%s#%s", entityUser, id)),
			"SK": stringAttr(skMetadata),
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// All retrieves every user
func (r *UserRepository) All(ctx context.Context) ([]*entities.User, error) {
	input := r.entityQuery()

	var items []map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query users: %w", err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	users := make([]*entities.User, 0, len(items))
	for _, raw := range items {
		var item userItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal user item", zap.Error(err))
			continue
		}
		user, err := item.toEntity()
		if err != nil {
			r.logger.Warn("Failed to restore user", zap.Error(err))
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// CountAll counts every user
func (r *UserRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, nil)
}

// CountByGender counts users of one gender
func (r *UserRepository) CountByGender(ctx context.Context, gender entities.Gender) (int, error) {
	cond := expression.Equal(expression.Name("Gender"), expression.Value(string(gender)))
	return r.count(ctx, &cond)
}

// CountByRole counts users holding one role
func (r *UserRepository) CountByRole(ctx context.Context, role entities.UserRole) (int, error) {
	cond := expression.Equal(expression.Name("Role"), expression.Value(string(role)))
	return r.count(ctx, &cond)
}

// CreatedBetween retrieves users created within [start, end]
func (r *UserRepository) CreatedBetween(ctx context.Context, start, end time.Time) ([]*entities.User, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK BETWEEN :start AND :end"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    stringAttr(fmt.Sprintf("ENTITY#%s", entityUser)),
			":start": stringAttr(sortableTime(start)),
			":end":   stringAttr(sortableTime(end)),
		},
	}

	var items []map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query users by creation time: %w", err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	users := make([]*entities.User, 0, len(items))
	for _, raw := range items {
		var item userItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal user item", zap.Error(err))
			continue
		}
		user, err := item.toEntity()
		if err != nil {
			r.logger.Warn("Failed to restore user", zap.Error(err))
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) entityQuery() *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAttr(fmt.Sprintf("ENTITY#%s", entityUser)),
		},
	}
}

func (r *UserRepository) count(ctx context.Context, filter *expression.ConditionBuilder) (int, error) {
	input := r.entityQuery()
	input.Select = types.SelectCount
	if filter != nil {
		expr, err := expression.NewBuilder().WithFilter(*filter).Build()
		if err != nil {
			return 0, fmt.Errorf("failed to build count filter: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		for k, v := range expr.Values() {
			input.ExpressionAttributeValues[k] = v
		}
	}

	total := 0
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("failed to count users: %w", err)
		}
		total += int(result.Count)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return total, nil
}
