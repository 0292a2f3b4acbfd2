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
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// CouponRepository implements the CouponRepository port using DynamoDB.
// GSI2 keys each coupon by its code for the discount lookup.
type CouponRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCouponRepository creates a new CouponRepository
func NewCouponRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CouponRepository {
	return &CouponRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// couponItem represents the DynamoDB item structure for a coupon
type couponItem struct {
	PK         string  `dynamodbav:"PK"`
	SK         string  `dynamodbav:"SK"`
	GSI1PK     string  `dynamodbav:"GSI1PK"`
	GSI1SK     string  `dynamodbav:"GSI1SK"`
	GSI2PK     string  `dynamodbav:"GSI2PK"`
	GSI2SK     string  `dynamodbav:"GSI2SK"`
	EntityType string  `dynamodbav:"EntityType"`
	CouponID   string  `dynamodbav:"CouponID"`
	Code       string  `dynamodbav:"Code"`
	Amount     float64 `dynamodbav:"Amount"`
	CreatedAt  string  `dynamodbav:"CreatedAt"`
}

func couponToItem(c *entities.Coupon) couponItem {
	return couponItem{
		PK:         fmt.Sprintf("%s#%s", entityCoupon, c.ID),
		SK:         skMetadata,
		GSI1PK:     fmt.Sprintf("ENTITY#%s", entityCoupon),
		GSI1SK:     sortableTime(c.CreatedAt),
		GSI2PK:     fmt.Sprintf("COUPONCODE#%s", c.Code),
		GSI2SK:     skMetadata,
		EntityType: entityCoupon,
		CouponID:   c.ID,
		Code:       c.Code,
		Amount:     c.Amount,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (item couponItem) toEntity() (*entities.Coupon, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coupon createdAt: %w", err)
	}
	return &entities.Coupon{
		ID:        item.CouponID,
		Code:      item.Code,
		Amount:    item.Amount,
		CreatedAt: createdAt,
	}, nil
}

// Save persists a coupon
func (r *CouponRepository) Save(ctx context.Context, coupon *entities.Coupon) error {
	av, err := attributevalue.MarshalMap(couponToItem(coupon))
	if err != nil {
		return fmt.Errorf("failed to marshal coupon: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save coupon",
			zap.Error(err),
			zap.String("couponID", coupon.ID),
		)
		return fmt.Errorf("failed to save coupon: %w", err)
	}
	return nil
}

// GetByID retrieves a coupon by its ID
func (r *CouponRepository) GetByID(ctx context.Context, id string) (*entities.Coupon, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": stringAttr(fmt.Sprintf("%s#%s", entityCoupon, id)),
			"SK": stringAttr(skMetadata),
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("coupon")
	}

	var item couponItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal coupon: %w", err)
	}
	return item.toEntity()
}

// GetByCode retrieves a coupon by its code
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi2Name),
		KeyConditionExpression: aws.String("GSI2PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAttr(fmt.Sprintf("COUPONCODE#%s", code)),
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupon by code: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("coupon")
	}

	var item couponItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal coupon: %w", err)
	}
	return item.toEntity()
}

// Delete removes a coupon
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": stringAttr(fmt.Sprintf("%s#%s", entityCoupon, id)),
			"SK": stringAttr(skMetadata),
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	return nil
}

// All retrieves every coupon
func (r *CouponRepository) All(ctx context.Context) ([]*entities.Coupon, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAttr(fmt.Sprintf("ENTITY#%s", entityCoupon)),
		},
	}

	var items []map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query coupons: %w", err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	coupons := make([]*entities.Coupon, 0, len(items))
	for _, raw := range items {
		var item couponItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal coupon item", zap.Error(err))
			continue
		}
		coupon, err := item.toEntity()
		if err != nil {
			r.logger.Warn("Failed to restore coupon", zap.Error(err))
			continue
		}
		coupons = append(coupons, coupon)
	}
	return coupons, nil
}
