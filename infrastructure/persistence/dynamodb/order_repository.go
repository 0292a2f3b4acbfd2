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

// OrderRepository implements the OrderRepository port using DynamoDB
type OrderRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.OrderRepository {
	return &OrderRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// orderItemRecord is one order line inside an order item
type orderItemRecord struct {
	ProductID string  `dynamodbav:"ProductID"`
	Name      string  `dynamodbav:"Name"`
	Photo     string  `dynamodbav:"Photo"`
	Price     float64 `dynamodbav:"Price"`
	Quantity  int     `dynamodbav:"Quantity"`
}

// shippingRecord is the delivery address inside an order item
type shippingRecord struct {
	Address string `dynamodbav:"Address"`
	City    string `dynamodbav:"City"`
	State   string `dynamodbav:"State"`
	Country string `dynamodbav:"Country"`
	PinCode string `dynamodbav:"PinCode"`
}

// orderItem represents the DynamoDB item structure for an order.
// GSI2 keys the order under its user for the my-orders listing.
type orderItem struct {
	PK              string            `dynamodbav:"PK"`
	SK              string            `dynamodbav:"SK"`
	GSI1PK          string            `dynamodbav:"GSI1PK"`
	GSI1SK          string            `dynamodbav:"GSI1SK"`
	GSI2PK          string            `dynamodbav:"GSI2PK"`
	GSI2SK          string            `dynamodbav:"GSI2SK"`
	EntityType      string            `dynamodbav:"EntityType"`
	OrderID         string            `dynamodbav:"OrderID"`
	UserID          string            `dynamodbav:"UserID"`
	OrderStatus     string            `dynamodbav:"OrderStatus"`
	Items           []orderItemRecord `dynamodbav:"Items"`
	Shipping        shippingRecord    `dynamodbav:"Shipping"`
	Subtotal        float64           `dynamodbav:"Subtotal"`
	Tax             float64           `dynamodbav:"Tax"`
	ShippingCharges float64           `dynamodbav:"ShippingCharges"`
	Discount        float64           `dynamodbav:"Discount"`
	Total           float64           `dynamodbav:"Total"`
	CreatedAt       string            `dynamodbav:"CreatedAt"`
	UpdatedAt       string            `dynamodbav:"UpdatedAt"`
}

func orderToItem(o *entities.Order) orderItem {
	items := make([]orderItemRecord, len(o.Items))
	for i, line := range o.Items {
		items[i] = orderItemRecord{
			ProductID: line.ProductID,
			Name:      line.Name,
			Photo:     line.Photo,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
	}
	return orderItem{
		PK:         fmt.Sprintf("%s#%s", entityOrder, o.ID),
		SK:         skMetadata,
		GSI1PK:     fmt.Sprintf("ENTITY#%s", entityOrder),
		GSI1SK:     sortableTime(o.CreatedAt),
		GSI2PK:     fmt.Sprintf("USER#%s", o.UserID),
		GSI2SK:     fmt.Sprintf("ORDER#%s", sortableTime(o.CreatedAt)),
		EntityType: entityOrder,
		OrderID:    o.ID,
		UserID:     o.UserID,
		OrderStatus: string(o.Status),
		Items:       items,
		Shipping: shippingRecord{
			Address: o.Shipping.Address,
			City:    o.Shipping.City,
			State:   o.Shipping.State,
			Country: o.Shipping.Country,
			PinCode: o.Shipping.PinCode,
		},
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		ShippingCharges: o.ShippingCharges,
		Discount:        o.Discount,
		Total:           o.Total,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (item orderItem) toEntity() (*entities.Order, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order createdAt: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order updatedAt: %w", err)
	}

	lines := make([]entities.OrderItem, len(item.Items))
	for i, rec := range item.Items {
		lines[i] = entities.OrderItem{
			ProductID: rec.ProductID,
			Name:      rec.Name,
			Photo:     rec.Photo,
			Price:     rec.Price,
			Quantity:  rec.Quantity,
		}
	}

	return &entities.Order{
		ID:     item.OrderID,
		UserID: item.UserID,
		Status: entities.OrderStatus(item.OrderStatus),
		Items:  lines,
		Shipping: entities.ShippingInfo{
			Address: item.Shipping.Address,
			City:    item.Shipping.City,
			State:   item.Shipping.State,
			Country: item.Shipping.Country,
			PinCode: item.Shipping.PinCode,
		},
		Subtotal:        item.Subtotal,
		Tax:             item.Tax,
		ShippingCharges: item.ShippingCharges,
		Discount:        item.Discount,
		Total:           item.Total,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

// Save persists an order
func (r *OrderRepository) Save(ctx context.Context, order *entities.Order) error {
	av, err := attributevalue.MarshalMap(orderToItem(order))
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save order",
			zap.Error(err),
			zap.String("orderID", order.ID),
		)
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by its ID
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": stringAttr(fmt.Sprintf("%s#%s", entityOrder, id)),
			"SK": stringAttr(skMetadata),
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("order")
	}

	var item orderItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return item.toEntity()
}

// Delete removes an order
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": stringAttr(fmt.Sprintf("%s#%s", entityOrder, id)),
			"SK": stringAttr(skMetadata),
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// ByUser retrieves all orders placed by a user, newest first
func (r *OrderRepository) ByUser(ctx context.Context, userID string) ([]*entities.Order, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi2Name),
		KeyConditionExpression: aws.String("GSI2PK = :pk AND begins_with(GSI2SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAttr(fmt.Sprintf("USER#%s", userID)),
			":sk": stringAttr("ORDER#"),
		},
		ScanIndexForward: aws.Bool(false),
	}

	var items []map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query orders by user: %w", err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return r.unmarshalOrders(items)
}

// All retrieves every order
func (r *OrderRepository) All(ctx context.Context) ([]*entities.Order, error) {
	input := r.entityQuery()

	var items []map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query orders: %w", err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return r.unmarshalOrders(items)
}

// Latest retrieves the most recently placed orders, newest first
func (r *OrderRepository) Latest(ctx context.Context, limit int) ([]*entities.Order, error) {
	input := r.entityQuery()
	input.ScanIndexForward = aws.Bool(false)
	input.Limit = aws.Int32(int32(limit))

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest orders: %w", err)
	}
	return r.unmarshalOrders(result.Items)
}

// CountByStatus counts orders in one fulfillment state
func (r *OrderRepository) CountByStatus(ctx context.Context, status entities.OrderStatus) (int, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Equal(expression.Name("OrderStatus"), expression.Value(string(status)))).
		Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build status filter: %w", err)
	}

	input := r.entityQuery()
	input.Select = types.SelectCount
	input.FilterExpression = expr.Filter()
	input.ExpressionAttributeNames = expr.Names()
	for k, v := range expr.Values() {
		input.ExpressionAttributeValues[k] = v
	}

	total := 0
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("failed to count orders: %w", err)
		}
		total += int(result.Count)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return total, nil
}

// CreatedBetween retrieves orders created within [start, end]
func (r *OrderRepository) CreatedBetween(ctx context.Context, start, end time.Time) ([]*entities.Order, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK BETWEEN :start AND :end"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    stringAttr(fmt.Sprintf("ENTITY#%s", entityOrder)),
			":start": stringAttr(sortableTime(start)),
			":end":   stringAttr(sortableTime(end)),
		},
	}

	var items []map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query orders by creation time: %w", err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return r.unmarshalOrders(items)
}

func (r *OrderRepository) entityQuery() *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAttr(fmt.Sprintf("ENTITY#%s", entityOrder)),
		},
	}
}

func (r *OrderRepository) unmarshalOrders(items []map[string]types.AttributeValue) ([]*entities.Order, error) {
	orders := make([]*entities.Order, 0, len(items))
	for _, raw := range items {
		var item orderItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal order item", zap.Error(err))
			continue
		}
		order, err := item.toEntity()
		if err != nil {
			r.logger.Warn("Failed to restore order", zap.Error(err))
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}
