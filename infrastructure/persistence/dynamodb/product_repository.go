package dynamodb

import (
	"context"
	"fmt"
	"sort"
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

// ProductRepository implements the ProductRepository port using DynamoDB
type ProductRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ProductRepository {
	return &ProductRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// productItem represents the DynamoDB item structure for a product
type productItem struct {
	PK         string  `dynamodbav:"PK"`
	SK         string  `dynamodbav:"SK"`
	GSI1PK     string  `dynamodbav:"GSI1PK"`
	GSI1SK     string  `dynamodbav:"GSI1SK"`
	EntityType string  `dynamodbav:"EntityType"`
	ProductID  string  `dynamodbav:"ProductID"`
	Name       string  `dynamodbav:"Name"`
	Category   string  `dynamodbav:"Category"`
	Price      float64 `dynamodbav:"Price"`
	Stock      int     `dynamodbav:"Stock"`
	Photo      string  `dynamodbav:"Photo"`
	CreatedAt  string  `dynamodbav:"CreatedAt"`
	UpdatedAt  string  `dynamodbav:"UpdatedAt"`
}

func productToItem(p *entities.Product) productItem {
	return productItem{
		PK:         fmt.Sprintf("%s#%s", entityProduct, p.ID),
		SK:         skMetadata,
		GSI1PK:     fmt.Sprintf("ENTITY#%s", entityProduct),
		GSI1SK:     sortableTime(p.CreatedAt),
		EntityType: entityProduct,
		ProductID:  p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price,
		Stock:      p.Stock,
		Photo:      p.Photo,
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (item productItem) toEntity() (*entities.Product, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product createdAt: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product updatedAt: %w", err)
	}
	return &entities.Product{
		ID:        item.ProductID,
		Name:      item.Name,
		Category:  item.Category,
		Price:     item.Price,
		Stock:     item.Stock,
		Photo:     item.Photo,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Save persists a product
func (r *ProductRepository) Save(ctx context.Context, product *entities.Product) error {
	av, err := attributevalue.MarshalMap(productToItem(product))
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save product",
			zap.Error(err),
			zap.String("productID", product.ID),
		)
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by its ID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": stringAttr(fmt.Sprintf("%s#%s", entityProduct, id)),
			"SK": stringAttr(skMetadata),
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("product")
	}

	var item productItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return item.toEntity()
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": stringAttr(fmt.Sprintf("%s#%s", entityProduct, id)),
			"SK": stringAttr(skMetadata),
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// Latest retrieves the most recently created products, newest first
func (r *ProductRepository) Latest(ctx context.Context, limit int) ([]*entities.Product, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAttr(fmt.Sprintf("ENTITY#%s", entityProduct)),
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest products: %w", err)
	}
	return r.unmarshalProducts(result.Items)
}

// All retrieves every product in the catalog
func (r *ProductRepository) All(ctx context.Context) ([]*entities.Product, error) {
	items, err := r.queryAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return r.unmarshalProducts(items)
}

// Search finds products matching the given criteria. Matches are
// filtered and counted server-side; price ordering and pagination
// happen here because the creation-time index cannot order by price.
func (r *ProductRepository) Search(ctx context.Context, criteria ports.ProductSearch) ([]*entities.Product, int, error) {
	var filter expression.ConditionBuilder
	hasFilter := false

	addFilter := func(cond expression.ConditionBuilder) {
		if hasFilter {
			filter = filter.And(cond)
		} else {
			filter = cond
			hasFilter = true
		}
	}

	if criteria.Name != "" {
		addFilter(expression.Contains(expression.Name("Name"), criteria.Name))
	}
	if criteria.Category != "" {
		addFilter(expression.Equal(expression.Name("Category"), expression.Value(criteria.Category)))
	}
	if criteria.MaxPrice > 0 {
		addFilter(expression.LessThanEqual(expression.Name("Price"), expression.Value(criteria.MaxPrice)))
	}

	var filterExpr *expression.Expression
	if hasFilter {
		expr, err := expression.NewBuilder().WithFilter(filter).Build()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to build search filter: %w", err)
		}
		filterExpr = &expr
	}

	items, err := r.queryAll(ctx, filterExpr)
	if err != nil {
		return nil, 0, err
	}
	products, err := r.unmarshalProducts(items)
	if err != nil {
		return nil, 0, err
	}

	switch criteria.Sort {
	case "asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	}

	total := len(products)
	start := (criteria.Page - 1) * criteria.PerPage
	if start >= total {
		return []*entities.Product{}, total, nil
	}
	end := start + criteria.PerPage
	if end > total {
		end = total
	}
	return products[start:end], total, nil
}

// Categories retrieves the distinct product categories
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	products, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// CountAll counts every product
func (r *ProductRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, nil)
}

// CountByCategory counts products in one category
func (r *ProductRepository) CountByCategory(ctx context.Context, category string) (int, error) {
	cond := expression.Equal(expression.Name("Category"), expression.Value(category))
	return r.count(ctx, &cond)
}

// CountOutOfStock counts products with zero stock
func (r *ProductRepository) CountOutOfStock(ctx context.Context) (int, error) {
	cond := expression.LessThanEqual(expression.Name("Stock"), expression.Value(0))
	return r.count(ctx, &cond)
}

// CreatedBetween retrieves products created within [start, end]
func (r *ProductRepository) CreatedBetween(ctx context.Context, start, end time.Time) ([]*entities.Product, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK BETWEEN :start AND :end"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    stringAttr(fmt.Sprintf("ENTITY#%s", entityProduct)),
			":start": stringAttr(sortableTime(start)),
			":end":   stringAttr(sortableTime(end)),
		},
	}

	var items []map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query products by creation time: %w", err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return r.unmarshalProducts(items)
}

// queryAll pages through every product item on GSI1, optionally
// applying a filter expression.
func (r *ProductRepository) queryAll(ctx context.Context, filterExpr *expression.Expression) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAttr(fmt.Sprintf("ENTITY#%s", entityProduct)),
		},
	}
	if filterExpr != nil {
		input.FilterExpression = filterExpr.Filter()
		input.ExpressionAttributeNames = filterExpr.Names()
		for k, v := range filterExpr.Values() {
			input.ExpressionAttributeValues[k] = v
		}
	}

	var items []map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query products: %w", err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return items, nil
}

// count runs a Select COUNT query over the product partition of GSI1.
func (r *ProductRepository) count(ctx context.Context, filter *expression.ConditionBuilder) (int, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAttr(fmt.Sprintf("ENTITY#%s", entityProduct)),
		},
		Select: types.SelectCount,
	}
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
			return 0, fmt.Errorf("failed to count products: %w", err)
		}
		total += int(result.Count)
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return total, nil
}

func (r *ProductRepository) unmarshalProducts(items []map[string]types.AttributeValue) ([]*entities.Product, error) {
	products := make([]*entities.Product, 0, len(items))
	for _, raw := range items {
		var item productItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal product item", zap.Error(err))
			continue
		}
		product, err := item.toEntity()
		if err != nil {
			r.logger.Warn("Failed to restore product", zap.Error(err))
			continue
		}
		products = append(products, product)
	}
	return products, nil
}
