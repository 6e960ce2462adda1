package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"conceptcraft-backend/application/ports"
	"conceptcraft-backend/domain/content"
	apperrors "conceptcraft-backend/pkg/errors"
	"conceptcraft-backend/pkg/utils"
)

// FrameworkRepository implements the FrameworkRepository port using a
// single DynamoDB table
type FrameworkRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewFrameworkRepository creates a new FrameworkRepository
func NewFrameworkRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.FrameworkRepository {
	return &FrameworkRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// frameworkItem represents the DynamoDB item structure for a framework
type frameworkItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	EntityType  string   `dynamodbav:"EntityType"`
	FrameworkID string   `dynamodbav:"FrameworkID"`
	Name        string   `dynamodbav:"Name"`
	ConceptRefs []string `dynamodbav:"ConceptRefs"`
	CreatedAt   string   `dynamodbav:"CreatedAt"`
	UpdatedAt   string   `dynamodbav:"UpdatedAt"`
}

func frameworkKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("FRAMEWORK#%s", id)},
		"SK": &types.AttributeValueMemberS{Value: "METADATA"},
	}
}

func toFrameworkItem(fw *content.Framework) frameworkItem {
	refs := fw.ConceptRefs
	if refs == nil {
		refs = []string{}
	}
	return frameworkItem{
		PK:          fmt.Sprintf("FRAMEWORK#%s", fw.ID),
		SK:          "METADATA",
		EntityType:  "FRAMEWORK",
		FrameworkID: fw.ID,
		Name:        fw.Name,
		ConceptRefs: refs,
		CreatedAt:   utils.FormatRFC3339(fw.CreatedAt),
		UpdatedAt:   utils.FormatRFC3339(fw.UpdatedAt),
	}
}

func fromFrameworkItem(item frameworkItem) *content.Framework {
	return &content.Framework{
		ID:          item.FrameworkID,
		Name:        item.Name,
		ConceptRefs: item.ConceptRefs,
		CreatedAt:   utils.ParseRFC3339(item.CreatedAt),
		UpdatedAt:   utils.ParseRFC3339(item.UpdatedAt),
	}
}

// Save persists a framework to DynamoDB
func (r *FrameworkRepository) Save(ctx context.Context, framework *content.Framework) error {
	av, err := attributevalue.MarshalMap(toFrameworkItem(framework))
	if err != nil {
		return apperrors.NewDatabaseError("marshal framework", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return apperrors.NewDatabaseError("save framework", err)
	}

	r.logger.Debug("framework saved",
		zap.String("frameworkID", framework.ID),
		zap.Int("conceptRefs", len(framework.ConceptRefs)))
	return nil
}

// GetByID retrieves a framework by its slug
func (r *FrameworkRepository) GetByID(ctx context.Context, id string) (*content.Framework, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       frameworkKey(id),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get framework", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("Framework").WithDetails(map[string]interface{}{"frameworkId": id})
	}

	var item frameworkItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal framework", err)
	}

	return fromFrameworkItem(item), nil
}

// List retrieves all frameworks via a filtered scan. The catalog is small
// (tens of frameworks), so a scan is acceptable here.
func (r *FrameworkRepository) List(ctx context.Context) ([]*content.Framework, error) {
	filter := expression.Name("EntityType").Equal(expression.Value("FRAMEWORK"))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build framework scan", err)
	}

	var frameworks []*content.Framework
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan frameworks", err)
		}

		for _, raw := range result.Items {
			var item frameworkItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable framework item", zap.Error(err))
				continue
			}
			frameworks = append(frameworks, fromFrameworkItem(item))
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return frameworks, nil
}

// Delete removes a framework. The delete is conditional on the stored
// item having an empty concept list, so a link racing with the delete
// fails the condition instead of silently losing the reference.
func (r *FrameworkRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 frameworkKey(id),
		ConditionExpression: aws.String("attribute_exists(PK) AND size(ConceptRefs) = :zero"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return apperrors.NewConflictError("framework is missing or still has concepts: " + id)
		}
		return apperrors.NewDatabaseError("delete framework", err)
	}

	r.logger.Debug("framework deleted", zap.String("frameworkID", id))
	return nil
}

// SaveMany persists multiple frameworks in a single TransactWriteItems
// call, so reassign either moves a concept completely or not at all.
func (r *FrameworkRepository) SaveMany(ctx context.Context, frameworks []*content.Framework) error {
	if len(frameworks) == 0 {
		return nil
	}

	items := make([]types.TransactWriteItem, 0, len(frameworks))
	for _, fw := range frameworks {
		av, err := attributevalue.MarshalMap(toFrameworkItem(fw))
		if err != nil {
			return apperrors.NewDatabaseError("marshal framework", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(r.tableName),
				Item:      av,
			},
		})
	}

	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return apperrors.NewDatabaseError("transactional framework save", err)
	}

	r.logger.Debug("frameworks saved transactionally", zap.Int("count", len(frameworks)))
	return nil
}
