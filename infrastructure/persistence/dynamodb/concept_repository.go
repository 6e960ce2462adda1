package dynamodb

import (
	"context"
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

// ConceptRepository implements the ConceptRepository port using a single
// DynamoDB table
type ConceptRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewConceptRepository creates a new ConceptRepository
func NewConceptRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ConceptRepository {
	return &ConceptRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// storyItem is the nested story attribute on a concept item
type storyItem struct {
	Title      string            `dynamodbav:"Title"`
	Scene      string            `dynamodbav:"Scene"`
	Problem    string            `dynamodbav:"Problem"`
	Solution   string            `dynamodbav:"Solution"`
	Characters map[string]string `dynamodbav:"Characters"`
	Mapping    map[string]string `dynamodbav:"Mapping"`
	RealWorld  string            `dynamodbav:"RealWorld"`
}

// conceptItem represents the DynamoDB item structure for a concept
type conceptItem struct {
	PK            string     `dynamodbav:"PK"`
	SK            string     `dynamodbav:"SK"`
	EntityType    string     `dynamodbav:"EntityType"`
	ConceptID     string     `dynamodbav:"ConceptID"`
	Title         string     `dynamodbav:"Title"`
	Description   string     `dynamodbav:"Description"`
	Metaphor      string     `dynamodbav:"Metaphor"`
	Difficulty    string     `dynamodbav:"Difficulty"`
	EstimatedTime string     `dynamodbav:"EstimatedTime"`
	Framework     string     `dynamodbav:"Framework"`
	Story         *storyItem `dynamodbav:"Story,omitempty"`
	CreatedAt     string     `dynamodbav:"CreatedAt"`
	UpdatedAt     string     `dynamodbav:"UpdatedAt"`
}

func conceptKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CONCEPT#%s", id)},
		"SK": &types.AttributeValueMemberS{Value: "METADATA"},
	}
}

func toConceptItem(c *content.Concept) conceptItem {
	item := conceptItem{
		PK:            fmt.Sprintf("CONCEPT#%s", c.ID),
		SK:            "METADATA",
		EntityType:    "CONCEPT",
		ConceptID:     c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Metaphor:      c.Metaphor,
		Difficulty:    string(c.Difficulty),
		EstimatedTime: c.EstimatedTime,
		Framework:     c.Framework,
		CreatedAt:     utils.FormatRFC3339(c.CreatedAt),
		UpdatedAt:     utils.FormatRFC3339(c.UpdatedAt),
	}
	if c.Story != nil {
		item.Story = &storyItem{
			Title:      c.Story.Title,
			Scene:      c.Story.Scene,
			Problem:    c.Story.Problem,
			Solution:   c.Story.Solution,
			Characters: c.Story.Characters,
			Mapping:    c.Story.Mapping,
			RealWorld:  c.Story.RealWorld,
		}
	}
	return item
}

func fromConceptItem(item conceptItem) *content.Concept {
	c := &content.Concept{
		ID:            item.ConceptID,
		Title:         item.Title,
		Description:   item.Description,
		Metaphor:      item.Metaphor,
		Difficulty:    content.Difficulty(item.Difficulty),
		EstimatedTime: item.EstimatedTime,
		Framework:     item.Framework,
		CreatedAt:     utils.ParseRFC3339(item.CreatedAt),
		UpdatedAt:     utils.ParseRFC3339(item.UpdatedAt),
	}
	if item.Story != nil {
		c.Story = &content.Story{
			Title:      item.Story.Title,
			Scene:      item.Story.Scene,
			Problem:    item.Story.Problem,
			Solution:   item.Story.Solution,
			Characters: item.Story.Characters,
			Mapping:    item.Story.Mapping,
			RealWorld:  item.Story.RealWorld,
		}
	}
	return c
}

// Save persists a concept to DynamoDB
func (r *ConceptRepository) Save(ctx context.Context, concept *content.Concept) error {
	av, err := attributevalue.MarshalMap(toConceptItem(concept))
	if err != nil {
		return apperrors.NewDatabaseError("marshal concept", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return apperrors.NewDatabaseError("save concept", err)
	}

	r.logger.Debug("concept saved", zap.String("conceptID", concept.ID))
	return nil
}

// GetByID retrieves a concept by its ID
func (r *ConceptRepository) GetByID(ctx context.Context, id string) (*content.Concept, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       conceptKey(id),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get concept", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("Concept").WithDetails(map[string]interface{}{"conceptId": id})
	}

	var item conceptItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal concept", err)
	}

	return fromConceptItem(item), nil
}

// GetByIDs retrieves multiple concepts with BatchGetItem, silently
// skipping identifiers that no longer resolve. Callers compare lengths to
// detect dangling references.
func (r *ConceptRepository) GetByIDs(ctx context.Context, ids []string) ([]*content.Concept, error) {
	if len(ids) == 0 {
		return []*content.Concept{}, nil
	}

	byID := make(map[string]*content.Concept, len(ids))

	// BatchGetItem caps at 100 keys per request
	for start := 0; start < len(ids); start += 100 {
		end := start + 100
		if end > len(ids) {
			end = len(ids)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, conceptKey(id))
		}

		requestItems := map[string]types.KeysAndAttributes{
			r.tableName: {Keys: keys},
		}

		for len(requestItems) > 0 {
			result, err := r.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
				RequestItems: requestItems,
			})
			if err != nil {
				return nil, apperrors.NewDatabaseError("batch get concepts", err)
			}

			for _, raw := range result.Responses[r.tableName] {
				var item conceptItem
				if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
					r.logger.Warn("skipping unreadable concept item", zap.Error(err))
					continue
				}
				byID[item.ConceptID] = fromConceptItem(item)
			}

			requestItems = result.UnprocessedKeys
		}
	}

	// Preserve the caller's reference order
	concepts := make([]*content.Concept, 0, len(byID))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			concepts = append(concepts, c)
		}
	}
	return concepts, nil
}

// List retrieves all concepts via a filtered scan
func (r *ConceptRepository) List(ctx context.Context) ([]*content.Concept, error) {
	filter := expression.Name("EntityType").Equal(expression.Value("CONCEPT"))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build concept scan", err)
	}

	var concepts []*content.Concept
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
			return nil, apperrors.NewDatabaseError("scan concepts", err)
		}

		for _, raw := range result.Items {
			var item conceptItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable concept item", zap.Error(err))
				continue
			}
			concepts = append(concepts, fromConceptItem(item))
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return concepts, nil
}

// Delete removes a concept
func (r *ConceptRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       conceptKey(id),
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete concept", err)
	}

	r.logger.Debug("concept deleted", zap.String("conceptID", id))
	return nil
}
