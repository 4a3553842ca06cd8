package ddbrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/programme-lv/writing/logger"
	"github.com/programme-lv/writing/writing/domain"
)

// The table key is (user_id, uuid), so PutItem replaces a stored
// submission. Listing goes through the local secondary index on
// created_sk, a fixed width UTC timestamp followed by the uuid.
const (
	attrUserID    = "user_id"
	attrUUID      = "uuid"
	attrCreatedSK = "created_sk"

	CreatedIndex = "created_sk-index"
)

const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

type DdbClient interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type ddbSubmRepo struct {
	client DdbClient
	table  string
}

func NewDdbSubmRepo(client DdbClient, table string) *ddbSubmRepo {
	return &ddbSubmRepo{client: client, table: table}
}

type submRow struct {
	UserID     string  `dynamodbav:"user_id"`
	CreatedSK  string  `dynamodbav:"created_sk"`
	UUID       string  `dynamodbav:"uuid"`
	CreatedAt  string  `dynamodbav:"created_at"`
	Difficulty string  `dynamodbav:"difficulty"`
	Topic      string  `dynamodbav:"topic"`
	PromptText string  `dynamodbav:"prompt_text"`
	UserText   string  `dynamodbav:"user_text"`
	WordCount  int     `dynamodbav:"word_count"`
	Evaluation *string `dynamodbav:"evaluation,omitempty"`
}

func toRow(s domain.WritingSubm) submRow {
	createdAt := s.CreatedAt.UTC().Format(createdAtLayout)
	return submRow{
		UserID:     s.UserID,
		CreatedSK:  createdAt + "#" + s.UUID.String(),
		UUID:       s.UUID.String(),
		CreatedAt:  createdAt,
		Difficulty: s.Difficulty,
		Topic:      s.Topic,
		PromptText: s.PromptText,
		UserText:   s.UserText,
		WordCount:  s.WordCount,
		Evaluation: s.EvaluationOrNil(),
	}
}

func (row submRow) toDomain() (domain.WritingSubm, error) {
	id, err := uuid.Parse(row.UUID)
	if err != nil {
		return domain.WritingSubm{}, fmt.Errorf("bad uuid %q: %w", row.UUID, err)
	}
	createdAt, err := time.Parse(createdAtLayout, row.CreatedAt)
	if err != nil {
		return domain.WritingSubm{}, fmt.Errorf("bad created_at %q: %w", row.CreatedAt, err)
	}
	s := domain.WritingSubm{
		UUID:       id,
		UserID:     row.UserID,
		CreatedAt:  createdAt,
		Difficulty: row.Difficulty,
		Topic:      row.Topic,
		PromptText: row.PromptText,
		UserText:   row.UserText,
		WordCount:  row.WordCount,
	}
	if row.Evaluation != nil {
		s.Evaluation = json.RawMessage(*row.Evaluation)
	}
	return s, nil
}

var projectedAttrs = []string{
	attrUserID, attrUUID, "created_at", "difficulty", "topic",
	"prompt_text", "user_text", "word_count", "evaluation",
}

func (r *ddbSubmRepo) listQuery(userID string) (*dynamodb.QueryInput, error) {
	keyCond := expression.Key(attrUserID).Equal(expression.Value(userID))

	names := make([]expression.NameBuilder, 0, len(projectedAttrs))
	for _, a := range projectedAttrs {
		names = append(names, expression.Name(a))
	}
	proj := expression.NamesList(names[0], names[1:]...)

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithProjection(proj).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	return &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(CreatedIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}, nil
}

func (r *ddbSubmRepo) ListByUser(ctx context.Context, userID string) ([]domain.WritingSubm, error) {
	log := logger.FromContext(ctx)
	log.Debug("querying dynamodb for writing submissions", "table", r.table, "user_id", userID)

	input, err := r.listQuery(userID)
	if err != nil {
		return nil, err
	}

	subms := []domain.WritingSubm{}
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query writing submissions: %w", err)
		}
		for _, item := range page.Items {
			var row submRow
			if err := attributevalue.UnmarshalMap(item, &row); err != nil {
				return nil, fmt.Errorf("failed to unmarshal writing submission: %w", err)
			}
			s, err := row.toDomain()
			if err != nil {
				return nil, fmt.Errorf("failed to map writing submission: %w", err)
			}
			subms = append(subms, s)
		}
	}

	log.Debug("dynamodb query completed", "count", len(subms))
	return subms, nil
}

func (r *ddbSubmRepo) StoreSubm(ctx context.Context, s domain.WritingSubm) error {
	item, err := attributevalue.MarshalMap(toRow(s))
	if err != nil {
		return fmt.Errorf("failed to marshal writing submission: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put writing submission: %w", err)
	}
	return nil
}

func (r *ddbSubmRepo) Ping(ctx context.Context) error {
	out, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.table),
	})
	if err != nil {
		return fmt.Errorf("failed to describe table %s: %w", r.table, err)
	}
	if out.Table != nil && out.Table.TableStatus != types.TableStatusActive {
		return fmt.Errorf("table %s is %s", r.table, strings.ToLower(string(out.Table.TableStatus)))
	}
	return nil
}
