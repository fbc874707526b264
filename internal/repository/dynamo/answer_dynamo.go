package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"answerhub/internal/database"
	"answerhub/internal/model"
	"answerhub/internal/repository"
)

// ClientSource yields the shared store handle. *database.Manager satisfies
// it; every repository call goes through it so the handle is established
// lazily and reused for the process lifetime.
type ClientSource interface {
	Client(ctx context.Context) (database.API, error)
}

// AnswerDynamo is a DynamoDB implementation of repository.AnswerRepository.
type AnswerDynamo struct {
	store ClientSource
	table string
}

// NewAnswerDynamo creates a new AnswerDynamo repository.
func NewAnswerDynamo(store ClientSource, table string) *AnswerDynamo {
	return &AnswerDynamo{store: store, table: table}
}

var _ repository.AnswerRepository = (*AnswerDynamo)(nil)

// Create assigns an identifier if absent and writes the item.
func (r *AnswerDynamo) Create(ctx context.Context, a *model.Answer) (*model.Answer, error) {
	cli, err := r.store.Client(ctx)
	if err != nil {
		return nil, err
	}

	stored := *a
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	item, err := attributevalue.MarshalMap(stored)
	if err != nil {
		return nil, fmt.Errorf("marshal answer: %w", err)
	}
	if _, err := cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("put answer: %w", err)
	}
	return &stored, nil
}

// FindByID fetches a single answer by its identifier.
func (r *AnswerDynamo) FindByID(ctx context.Context, id string) (*model.Answer, error) {
	cli, err := r.store.Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       answerKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get answer: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, repository.ErrNotFound
	}

	var a model.Answer
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("unmarshal answer: %w", err)
	}
	return &a, nil
}

// List scans the full table and orders by uploadDate descending.
// The collection is small and unpaginated by design, so a scan with an
// in-memory sort replaces a query against a sort key.
func (r *AnswerDynamo) List(ctx context.Context) ([]model.Answer, error) {
	cli, err := r.store.Client(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]model.Answer, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := cli.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan answers: %w", err)
		}

		var page []model.Answer
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		items = append(items, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	// Plain string comparison, not a chronological sort.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UploadDate > items[j].UploadDate
	})
	return items, nil
}

// Delete removes an answer by identifier. Deleting a missing item is not an
// error.
func (r *AnswerDynamo) Delete(ctx context.Context, id string) error {
	cli, err := r.store.Client(ctx)
	if err != nil {
		return err
	}

	if _, err := cli.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       answerKey(id),
	}); err != nil {
		return fmt.Errorf("delete answer: %w", err)
	}
	return nil
}

func answerKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
