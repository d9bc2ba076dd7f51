package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rankshow/GetBackFiles/internal/config"
	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/Rankshow/GetBackFiles/internal/core/port"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const partitionKey = "id"

// fileRecordItem is the item stored in the file records table
type fileRecordItem struct {
	ID        string    `dynamodbav:"id"`
	PublicID  string    `dynamodbav:"publicId"`
	CreatedAt time.Time `dynamodbav:"createdAt"`
}

func toItem(record domain.FileRecord) fileRecordItem {
	return fileRecordItem{
		ID:        record.ID.String(),
		PublicID:  record.PublicID,
		CreatedAt: record.CreatedAt.UTC(),
	}
}

// ToDomain converts to domain.FileRecord
func (i *fileRecordItem) ToDomain() (*domain.FileRecord, error) {
	id, err := uuid.Parse(i.ID)
	if err != nil {
		return nil, fmt.Errorf("malformed id %q in file record: %w", i.ID, err)
	}
	return &domain.FileRecord{
		ID:        id,
		PublicID:  i.PublicID,
		CreatedAt: i.CreatedAt,
	}, nil
}

type fileRecordRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewFileRecordRepository creates fileRecordRepository that implements port.FileRecordRepository
func NewFileRecordRepository(client *dynamodb.Client, tableName string) port.FileRecordRepository {
	return &fileRecordRepository{
		client:    client,
		tableName: tableName,
	}
}

// NewClient builds a dynamodb client. Static credentials and a custom endpoint are
// only set when configured, which is how dynamodb-local is reached.
func NewClient(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// EnsureTable creates the table keyed by id when it does not exist yet
func EnsureTable(ctx context.Context, client *dynamodb.Client, tableName string) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to describe table %s: %w", tableName, err)
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(partitionKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(partitionKey), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)}, time.Minute); err != nil {
		return fmt.Errorf("table %s did not become active: %w", tableName, err)
	}
	return nil
}

// Create inserts record. An existing id is rejected with domain.ErrAlreadyExists.
func (r *fileRecordRepository) Create(ctx context.Context, record domain.FileRecord) error {
	item, err := attributevalue.MarshalMap(toItem(record))
	if err != nil {
		return fmt.Errorf("error marshalling file record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": partitionKey,
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("file record %s : %w", record.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("error inserting file record: %w", err)
	}
	return nil
}

// FindByID finds by id
func (r *fileRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			partitionKey: &types.AttributeValueMemberS{Value: id.String()},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting file record: %w", err)
	}

	if out.Item == nil {
		return nil, domain.ErrFileRecordNotFound
	}

	var item fileRecordItem
	if err = attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("error unmarshalling file record: %w", err)
	}

	return item.ToDomain()
}

func (r *fileRecordRepository) Name() string {
	return "FileRecordStore[" + r.tableName + "]"
}

func (r *fileRecordRepository) IsReady(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
	return err
}
