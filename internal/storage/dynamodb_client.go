package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"textkeeper/internal/domain/document"
	textkeeper_errors "textkeeper/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item layout: the partition key "pk" is "<collection>#<id>", "collection"
// and "doc_id" are stored alongside so FindOne can filter by collection.
// Every other attribute is a document field.
const (
	attrPK         = "pk"
	attrCollection = "collection"
	attrDocID      = "doc_id"
)

type DynamoDBConfig struct {
	Region    string
	Table     string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// DynamoDBAPI is the subset of *dynamodb.Client used by the store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoDBStore keeps documents as items of a single DynamoDB table.
type DynamoDBStore struct {
	api   DynamoDBAPI
	table string
}

func NewDynamoDBClient(ctx context.Context, cfg DynamoDBConfig) (*dynamodb.Client, error) {
	if cfg.Region == "" || cfg.Table == "" {
		return nil, errors.New("dynamodb region and table are required")
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func NewDynamoDBStore(api DynamoDBAPI, table string) *DynamoDBStore {
	return &DynamoDBStore{api: api, table: table}
}

func partitionKey(collection, id string) string {
	return collection + "#" + id
}

func (s *DynamoDBStore) key(collection, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: partitionKey(collection, id)},
	}
}

func (s *DynamoDBStore) Get(ctx context.Context, collection, id string) (document.Fields, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(collection, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, textkeeper_errors.ErrNotFound
	}
	return itemFields(out.Item)
}

func (s *DynamoDBStore) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	item, err := attributevalue.MarshalMap(map[string]string(fields))
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	item[attrPK] = &types.AttributeValueMemberS{Value: partitionKey(collection, id)}
	item[attrCollection] = &types.AttributeValueMemberS{Value: collection}
	item[attrDocID] = &types.AttributeValueMemberS{Value: id}

	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return err
}

func (s *DynamoDBStore) Merge(ctx context.Context, collection, id string, fields document.Fields) error {
	_, err := s.api.UpdateItem(ctx, s.updateInput(collection, id, fields, false))
	return err
}

func (s *DynamoDBStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	_, err := s.api.UpdateItem(ctx, s.updateInput(collection, id, fields, true))
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return textkeeper_errors.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *DynamoDBStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(collection, id),
	})
	return err
}

// FindOne scans the table with a filter. Scan order is unspecified, so the
// smallest matching id wins.
func (s *DynamoDBStore) FindOne(ctx context.Context, collection, field, value string) (string, document.Fields, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.table),
		FilterExpression: aws.String("#c = :c AND #f = :v"),
		ExpressionAttributeNames: map[string]string{
			"#c": attrCollection,
			"#f": field,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: collection},
			":v": &types.AttributeValueMemberS{Value: value},
		},
		ConsistentRead: aws.Bool(true),
	}

	var matches []map[string]types.AttributeValue
	paginator := dynamodb.NewScanPaginator(s.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return "", nil, err
		}
		matches = append(matches, page.Items...)
	}
	if len(matches) == 0 {
		return "", nil, textkeeper_errors.ErrNotFound
	}

	sort.Slice(matches, func(i, j int) bool {
		return stringAttr(matches[i], attrDocID) < stringAttr(matches[j], attrDocID)
	})
	first := matches[0]
	fields, err := itemFields(first)
	if err != nil {
		return "", nil, err
	}
	return stringAttr(first, attrDocID), fields, nil
}

func (s *DynamoDBStore) Ping(ctx context.Context) error {
	_, err := s.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	return err
}

func (s *DynamoDBStore) updateInput(collection, id string, fields document.Fields, mustExist bool) *dynamodb.UpdateItemInput {
	names := map[string]string{
		"#c":  attrCollection,
		"#id": attrDocID,
	}
	values := map[string]types.AttributeValue{
		":c":  &types.AttributeValueMemberS{Value: collection},
		":id": &types.AttributeValueMemberS{Value: id},
	}
	expr := "SET #c = :c, #id = :id"

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		name := fmt.Sprintf("#f%d", i)
		placeholder := fmt.Sprintf(":f%d", i)
		names[name] = k
		values[placeholder] = &types.AttributeValueMemberS{Value: fields[k]}
		expr += fmt.Sprintf(", %s = %s", name, placeholder)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       s.key(collection, id),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	if mustExist {
		names["#pk"] = attrPK
		input.ConditionExpression = aws.String("attribute_exists(#pk)")
	}
	return input
}

func itemFields(item map[string]types.AttributeValue) (document.Fields, error) {
	fields := map[string]string{}
	for k, v := range item {
		if k == attrPK || k == attrCollection || k == attrDocID {
			continue
		}
		var value string
		if err := attributevalue.Unmarshal(v, &value); err != nil {
			return nil, fmt.Errorf("unmarshal attribute %q: %w", k, err)
		}
		fields[k] = value
	}
	return document.Fields(fields), nil
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
