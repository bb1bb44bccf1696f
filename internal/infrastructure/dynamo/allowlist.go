package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/otp-auth-api/internal/domain"
)

// AllowListRepo provides typed DynamoDB operations for the allow-list table.
// Entries are keyed by mobile number.
type AllowListRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAllowListRepo(client *dynamodb.Client, tableName string) *AllowListRepo {
	return &AllowListRepo{client: client, tableName: tableName}
}

func (r *AllowListRepo) Put(ctx context.Context, e *domain.AllowListEntry) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal allow-list entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AllowListRepo) Get(ctx context.Context, mobile string) (*domain.AllowListEntry, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("mobile", mobile),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("allow-list entry %s: %w", mobile, domain.ErrNotFound)
	}
	var e domain.AllowListEntry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// IsAllowed reports whether a mobile number has an active allow-list entry.
// An absent entry is not an error, just a false answer.
func (r *AllowListRepo) IsAllowed(ctx context.Context, mobile string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("mobile", mobile),
	})
	if err != nil {
		return false, err
	}
	if out.Item == nil {
		return false, nil
	}
	var e domain.AllowListEntry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return false, err
	}
	return e.Active, nil
}

func (r *AllowListRepo) Delete(ctx context.Context, mobile string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("mobile", mobile),
	})
	return err
}

func (r *AllowListRepo) List(ctx context.Context) ([]domain.AllowListEntry, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var entries []domain.AllowListEntry
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
