// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tomtom215/discodeck/internal/models"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// dynamoSnapshot is the stored item: key attributes plus the snapshot.
type dynamoSnapshot struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	models.Snapshot
}

// DynamoStore keeps one item per deck.
type DynamoStore struct {
	client DynamoAPI
	table  string
}

// NewDynamoStore wraps an existing client.
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// OpenDynamoStore loads AWS configuration from the environment and creates
// a client. A non-empty endpoint targets DynamoDB Local or a compatible
// service.
func OpenDynamoStore(ctx context.Context, table, region, endpoint string) (*DynamoStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return NewDynamoStore(client, table), nil
}

func dynamoKey(key models.SessionKey) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "USER#" + key.UserID},
		"SK": &types.AttributeValueMemberS{Value: "CATEGORY#" + key.Category},
	}
}

// ReadSnapshot implements SnapshotStore.
func (d *DynamoStore) ReadSnapshot(ctx context.Context, key models.SessionKey) (*models.Snapshot, error) {
	result, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		Key:            dynamoKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get deck item: %w", err)
	}
	if result.Item == nil {
		return nil, ErrSnapshotNotFound
	}

	var item dynamoSnapshot
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal deck item: %w", err)
	}
	return &item.Snapshot, nil
}

// CreateSnapshot implements SnapshotStore.
func (d *DynamoStore) CreateSnapshot(ctx context.Context, key models.SessionKey, buffer []string) error {
	item := dynamoSnapshot{
		PK:       "USER#" + key.UserID,
		SK:       "CATEGORY#" + key.Category,
		Snapshot: *newSnapshot(buffer),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal deck item: %w", err)
	}

	if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("put deck item: %w", err)
	}
	return nil
}

// WriteDeckAndUsed implements SnapshotStore.
func (d *DynamoStore) WriteDeckAndUsed(ctx context.Context, key models.SessionKey, u models.DeckUpdate) error {
	update := expression.Set(expression.Name("artists"), expression.Value(nonNil(u.Artists))).
		Set(expression.Name("used"), expression.Value(nonNil(u.Used))).
		Set(expression.Name("child_refs"), expression.Value(nonNil(u.ChildRefs))).
		Set(expression.Name("liked_count"), expression.Value(u.LikedCount))
	return d.update(ctx, "write deck", key, expression.NewBuilder().WithUpdate(update))
}

// WriteOnRemoval implements SnapshotStore.
func (d *DynamoStore) WriteOnRemoval(ctx context.Context, key models.SessionKey, u models.LeaveUpdate) error {
	update := expression.Set(expression.Name("visited"), expression.Value(nonNil(u.Visited))).
		Set(expression.Name("artists"), expression.Value(nonNil(u.Artists)))
	return d.update(ctx, "write removal", key, expression.NewBuilder().WithUpdate(update))
}

// WriteLikedMarker appends to the liked list unless the id is already there.
func (d *DynamoStore) WriteLikedMarker(ctx context.Context, key models.SessionKey, m models.LikedMarker) error {
	liked := expression.Name("liked")
	update := expression.Set(liked, expression.ListAppend(
		expression.IfNotExists(liked, expression.Value([]string{})),
		expression.Value([]string{m.ArtistID}),
	))
	cond := expression.Not(expression.Contains(liked, m.ArtistID))

	err := d.update(ctx, "write liked", key, expression.NewBuilder().WithUpdate(update).WithCondition(cond))
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return nil
	}
	return err
}

// Name implements SnapshotStore.
func (d *DynamoStore) Name() string { return "dynamodb" }

// Close implements SnapshotStore.
func (d *DynamoStore) Close() error { return nil }

func (d *DynamoStore) update(ctx context.Context, op string, key models.SessionKey, builder expression.Builder) error {
	expr, err := builder.Build()
	if err != nil {
		return fmt.Errorf("%s: build expression: %w", op, err)
	}

	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.table),
		Key:                       dynamoKey(key),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// nonNil keeps empty slices as empty lists instead of NULL attributes.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
