package repository

import (
	"context"
	"errors"

	"mercadopago_integration/internal/domain/entities"
	"mercadopago_integration/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultNotificationsTableName = "notifications"

var ErrMissingReceiptID = errors.New("notification receipt id is required")

type notificationItem struct {
	ID          string `dynamodbav:"id"`
	ReceivedAt  string `dynamodbav:"received_at"`
	NotifyID    string `dynamodbav:"notification_id,omitempty"`
	Action      string `dynamodbav:"action,omitempty"`
	Type        string `dynamodbav:"type,omitempty"`
	APIVersion  string `dynamodbav:"api_version,omitempty"`
	DataID      string `dynamodbav:"data_id,omitempty"`
	UserID      string `dynamodbav:"user_id,omitempty"`
	LiveMode    bool   `dynamodbav:"live_mode"`
	DateCreated string `dynamodbav:"date_created,omitempty"`
	Raw         string `dynamodbav:"raw,omitempty"`
}

// PutItemAPI is the slice of the DynamoDB client the repository needs.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// NotificationDynamoRepository appends webhook receipts to DynamoDB.
//
// Table requirements:
//   - PK: id (string, the receipt id)
type NotificationDynamoRepository struct {
	ddb       PutItemAPI
	tableName string
}

var _ interfaces.INotificationRepository = (*NotificationDynamoRepository)(nil)

func NewNotificationDynamoRepository(ddb PutItemAPI, tableName string) *NotificationDynamoRepository {
	if tableName == "" {
		tableName = defaultNotificationsTableName
	}
	return &NotificationDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *NotificationDynamoRepository) Save(ctx context.Context, n entities.Notification) error {
	if n.ReceiptID == "" {
		return ErrMissingReceiptID
	}

	av, err := attributevalue.MarshalMap(toNotificationItem(n))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

func toNotificationItem(n entities.Notification) notificationItem {
	return notificationItem{
		ID:          n.ReceiptID,
		ReceivedAt:  formatTime(n.ReceivedAt),
		NotifyID:    n.ID,
		Action:      n.Action,
		Type:        n.Type,
		APIVersion:  n.APIVersion,
		DataID:      n.DataID,
		UserID:      n.UserID,
		LiveMode:    n.LiveMode,
		DateCreated: n.DateCreated,
		Raw:         string(n.Raw),
	}
}
