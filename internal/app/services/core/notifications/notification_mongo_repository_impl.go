package notifications

import (
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"
	"edulink-service/internal/pkg/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationMongoRepository struct {
	Collection *mongo.Collection
}

func NewNotificationMongoRepository(db *mongo.Client, dbName string) contracts.NotificationRepository {
	return &NotificationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionNotifications),
	}
}

func (r *NotificationMongoRepository) Insert(ctx context.Context, notification *models.Notification) (string, error) {
	result, err := r.Collection.InsertOne(ctx, notification)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *NotificationMongoRepository) FindByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var notification models.Notification
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &notification, nil
}

func (r *NotificationMongoRepository) Update(ctx context.Context, notification *models.Notification) error {
	objectID, err := primitive.ObjectIDFromHex(notification.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	doc, err := utils.ToBsonSet(notification)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": doc}, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *NotificationMongoRepository) FindAllByRecipient(ctx context.Context, recipientID string, unreadOnly bool, pagination *requests.Pagination) ([]models.Notification, int, error) {
	query := bson.M{"recipient_id": recipientID}
	if unreadOnly {
		query["read_at"] = bson.M{"$exists": false}
		query["dismissed_at"] = bson.M{"$exists": false}
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((pagination.Page - 1) * pagination.PageSize)).
		SetLimit(int64(pagination.PageSize))

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0, pagination.PageSize)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return notifications, int(total), nil
}

func (r *NotificationMongoRepository) FindPendingExpired(ctx context.Context, now time.Time) ([]models.Notification, error) {
	filter := bson.M{
		"status":     models.NotificationStatusPending,
		"expires_at": bson.M{"$lt": now},
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return notifications, nil
}
