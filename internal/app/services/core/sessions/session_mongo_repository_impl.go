package sessions

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

type SessionMongoRepository struct {
	Collection *mongo.Collection
}

func NewSessionMongoRepository(db *mongo.Client, dbName string) contracts.SessionRepository {
	return &SessionMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSessions),
	}
}

func (r *SessionMongoRepository) Insert(ctx context.Context, session *models.Session) (string, error) {
	result, err := r.Collection.InsertOne(ctx, session)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *SessionMongoRepository) FindByID(ctx context.Context, sessionID string) (*models.Session, error) {
	objectID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var session models.Session
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &session, nil
}

func (r *SessionMongoRepository) Update(ctx context.Context, session *models.Session) error {
	objectID, err := primitive.ObjectIDFromHex(session.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	doc, err := utils.ToBsonSet(session)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": doc}, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *SessionMongoRepository) DeleteByID(ctx context.Context, sessionID string) error {
	objectID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *SessionMongoRepository) FindAll(ctx context.Context, filter *requests.SessionListFilter, pagination *requests.Pagination) ([]models.Session, int, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Status != "" {
			query["status"] = filter.Status
		}
		if filter.TutorID != "" {
			query["tutor_id"] = filter.TutorID
		}
		if filter.Subject != "" {
			query["subject"] = filter.Subject
		}

		dateRange := bson.M{}
		if from, err := time.Parse(time.DateOnly, filter.DateFrom); err == nil {
			dateRange["$gte"] = from
		}
		if to, err := time.Parse(time.DateOnly, filter.DateTo); err == nil {
			dateRange["$lte"] = to.AddDate(0, 0, 1)
		}
		if len(dateRange) > 0 {
			query["scheduled_date"] = dateRange
		}
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_date", Value: 1}}).
		SetSkip(int64((pagination.Page - 1) * pagination.PageSize)).
		SetLimit(int64(pagination.PageSize))

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	sessions := make([]models.Session, 0, pagination.PageSize)
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return sessions, int(total), nil
}
