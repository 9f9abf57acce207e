package bookings

import (
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"
	"edulink-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingMongoRepository struct {
	Collection *mongo.Collection
}

func NewBookingMongoRepository(db *mongo.Client, dbName string) contracts.BookingRepository {
	return &BookingMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBookings),
	}
}

func (r *BookingMongoRepository) Insert(ctx context.Context, booking *models.Booking) (string, error) {
	result, err := r.Collection.InsertOne(ctx, booking)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *BookingMongoRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	objectID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var booking models.Booking
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}

func (r *BookingMongoRepository) Update(ctx context.Context, booking *models.Booking) error {
	objectID, err := primitive.ObjectIDFromHex(booking.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	doc, err := utils.ToBsonSet(booking)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": doc}, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *BookingMongoRepository) FindAll(ctx context.Context, filter *requests.BookingListFilter, pagination *requests.Pagination) ([]models.Booking, int, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Status != "" {
			query["booking_status"] = filter.Status
		}
		if filter.PaymentStatus != "" {
			query["payment_status"] = filter.PaymentStatus
		}
		if filter.SessionID != "" {
			query["session_id"] = filter.SessionID
		}
		if filter.StudentID != "" {
			query["student_id"] = filter.StudentID
		}
		if filter.TutorID != "" {
			query["tutor_id"] = filter.TutorID
		}
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

	bookings := make([]models.Booking, 0, pagination.PageSize)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, int(total), nil
}

func (r *BookingMongoRepository) CountActiveBySessionID(ctx context.Context, sessionID string) (int64, error) {
	filter := bson.M{
		"session_id": sessionID,
		"booking_status": bson.M{"$in": []models.BookingStatus{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
		}},
	}

	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}
