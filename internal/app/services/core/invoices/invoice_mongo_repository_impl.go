package invoices

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

type InvoiceMongoRepository struct {
	Collection *mongo.Collection
}

func NewInvoiceMongoRepository(db *mongo.Client, dbName string) contracts.InvoiceRepository {
	return &InvoiceMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionInvoices),
	}
}

func (r *InvoiceMongoRepository) Insert(ctx context.Context, invoice *models.Invoice) (string, error) {
	result, err := r.Collection.InsertOne(ctx, invoice)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *InvoiceMongoRepository) FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	objectID, err := primitive.ObjectIDFromHex(invoiceID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var invoice models.Invoice
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &invoice, nil
}

func (r *InvoiceMongoRepository) FindByBookingID(ctx context.Context, bookingID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.Collection.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &invoice, nil
}

func (r *InvoiceMongoRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	objectID, err := primitive.ObjectIDFromHex(invoice.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	doc, err := utils.ToBsonSet(invoice)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": doc}, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *InvoiceMongoRepository) FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Invoice, int, error) {
	query := bson.M{}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "issued_at", Value: -1}}).
		SetSkip(int64((pagination.Page - 1) * pagination.PageSize)).
		SetLimit(int64(pagination.PageSize))

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	invoices := make([]models.Invoice, 0, pagination.PageSize)
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return invoices, int(total), nil
}

// CountIssuedSince feeds the monthly sequence in invoice numbers.
func (r *InvoiceMongoRepository) CountIssuedSince(ctx context.Context, monthStart int64) (int64, error) {
	filter := bson.M{"issued_at": bson.M{"$gte": time.Unix(monthStart, 0).UTC()}}

	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}
