package forum

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

type ForumMongoRepository struct {
	PostCollection  *mongo.Collection
	ReplyCollection *mongo.Collection
}

func NewForumMongoRepository(db *mongo.Client, dbName string) contracts.ForumRepository {
	return &ForumMongoRepository{
		PostCollection:  db.Database(dbName).Collection(constvars.MongoCollectionForumPosts),
		ReplyCollection: db.Database(dbName).Collection(constvars.MongoCollectionForumReplies),
	}
}

func (r *ForumMongoRepository) InsertPost(ctx context.Context, post *models.ForumPost) (string, error) {
	result, err := r.PostCollection.InsertOne(ctx, post)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *ForumMongoRepository) FindPostByID(ctx context.Context, postID string) (*models.ForumPost, error) {
	objectID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var post models.ForumPost
	err = r.PostCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &post, nil
}

func (r *ForumMongoRepository) UpdatePost(ctx context.Context, post *models.ForumPost) error {
	objectID, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	doc, err := utils.ToBsonSet(post)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	_, err = r.PostCollection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": doc}, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *ForumMongoRepository) DeletePostByID(ctx context.Context, postID string) error {
	objectID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	if _, err = r.PostCollection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}

	// Orphaned replies are removed with the post.
	if _, err = r.ReplyCollection.DeleteMany(ctx, bson.M{"post_id": postID}); err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *ForumMongoRepository) FindAllPosts(ctx context.Context, filter *requests.ForumListFilter, pagination *requests.Pagination) ([]models.ForumPost, int, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Search != "" {
			pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
			query["$or"] = []bson.M{
				{"title": pattern},
				{"content": pattern},
			}
		}
		if filter.Tag != "" {
			query["tags"] = filter.Tag
		}
	}

	total, err := r.PostCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((pagination.Page - 1) * pagination.PageSize)).
		SetLimit(int64(pagination.PageSize))

	cursor, err := r.PostCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	posts := make([]models.ForumPost, 0, pagination.PageSize)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return posts, int(total), nil
}

func (r *ForumMongoRepository) InsertReply(ctx context.Context, reply *models.ForumReply) (string, error) {
	result, err := r.ReplyCollection.InsertOne(ctx, reply)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *ForumMongoRepository) FindRepliesByPostID(ctx context.Context, postID string, pagination *requests.Pagination) ([]models.ForumReply, int, error) {
	query := bson.M{"post_id": postID}

	total, err := r.ReplyCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64((pagination.Page - 1) * pagination.PageSize)).
		SetLimit(int64(pagination.PageSize))

	cursor, err := r.ReplyCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	replies := make([]models.ForumReply, 0, pagination.PageSize)
	if err := cursor.All(ctx, &replies); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return replies, int(total), nil
}
