package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/mraihan79/inkwell/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetTopLevelByBlogID(ctx context.Context, blogID string) ([]models.Comment, error)
	GetRepliesByParentIDs(ctx context.Context, parentIDs []string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	DeleteByBlogID(ctx context.Context, blogID string) error
	GetIDsByBlogID(ctx context.Context, blogID string) ([]string, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelByBlogID retrieves the blog's comments with no parent, newest
// first
func (r *MongoCommentRepository) GetTopLevelByBlogID(ctx context.Context, blogID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.find(ctx, bson.M{"blog_id": objID, "parent": nil})
}

// GetRepliesByParentIDs retrieves every reply whose parent is in the given
// set, newest first
func (r *MongoCommentRepository) GetRepliesByParentIDs(ctx context.Context, parentIDs []string) ([]models.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	objIDs := make([]primitive.ObjectID, 0, len(parentIDs))
	for _, id := range parentIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrNotFound
		}
		objIDs = append(objIDs, objID)
	}
	return r.find(ctx, bson.M{"parent": bson.M{"$in": objIDs}})
}

func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByBlogID removes every comment of a deleted blog
func (r *MongoCommentRepository) DeleteByBlogID(ctx context.Context, blogID string) error {
	objID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"blog_id": objID})
	return err
}

// GetIDsByBlogID returns the hex ids of all the blog's comments, used to
// cascade comment-like deletion
func (r *MongoCommentRepository) GetIDsByBlogID(ctx context.Context, blogID string) ([]string, error) {
	objID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return nil, ErrNotFound
	}
	comments, err := r.find(ctx, bson.M{"blog_id": objID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.ID.Hex()
	}
	return ids, nil
}

func (r *MongoCommentRepository) find(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
