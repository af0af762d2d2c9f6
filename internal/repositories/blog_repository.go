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

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	GetBlogsByOwnerID(ctx context.Context, ownerID uint) ([]models.Blog, error)
	GetAllBlogs(ctx context.Context) ([]models.Blog, error)
	SearchBlogs(ctx context.Context, query string) ([]models.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
}

// MongoBlogRepository implements BlogRepository for MongoDB
type MongoBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoBlogRepository creates a new MongoBlogRepository
func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{collection: db.Collection("blogs")}
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

func (r *MongoBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	blog.ID = primitive.NewObjectID()
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt
	_, err := r.collection.InsertOne(ctx, blog)
	return err
}

func (r *MongoBlogRepository) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var blog models.Blog
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// GetBlogsByOwnerID retrieves one user's blogs, newest first
func (r *MongoBlogRepository) GetBlogsByOwnerID(ctx context.Context, ownerID uint) ([]models.Blog, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

// GetAllBlogs retrieves every blog, newest first. Visibility filtering is
// the caller's job.
func (r *MongoBlogRepository) GetAllBlogs(ctx context.Context) ([]models.Blog, error) {
	return r.find(ctx, bson.M{})
}

// SearchBlogs retrieves blogs whose title or body matches the query
// (case-insensitive substring), newest first
func (r *MongoBlogRepository) SearchBlogs(ctx context.Context, query string) ([]models.Blog, error) {
	pattern := primitive.Regex{Pattern: regexEscape(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"body": pattern},
	}}
	return r.find(ctx, filter)
}

func (r *MongoBlogRepository) DeleteBlog(ctx context.Context, id string) error {
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

func (r *MongoBlogRepository) find(ctx context.Context, filter bson.M) ([]models.Blog, error) {
	cursor, err := r.collection.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err = cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// regexEscape quotes regex metacharacters so user queries match literally
func regexEscape(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x80 {
			for j := 0; j < len(meta); j++ {
				if c == meta[j] {
					out = append(out, '\\')
					break
				}
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
