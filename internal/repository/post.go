package repository

import (
	"context"
	"errors"
	"time"

	"ripple/internal/database"
	"ripple/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post document operations.
type PostRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListAll(ctx context.Context, limit, offset int) ([]models.Post, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]models.Post, error)
	ListByUsers(ctx context.Context, userIDs []primitive.ObjectID, limit, offset int) ([]models.Post, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error
}

type postRepository struct {
	col *mongo.Collection
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{col: db.Collection(database.PostsCollection)}
}

func (r *postRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("Post", id.Hex())
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	post.CreatedAt = time.Now().UTC()
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return models.NewInternalError(err)
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("Post", id.Hex())
	}
	return nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, bson.M{}, limit, offset)
}

func (r *postRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, bson.M{"user": userID}, limit, offset)
}

func (r *postRepository) ListByUsers(ctx context.Context, userIDs []primitive.ObjectID, limit, offset int) ([]models.Post, error) {
	if len(userIDs) == 0 {
		return []models.Post{}, nil
	}
	return r.list(ctx, bson.M{"user": bson.M{"$in": userIDs}}, limit, offset)
}

// ListByIDs returns the posts whose IDs are in ids, newest first. Used for a
// user's liked-posts listing; posts deleted since the like stay silently absent.
func (r *postRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	return r.list(ctx, bson.M{"_id": bson.M{"$in": ids}}, len(ids), 0)
}

func (r *postRepository) list(ctx context.Context, filter bson.M, limit, offset int) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return r.update(ctx, postID, bson.M{"$addToSet": bson.M{"likes": userID}})
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return r.update(ctx, postID, bson.M{"$pull": bson.M{"likes": userID}})
}

// AddComment appends to the post's ordered comment list.
func (r *postRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error {
	return r.update(ctx, postID, bson.M{"$push": bson.M{"comments": comment}})
}

func (r *postRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("Post", id.Hex())
	}
	return nil
}
