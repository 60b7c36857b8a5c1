// Package repository implements data access against the MongoDB collections.
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
)

// UserRepository defines the interface for user document operations.
//
// Follow edges and liked-post membership are mutated exclusively through
// $addToSet/$pull so that concurrent toggles on the same edge stay
// idempotent at the storage layer.
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User) error
	AddFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error
	RemoveFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error
	AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error
	SampleExcluding(ctx context.Context, exclude primitive.ObjectID, size int) ([]models.User, error)
}

type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection(database.UsersCollection)}
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User", id.Hex())
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // Return nil for not found, not an error
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.LikedPosts == nil {
		user.LikedPosts = []primitive.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewConflictError("Username or email is already taken")
		}
		return models.NewInternalError(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"fullName":   user.FullName,
		"email":      user.Email,
		"username":   user.Username,
		"password":   user.Password,
		"bio":        user.Bio,
		"link":       user.Link,
		"profileImg": user.ProfileImg,
		"coverImg":   user.CoverImg,
		"updatedAt":  user.UpdatedAt,
	}}
	res, err := r.col.UpdateByID(ctx, user.ID, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewConflictError("Username or email is already taken")
		}
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("User", user.ID.Hex())
	}
	return nil
}

// AddFollowEdge adds the denormalized edge follower->followee on both user
// documents. The two writes are not transactional; a crash between them
// leaves an asymmetric edge. Retrying the toggle converges.
func (r *userRepository) AddFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	if err := r.updateEdge(ctx, followeeID, bson.M{"$addToSet": bson.M{"followers": followerID}}); err != nil {
		return err
	}
	return r.updateEdge(ctx, followerID, bson.M{"$addToSet": bson.M{"following": followeeID}})
}

// RemoveFollowEdge removes the edge from both user documents.
func (r *userRepository) RemoveFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	if err := r.updateEdge(ctx, followeeID, bson.M{"$pull": bson.M{"followers": followerID}}); err != nil {
		return err
	}
	return r.updateEdge(ctx, followerID, bson.M{"$pull": bson.M{"following": followeeID}})
}

func (r *userRepository) AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateEdge(ctx, userID, bson.M{"$addToSet": bson.M{"likedPosts": postID}})
}

func (r *userRepository) RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateEdge(ctx, userID, bson.M{"$pull": bson.M{"likedPosts": postID}})
}

func (r *userRepository) updateEdge(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("User", id.Hex())
	}
	return nil
}

// SampleExcluding returns a random sample of users other than the given one,
// used for the suggested-users listing.
func (r *userRepository) SampleExcluding(ctx context.Context, exclude primitive.ObjectID, size int) ([]models.User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$ne": exclude}}}},
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
