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

// NotificationRepository defines the interface for notification document operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	ListByRecipient(ctx context.Context, to primitive.ObjectID) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, to primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAllForRecipient(ctx context.Context, to primitive.ObjectID) error
}

type notificationRepository struct {
	col *mongo.Collection
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{col: db.Collection(database.NotificationsCollection)}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return models.NewInternalError(err)
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var n models.Notification
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("Notification", id.Hex())
		}
		return nil, models.NewInternalError(err)
	}
	return &n, nil
}

// ListByRecipient returns all notifications addressed to the user, newest first.
func (r *notificationRepository) ListByRecipient(ctx context.Context, to primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"to": to}, opts)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, to primitive.ObjectID) error {
	_, err := r.col.UpdateMany(ctx, bson.M{"to": to}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("Notification", id.Hex())
	}
	return nil
}

func (r *notificationRepository) DeleteAllForRecipient(ctx context.Context, to primitive.ObjectID) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{"to": to}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
