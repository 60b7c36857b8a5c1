package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType enumerates the events that produce a notification.
type NotificationType string

const (
	// NotificationTypeFollow is emitted when a user gains a follower.
	NotificationTypeFollow NotificationType = "follow"
	// NotificationTypeLike is emitted when a user's post is liked.
	NotificationTypeLike NotificationType = "like"
)

// Notification represents a notification document. It is created only as a
// side effect of a follow or like and is owned by its recipient.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From      primitive.ObjectID `bson:"from" json:"from"`
	To        primitive.ObjectID `bson:"to" json:"to"`
	Type      NotificationType   `bson:"type" json:"type"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
