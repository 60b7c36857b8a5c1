// Package service contains the business logic between the HTTP handlers and
// the repositories.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService emits and manages notifications. Emission is a pure
// insert: no dedup, no rate limiting, no delivery guarantee beyond the
// document write. The Redis fanout that follows the write is best-effort.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	notifier         *notifications.Notifier
}

// NewNotificationService returns a new NotificationService. notifier may be
// nil when Redis is unavailable.
func NewNotificationService(notificationRepo repository.NotificationRepository, notifier *notifications.Notifier) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

// Emit inserts a notification from one user to another.
func (s *NotificationService) Emit(ctx context.Context, from, to primitive.ObjectID, typ models.NotificationType) (*models.Notification, error) {
	n := &models.Notification{
		From: from,
		To:   to,
		Type: typ,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.notifier.PublishNotification(ctx, n)
	return n, nil
}

// List returns the user's notifications newest-first and, as an observable
// side effect, marks all of them read.
func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	list, err := s.notificationRepo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteAll removes every notification addressed to the user.
func (s *NotificationService) DeleteAll(ctx context.Context, userID primitive.ObjectID) error {
	return s.notificationRepo.DeleteAllForRecipient(ctx, userID)
}

// DeleteOne removes a single notification. Only the recipient may delete it.
func (s *NotificationService) DeleteOne(ctx context.Context, userID, notificationID primitive.ObjectID) error {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if n.To != userID {
		return models.NewForbiddenError("You are not allowed to delete this notification")
	}

	return s.notificationRepo.Delete(ctx, notificationID)
}
