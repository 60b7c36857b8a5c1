package service

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListMarksAllRead(t *testing.T) {
	userID := primitive.NewObjectID()
	repo := noopNotificationRepo()
	repo.listFn = func(context.Context, primitive.ObjectID) ([]models.Notification, error) {
		return []models.Notification{{To: userID, Type: models.NotificationTypeFollow}}, nil
	}
	marked := false
	repo.markAllReadFn = func(_ context.Context, to primitive.ObjectID) error {
		if to != userID {
			t.Fatalf("marked wrong recipient %s", to.Hex())
		}
		marked = true
		return nil
	}
	svc := NewNotificationService(repo, nil)

	list, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one notification, got %d", len(list))
	}
	if !marked {
		t.Fatal("listing must mark all notifications read")
	}
}

func TestDeleteOneForbiddenForOtherRecipient(t *testing.T) {
	recipientID := primitive.NewObjectID()
	notifID := primitive.NewObjectID()

	repo := noopNotificationRepo()
	repo.getByIDFn = func(context.Context, primitive.ObjectID) (*models.Notification, error) {
		return &models.Notification{ID: notifID, To: recipientID}, nil
	}
	deleted := false
	repo.deleteFn = func(context.Context, primitive.ObjectID) error {
		deleted = true
		return nil
	}
	svc := NewNotificationService(repo, nil)

	err := svc.DeleteOne(context.Background(), primitive.NewObjectID(), notifID)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
	if deleted {
		t.Fatal("notification must not be deleted")
	}
}

func TestDeleteOneByRecipient(t *testing.T) {
	recipientID := primitive.NewObjectID()
	notifID := primitive.NewObjectID()

	repo := noopNotificationRepo()
	repo.getByIDFn = func(context.Context, primitive.ObjectID) (*models.Notification, error) {
		return &models.Notification{ID: notifID, To: recipientID}, nil
	}
	deleted := false
	repo.deleteFn = func(context.Context, primitive.ObjectID) error {
		deleted = true
		return nil
	}
	svc := NewNotificationService(repo, nil)

	if err := svc.DeleteOne(context.Background(), recipientID, notifID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("notification should be deleted")
	}
}

func TestDeleteOneMissing(t *testing.T) {
	repo := noopNotificationRepo()
	repo.getByIDFn = func(_ context.Context, id primitive.ObjectID) (*models.Notification, error) {
		return nil, models.NewNotFoundError("Notification", id.Hex())
	}
	svc := NewNotificationService(repo, nil)

	err := svc.DeleteOne(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}

func TestEmitInsertsNotification(t *testing.T) {
	repo := noopNotificationRepo()
	svc := NewNotificationService(repo, nil)

	from := primitive.NewObjectID()
	to := primitive.NewObjectID()
	n, err := svc.Emit(context.Background(), from, to, models.NotificationTypeLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.From != from || n.To != to || n.Type != models.NotificationTypeLike {
		t.Fatalf("unexpected notification %+v", n)
	}
	if n.Read {
		t.Fatal("new notifications default to unread")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
}
