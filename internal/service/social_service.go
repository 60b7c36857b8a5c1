package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FollowResult reports which branch a follow toggle took. TargetID is echoed
// back so clients can update their state without a refetch.
type FollowResult struct {
	TargetID  primitive.ObjectID `json:"target_id"`
	Following bool               `json:"following"`
}

// SocialService applies follow/unfollow toggles across the denormalized
// follow edge (actor.following and target.followers).
type SocialService struct {
	userRepo        repository.UserRepository
	notificationSvc *NotificationService
}

// NewSocialService returns a new SocialService.
func NewSocialService(userRepo repository.UserRepository, notificationSvc *NotificationService) *SocialService {
	return &SocialService{
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

// ToggleFollow flips the follow edge from actor to target. Following a user
// emits a follow notification to them; unfollowing emits nothing.
//
// The paired updates and the notification insert are separate writes with no
// transaction around them: a crash mid-sequence can leave an asymmetric edge.
// The individual set updates are idempotent ($addToSet/$pull), so retrying
// the toggle converges rather than duplicating edge entries.
func (s *SocialService) ToggleFollow(ctx context.Context, actorID, targetID primitive.ObjectID) (*FollowResult, error) {
	if actorID == targetID {
		return nil, models.NewInvalidOperationError("You can't follow or unfollow yourself")
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	if actor.IsFollowing(targetID) {
		if err := s.userRepo.RemoveFollowEdge(ctx, actorID, targetID); err != nil {
			return nil, err
		}
		return &FollowResult{TargetID: targetID, Following: false}, nil
	}

	if err := s.userRepo.AddFollowEdge(ctx, actorID, targetID); err != nil {
		return nil, err
	}
	if _, err := s.notificationSvc.Emit(ctx, actorID, targetID, models.NotificationTypeFollow); err != nil {
		return nil, err
	}
	return &FollowResult{TargetID: targetID, Following: true}, nil
}
