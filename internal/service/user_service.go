package service

import (
	"context"
	"log/slog"
	"time"

	"ripple/internal/assets"
	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	profileCacheTTL    = 30 * time.Second
	suggestedPoolSize  = 10
	suggestedListLimit = 4
)

// UpdateProfileInput carries the optional profile fields of an update. Empty
// strings leave the stored value untouched, matching the merge semantics of
// the profile update endpoint.
type UpdateProfileInput struct {
	FullName        string
	Email           string
	Username        string
	Bio             string
	Link            string
	ProfileImg      string
	CoverImg        string
	CurrentPassword string
	NewPassword     string
}

// UserService provides profile reads and updates.
type UserService struct {
	userRepo  repository.UserRepository
	assetHost assets.Host
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, assetHost assets.Host) *UserService {
	return &UserService{
		userRepo:  userRepo,
		assetHost: assetHost,
	}
}

func profileCacheKey(username string) string {
	return "profile:" + username
}

// GetProfile returns a user's public profile by username, served cache-aside
// from Redis with a short TTL.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := cache.CacheAside(ctx, profileCacheKey(username), &user, profileCacheTTL, func() error {
		found, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if found == nil {
			return models.NewNotFoundError("User", username)
		}
		user = *found.Sanitize()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns a user by id with credentials cleared.
func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// SuggestedUsers returns a short random list of users the actor does not
// already follow. The pool comes from the store's random-sample primitive.
func (s *UserService) SuggestedUsers(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.userRepo.SampleExcluding(ctx, userID, suggestedPoolSize)
	if err != nil {
		return nil, err
	}

	suggested := []models.User{}
	for _, candidate := range pool {
		if actor.IsFollowing(candidate.ID) {
			continue
		}
		candidate.Sanitize()
		suggested = append(suggested, candidate)
		if len(suggested) == suggestedListLimit {
			break
		}
	}
	return suggested, nil
}

// UpdateProfile applies a partial profile update. A password change requires
// both the current and the new password; images are replaced on the asset
// host, destroying the previous asset fire-and-forget.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldUsername := user.Username

	if (input.CurrentPassword == "") != (input.NewPassword == "") {
		return nil, models.NewValidationError("Please provide both current password and new password")
	}
	if input.CurrentPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)) != nil {
			return nil, models.NewValidationError("Current password is incorrect")
		}
		if err := validation.ValidatePassword(input.NewPassword); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if input.Username != "" && input.Username != user.Username {
		if err := validation.ValidateUsername(input.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = input.Username
	}
	if input.Email != "" && input.Email != user.Email {
		if err := validation.ValidateEmail(input.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = input.Email
	}

	if input.ProfileImg != "" {
		url, err := s.replaceImage(ctx, user.ProfileImg, input.ProfileImg)
		if err != nil {
			return nil, err
		}
		user.ProfileImg = url
	}
	if input.CoverImg != "" {
		url, err := s.replaceImage(ctx, user.CoverImg, input.CoverImg)
		if err != nil {
			return nil, err
		}
		user.CoverImg = url
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Link != "" {
		user.Link = input.Link
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, profileCacheKey(oldUsername), profileCacheKey(user.Username))
	return user.Sanitize(), nil
}

// replaceImage uploads the new image and destroys the previous asset.
// Destroy failures are logged, never fatal.
func (s *UserService) replaceImage(ctx context.Context, oldURL, newImage string) (string, error) {
	if s.assetHost == nil {
		return "", models.NewValidationError("Image uploads are not enabled")
	}

	if oldURL != "" {
		if err := s.assetHost.Destroy(ctx, assets.PublicIDFromURL(oldURL)); err != nil {
			slog.Warn("profile asset destroy failed", "url", oldURL, "error", err)
		}
	}

	url, err := s.assetHost.Upload(ctx, newImage)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return url, nil
}
