package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ripple/internal/assets"
	"ripple/internal/models"
	"ripple/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeResult reports which branch a like toggle took.
type LikeResult struct {
	PostID primitive.ObjectID `json:"post_id"`
	Liked  bool               `json:"liked"`
}

// PostService provides post creation, deletion, comments and like toggles.
type PostService struct {
	postRepo        repository.PostRepository
	userRepo        repository.UserRepository
	notificationSvc *NotificationService
	assetHost       assets.Host
}

// NewPostService returns a new PostService. assetHost may be nil when no
// asset host is configured; image posts are then rejected.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, notificationSvc *NotificationService, assetHost assets.Host) *PostService {
	return &PostService{
		postRepo:        postRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		assetHost:       assetHost,
	}
}

// CreatePost stores a new post. At least one of text and image is required;
// the image is pushed to the asset host and its hosted URL is persisted.
func (s *PostService) CreatePost(ctx context.Context, userID primitive.ObjectID, text, img string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" && img == "" {
		return nil, models.NewValidationError("Post must have text or an image")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if img != "" {
		if s.assetHost == nil {
			return nil, models.NewValidationError("Image uploads are not enabled")
		}
		url, err := s.assetHost.Upload(ctx, img)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		img = url
	}

	post := &models.Post{
		UserID: userID,
		Text:   text,
		Img:    img,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Only the owner may delete it. When the post
// carried an image, the hosted asset is destroyed fire-and-forget: a failure
// is logged but never blocks the deletion.
func (s *PostService) DeletePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.Img != "" && s.assetHost != nil {
		if err := s.assetHost.Destroy(ctx, assets.PublicIDFromURL(post.Img)); err != nil {
			slog.Warn("post asset destroy failed", "post_id", postID.Hex(), "error", err)
		}
	}
	return nil
}

// AddComment appends a comment to the post's ordered comment list.
func (s *PostService) AddComment(ctx context.Context, userID, postID primitive.ObjectID, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

// ToggleLike flips the actor's like on the post, mirroring membership into
// the actor's likedPosts set. Liking someone else's post emits a like
// notification to the owner; liking your own post does not.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID primitive.ObjectID) (*LikeResult, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.IsLikedBy(userID) {
		if err := s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
			return nil, err
		}
		if err := s.userRepo.RemoveLikedPost(ctx, userID, postID); err != nil {
			return nil, err
		}
		return &LikeResult{PostID: postID, Liked: false}, nil
	}

	if err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddLikedPost(ctx, userID, postID); err != nil {
		return nil, err
	}

	if post.UserID != userID {
		if _, err := s.notificationSvc.Emit(ctx, userID, post.UserID, models.NotificationTypeLike); err != nil {
			return nil, err
		}
	}
	return &LikeResult{PostID: postID, Liked: true}, nil
}

// GetPost returns a single post by id.
func (s *PostService) GetPost(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// ListAll returns all posts, newest first.
func (s *PostService) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.postRepo.ListAll(ctx, limit, offset)
}

// ListByUsername returns the posts of the named user, newest first.
func (s *PostService) ListByUsername(ctx context.Context, username string, limit, offset int) ([]models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return s.postRepo.ListByUser(ctx, user.ID, limit, offset)
}

// ListFollowingFeed returns posts from the users the actor follows.
func (s *PostService) ListFollowingFeed(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByUsers(ctx, user.Following, limit, offset)
}

// ListLiked returns the posts a user has liked.
func (s *PostService) ListLiked(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByIDs(ctx, user.LikedPosts)
}
