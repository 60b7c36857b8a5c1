package service

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPostService(postRepo *postRepoStub, userRepo *userRepoStub, host *assetHostStub) (*PostService, *notificationRepoStub) {
	notifSvc, notifRepo := newNotificationRecorder()
	if host == nil {
		return NewPostService(postRepo, userRepo, notifSvc, nil), notifRepo
	}
	return NewPostService(postRepo, userRepo, notifSvc, host), notifRepo
}

func TestCreatePostRequiresTextOrImage(t *testing.T) {
	svc, _ := newPostService(noopPostRepo(), noopUserRepo(), nil)

	_, err := svc.CreatePost(context.Background(), primitive.NewObjectID(), "   ", "")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestCreatePostTextOnly(t *testing.T) {
	var created *models.Post
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = primitive.NewObjectID()
		created = p
		return nil
	}
	svc, _ := newPostService(postRepo, noopUserRepo(), nil)

	userID := primitive.NewObjectID()
	post, err := svc.CreatePost(context.Background(), userID, "hello world", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || post.Text != "hello world" || post.UserID != userID {
		t.Fatalf("unexpected post %+v", post)
	}
}

func TestCreatePostUploadsImage(t *testing.T) {
	host := &assetHostStub{uploadURL: "https://assets.test/hosted.png"}
	svc, _ := newPostService(noopPostRepo(), noopUserRepo(), host)

	post, err := svc.CreatePost(context.Background(), primitive.NewObjectID(), "", "data:image/png;base64,xyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Img != "https://assets.test/hosted.png" {
		t.Fatalf("expected hosted URL, got %q", post.Img)
	}
	if len(host.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(host.uploads))
	}
}

func TestDeletePostForbiddenForNonOwner(t *testing.T) {
	ownerID := primitive.NewObjectID()
	postID := primitive.NewObjectID()
	deleted := false

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(context.Context, primitive.ObjectID) (*models.Post, error) {
		return &models.Post{ID: postID, UserID: ownerID, Img: "https://assets.test/keep.png"}, nil
	}
	postRepo.deleteFn = func(context.Context, primitive.ObjectID) error {
		deleted = true
		return nil
	}
	host := &assetHostStub{}
	svc, _ := newPostService(postRepo, noopUserRepo(), host)

	err := svc.DeletePost(context.Background(), primitive.NewObjectID(), postID)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
	if deleted {
		t.Fatal("post must not be deleted")
	}
	if len(host.destroys) != 0 {
		t.Fatal("asset must be untouched")
	}
}

func TestDeletePostDestroysAsset(t *testing.T) {
	ownerID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(context.Context, primitive.ObjectID) (*models.Post, error) {
		return &models.Post{ID: postID, UserID: ownerID, Img: "https://assets.test/v1/abc123.png"}, nil
	}
	host := &assetHostStub{}
	svc, _ := newPostService(postRepo, noopUserRepo(), host)

	if err := svc.DeletePost(context.Background(), ownerID, postID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(host.destroys) != 1 || host.destroys[0] != "abc123" {
		t.Fatalf("expected destroy of abc123, got %v", host.destroys)
	}
}

func TestAddCommentRequiresText(t *testing.T) {
	svc, _ := newPostService(noopPostRepo(), noopUserRepo(), nil)

	_, err := svc.AddComment(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "  ")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestAddCommentAppends(t *testing.T) {
	postID := primitive.NewObjectID()
	authorID := primitive.NewObjectID()
	var appended *models.Comment

	postRepo := noopPostRepo()
	postRepo.addCommentFn = func(_ context.Context, _ primitive.ObjectID, c models.Comment) error {
		appended = &c
		return nil
	}
	svc, _ := newPostService(postRepo, noopUserRepo(), nil)

	if _, err := svc.AddComment(context.Background(), authorID, postID, "nice one"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appended == nil || appended.UserID != authorID || appended.Text != "nice one" {
		t.Fatalf("unexpected comment %+v", appended)
	}
	if appended.CreatedAt.IsZero() {
		t.Fatalf("comment persisted without a creation time")
	}
}

func TestToggleLikeLikeBranchNotifiesOwner(t *testing.T) {
	ownerID := primitive.NewObjectID()
	actorID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(context.Context, primitive.ObjectID) (*models.Post, error) {
		return &models.Post{ID: postID, UserID: ownerID}, nil
	}
	likedPostAdded := false
	userRepo := noopUserRepo()
	userRepo.addLikedPostFn = func(context.Context, primitive.ObjectID, primitive.ObjectID) error {
		likedPostAdded = true
		return nil
	}
	svc, notifRepo := newPostService(postRepo, userRepo, nil)

	res, err := svc.ToggleLike(context.Background(), actorID, postID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Liked || res.PostID != postID {
		t.Fatalf("unexpected result %+v", res)
	}
	if !likedPostAdded {
		t.Fatal("user.likedPosts must gain the post")
	}
	if len(notifRepo.created) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifRepo.created))
	}
	n := notifRepo.created[0]
	if n.Type != models.NotificationTypeLike || n.From != actorID || n.To != ownerID {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestToggleLikeOwnPostSkipsNotification(t *testing.T) {
	ownerID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(context.Context, primitive.ObjectID) (*models.Post, error) {
		return &models.Post{ID: postID, UserID: ownerID}, nil
	}
	svc, notifRepo := newPostService(postRepo, noopUserRepo(), nil)

	res, err := svc.ToggleLike(context.Background(), ownerID, postID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Liked {
		t.Fatal("expected like branch")
	}
	if len(notifRepo.created) != 0 {
		t.Fatalf("self-like must not notify, got %d", len(notifRepo.created))
	}
}

func TestToggleLikeUnlikeBranch(t *testing.T) {
	actorID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(context.Context, primitive.ObjectID) (*models.Post, error) {
		return &models.Post{ID: postID, UserID: primitive.NewObjectID(), Likes: []primitive.ObjectID{actorID}}, nil
	}
	likeRemoved := false
	postRepo.removeLikeFn = func(context.Context, primitive.ObjectID, primitive.ObjectID) error {
		likeRemoved = true
		return nil
	}
	likedPostRemoved := false
	userRepo := noopUserRepo()
	userRepo.removeLikedPostFn = func(context.Context, primitive.ObjectID, primitive.ObjectID) error {
		likedPostRemoved = true
		return nil
	}
	svc, notifRepo := newPostService(postRepo, userRepo, nil)

	res, err := svc.ToggleLike(context.Background(), actorID, postID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Liked {
		t.Fatal("expected unlike branch")
	}
	if !likeRemoved || !likedPostRemoved {
		t.Fatal("both sides of the like must be removed")
	}
	if len(notifRepo.created) != 0 {
		t.Fatalf("unlike must not notify, got %d", len(notifRepo.created))
	}
}

func TestToggleLikePostMissing(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id.Hex())
	}
	svc, _ := newPostService(postRepo, noopUserRepo(), nil)

	_, err := svc.ToggleLike(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}

func TestListByUsernameUnknownUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByUsernameFn = func(context.Context, string) (*models.User, error) { return nil, nil }
	svc, _ := newPostService(noopPostRepo(), userRepo, nil)

	_, err := svc.ListByUsername(context.Background(), "ghost", 10, 0)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}
