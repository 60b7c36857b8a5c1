package service

import (
	"context"

	"ripple/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepoStub struct {
	getByIDFn          func(context.Context, primitive.ObjectID) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateProfileFn    func(context.Context, *models.User) error
	addFollowEdgeFn    func(context.Context, primitive.ObjectID, primitive.ObjectID) error
	removeFollowEdgeFn func(context.Context, primitive.ObjectID, primitive.ObjectID) error
	addLikedPostFn     func(context.Context, primitive.ObjectID, primitive.ObjectID) error
	removeLikedPostFn  func(context.Context, primitive.ObjectID, primitive.ObjectID) error
	sampleExcludingFn  func(context.Context, primitive.ObjectID, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, user *models.User) error {
	return s.updateProfileFn(ctx, user)
}
func (s *userRepoStub) AddFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	return s.addFollowEdgeFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) RemoveFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	return s.removeFollowEdgeFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.addLikedPostFn(ctx, userID, postID)
}
func (s *userRepoStub) RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.removeLikedPostFn(ctx, userID, postID)
}
func (s *userRepoStub) SampleExcluding(ctx context.Context, exclude primitive.ObjectID, size int) ([]models.User, error) {
	return s.sampleExcludingFn(ctx, exclude, size)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(context.Context, primitive.ObjectID) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:           func(context.Context, *models.User) error { return nil },
		updateProfileFn:    func(context.Context, *models.User) error { return nil },
		addFollowEdgeFn:    func(context.Context, primitive.ObjectID, primitive.ObjectID) error { return nil },
		removeFollowEdgeFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) error { return nil },
		addLikedPostFn:     func(context.Context, primitive.ObjectID, primitive.ObjectID) error { return nil },
		removeLikedPostFn:  func(context.Context, primitive.ObjectID, primitive.ObjectID) error { return nil },
		sampleExcludingFn:  func(context.Context, primitive.ObjectID, int) ([]models.User, error) { return nil, nil },
	}
}

type postRepoStub struct {
	getByIDFn     func(context.Context, primitive.ObjectID) (*models.Post, error)
	createFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, primitive.ObjectID) error
	listAllFn     func(context.Context, int, int) ([]models.Post, error)
	listByUserFn  func(context.Context, primitive.ObjectID, int, int) ([]models.Post, error)
	listByUsersFn func(context.Context, []primitive.ObjectID, int, int) ([]models.Post, error)
	listByIDsFn   func(context.Context, []primitive.ObjectID) ([]models.Post, error)
	addLikeFn     func(context.Context, primitive.ObjectID, primitive.ObjectID) error
	removeLikeFn  func(context.Context, primitive.ObjectID, primitive.ObjectID) error
	addCommentFn  func(context.Context, primitive.ObjectID, models.Comment) error
}

func (s *postRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) ListByUsers(ctx context.Context, userIDs []primitive.ObjectID, limit, offset int) ([]models.Post, error) {
	return s.listByUsersFn(ctx, userIDs, limit, offset)
}
func (s *postRepoStub) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	return s.listByIDsFn(ctx, ids)
}
func (s *postRepoStub) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.addLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.removeLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error {
	return s.addCommentFn(ctx, postID, comment)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		getByIDFn: func(context.Context, primitive.ObjectID) (*models.Post, error) { return &models.Post{}, nil },
		createFn:  func(context.Context, *models.Post) error { return nil },
		deleteFn:  func(context.Context, primitive.ObjectID) error { return nil },
		listAllFn: func(context.Context, int, int) ([]models.Post, error) { return nil, nil },
		listByUserFn: func(context.Context, primitive.ObjectID, int, int) ([]models.Post, error) {
			return nil, nil
		},
		listByUsersFn: func(context.Context, []primitive.ObjectID, int, int) ([]models.Post, error) {
			return nil, nil
		},
		listByIDsFn:  func(context.Context, []primitive.ObjectID) ([]models.Post, error) { return nil, nil },
		addLikeFn:    func(context.Context, primitive.ObjectID, primitive.ObjectID) error { return nil },
		removeLikeFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) error { return nil },
		addCommentFn: func(context.Context, primitive.ObjectID, models.Comment) error { return nil },
	}
}

// notificationRepoStub records created notifications in memory so tests can
// assert on emission counts.
type notificationRepoStub struct {
	created []models.Notification

	createFn      func(context.Context, *models.Notification) error
	getByIDFn     func(context.Context, primitive.ObjectID) (*models.Notification, error)
	listFn        func(context.Context, primitive.ObjectID) ([]models.Notification, error)
	markAllReadFn func(context.Context, primitive.ObjectID) error
	deleteFn      func(context.Context, primitive.ObjectID) error
	deleteAllFn   func(context.Context, primitive.ObjectID) error
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	if s.createFn != nil {
		if err := s.createFn(ctx, n); err != nil {
			return err
		}
	}
	n.ID = primitive.NewObjectID()
	s.created = append(s.created, *n)
	return nil
}
func (s *notificationRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	return s.getByIDFn(ctx, id)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, to primitive.ObjectID) ([]models.Notification, error) {
	return s.listFn(ctx, to)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, to primitive.ObjectID) error {
	return s.markAllReadFn(ctx, to)
}
func (s *notificationRepoStub) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteFn(ctx, id)
}
func (s *notificationRepoStub) DeleteAllForRecipient(ctx context.Context, to primitive.ObjectID) error {
	return s.deleteAllFn(ctx, to)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		getByIDFn: func(context.Context, primitive.ObjectID) (*models.Notification, error) {
			return &models.Notification{}, nil
		},
		listFn:        func(context.Context, primitive.ObjectID) ([]models.Notification, error) { return nil, nil },
		markAllReadFn: func(context.Context, primitive.ObjectID) error { return nil },
		deleteFn:      func(context.Context, primitive.ObjectID) error { return nil },
		deleteAllFn:   func(context.Context, primitive.ObjectID) error { return nil },
	}
}

// assetHostStub records uploads and destroys.
type assetHostStub struct {
	uploads   []string
	destroys  []string
	uploadErr error
	uploadURL string
}

func (s *assetHostStub) Upload(_ context.Context, image string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads = append(s.uploads, image)
	if s.uploadURL != "" {
		return s.uploadURL, nil
	}
	return "https://assets.test/" + image, nil
}

func (s *assetHostStub) Destroy(_ context.Context, publicID string) error {
	s.destroys = append(s.destroys, publicID)
	return nil
}
