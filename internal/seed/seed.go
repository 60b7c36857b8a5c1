// Package seed provides helpers to create demo data for development and
// manual testing. Not intended for production databases.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"ripple/internal/database"
	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is shared by every seeded user so demo logins are easy.
const DefaultPassword = "password123"

// Seeder populates the database with generated users, posts, follow edges
// and engagement.
type Seeder struct {
	db    *mongo.Database
	users repository.UserRepository
	posts repository.PostRepository
	rng   *rand.Rand
}

// NewSeeder returns a Seeder bound to the given database.
func NewSeeder(db *mongo.Database) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:    db,
		users: repository.NewUserRepository(db),
		posts: repository.NewPostRepository(db),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes every document from the seeded collections.
func (s *Seeder) ClearAll(ctx context.Context) error {
	collections := []string{
		database.UsersCollection,
		database.PostsCollection,
		database.NotificationsCollection,
	}
	for _, name := range collections {
		if _, err := s.db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("clearing %s: %w", name, err)
		}
	}
	return nil
}

// SeedUsers creates n users sharing DefaultPassword. The hash is computed
// once with the minimum cost since this is throwaway data.
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:   fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:      gofakeit.Email(),
			Password:   string(hashed),
			FullName:   gofakeit.Name(),
			Bio:        gofakeit.Sentence(8),
			ProfileImg: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := s.users.Create(ctx, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedSocialMesh creates random follow edges between the users. Each user
// follows up to half of the others; self-edges are skipped.
func (s *Seeder) SeedSocialMesh(ctx context.Context, users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	for i := range users {
		follows := s.rng.Intn(len(users)/2 + 1)
		for j := 0; j < follows; j++ {
			target := users[s.rng.Intn(len(users))]
			if target.ID == users[i].ID {
				continue
			}
			if err := s.users.AddFollowEdge(ctx, users[i].ID, target.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedPosts creates n posts attributed to random authors. Roughly a third
// carry an image URL.
func (s *Seeder) SeedPosts(ctx context.Context, users []models.User, n int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute posts to")
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := models.Post{
			UserID: author.ID,
			Text:   gofakeit.Sentence(12),
		}
		if s.rng.Intn(100) < 30 {
			post.Img = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		if err := s.posts.Create(ctx, &post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SeedEngagement adds random likes and comments to the posts. Likes go
// through the same $addToSet path as the API so the likedPosts mirror stays
// consistent.
func (s *Seeder) SeedEngagement(ctx context.Context, users []models.User, posts []models.Post) error {
	for _, post := range posts {
		likers := s.rng.Intn(6)
		for j := 0; j < likers; j++ {
			liker := users[s.rng.Intn(len(users))]
			if err := s.posts.AddLike(ctx, post.ID, liker.ID); err != nil {
				return err
			}
			if err := s.users.AddLikedPost(ctx, liker.ID, post.ID); err != nil {
				return err
			}
		}

		commenters := s.rng.Intn(3)
		for j := 0; j < commenters; j++ {
			commenter := users[s.rng.Intn(len(users))]
			comment := models.Comment{
				UserID:    commenter.ID,
				Text:      gofakeit.Sentence(6),
				CreatedAt: time.Now().UTC(),
			}
			if err := s.posts.AddComment(ctx, post.ID, comment); err != nil {
				return err
			}
		}
	}
	return nil
}
