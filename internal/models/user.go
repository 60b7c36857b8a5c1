// Package models contains data structures for the application's domain documents.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document in the users collection.
// Username and Email are backed by unique indexes (see database.EnsureIndexes).
// Following, Followers and LikedPosts are treated as sets: membership is only
// ever changed through $addToSet/$pull so concurrent toggles cannot
// double-append.
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username   string               `bson:"username" json:"username"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	FullName   string               `bson:"fullName" json:"full_name"`
	Bio        string               `bson:"bio,omitempty" json:"bio"`
	Link       string               `bson:"link,omitempty" json:"link"`
	ProfileImg string               `bson:"profileImg,omitempty" json:"profile_img"`
	CoverImg   string               `bson:"coverImg,omitempty" json:"cover_img"`
	Following  []primitive.ObjectID `bson:"following" json:"following"`
	Followers  []primitive.ObjectID `bson:"followers" json:"followers"`
	LikedPosts []primitive.ObjectID `bson:"likedPosts" json:"liked_posts"`
	CreatedAt  time.Time            `bson:"createdAt" json:"created_at"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updated_at"`
}

// IsFollowing reports whether the user's following set contains id.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}

// Sanitize clears credential fields before the user is serialized into a response.
func (u *User) Sanitize() *User {
	u.Password = ""
	return u
}
