package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in a post's ordered comment list.
type Comment struct {
	UserID    primitive.ObjectID `bson:"user" json:"user_id"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// Post represents a post document. A post must carry text, an image, or both.
// Likes is a set of user IDs maintained with $addToSet/$pull.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"user" json:"user_id"`
	Text      string               `bson:"text,omitempty" json:"text"`
	Img       string               `bson:"img,omitempty" json:"img"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	CreatedAt time.Time            `bson:"createdAt" json:"created_at"`
}

// IsLikedBy reports whether the post's likes set contains the user id.
func (p *Post) IsLikedBy(id primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l == id {
			return true
		}
	}
	return false
}
