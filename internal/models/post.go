package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a text post stored in MongoDB
type Post struct {
	ID     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Text   string             `json:"text" bson:"text"`
	Name   string             `json:"name" bson:"name"`      // Author display name at the time of posting
	UserID uint               `json:"userId" bson:"user_id"` // ID of the user who created the post
	Likes  []Like             `json:"likes" bson:"likes"`    // Most recent first
	Date   time.Time          `json:"date" bson:"date"`
}

// OwnerID returns the id of the user who created the post
func (p *Post) OwnerID() uint {
	return p.UserID
}

// Like is one entry of a post's like set
type Like struct {
	User uint      `json:"user" bson:"user"`
	Date time.Time `json:"date" bson:"date"`
}

// HasLike reports whether userID is present in the like set
func (p *Post) HasLike(userID uint) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text string `json:"text" validate:"required" msg:"Text is required"`
}
