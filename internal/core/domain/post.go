package domain

import "time"

// Post is the canonical post record persisted by the backend.
// Field order matters to validation: the first failing field is the one
// reported, matching the order the checks are presented to the user.
type Post struct {
	ID           int       `json:"post_id" bson:"post_id" validate:"-"`
	UserID       int       `json:"user_id" bson:"user_id" validate:"required"`
	CategoryID   int       `json:"category_id" bson:"category_id" validate:"required"`
	Title        string    `json:"title" bson:"title" validate:"required,max=50"`
	Content      string    `json:"content" bson:"content" validate:"required"`
	ViewCount    int       `json:"view_count" bson:"view_count"`
	CreationDate time.Time `json:"creation_date" bson:"creation_date"`
	IsPublished  bool      `json:"is_published" bson:"is_published"`
}

// PostDto is the view record returned by the backend's list endpoint.
// Username and CategoryName are denormalized copies of the author's and
// category's display names; CommentCount is a server-computed aggregate.
type PostDto struct {
	Post         `bson:",inline"`
	Username     string `json:"username" bson:"username"`
	CategoryName string `json:"category_name" bson:"category_name"`
	CommentCount int    `json:"comment_count" bson:"comment_count"`
}
