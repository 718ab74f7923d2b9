package domain

import "time"

// Comment is the canonical comment record persisted by the backend.
type Comment struct {
	ID           int       `json:"comment_id" bson:"comment_id" validate:"-"`
	UserID       int       `json:"user_id" bson:"user_id" validate:"required"`
	PostID       int       `json:"post_id" bson:"post_id" validate:"required"`
	Text         string    `json:"comment" bson:"comment" validate:"required"`
	CreationDate time.Time `json:"creation_date" bson:"creation_date"`
	IsConfirmed  bool      `json:"is_confirmed" bson:"is_confirmed"`
}

// CommentDto is the view record returned by the backend's list endpoint.
type CommentDto struct {
	Comment   `bson:",inline"`
	Username  string `json:"username" bson:"username"`
	PostTitle string `json:"post_title" bson:"post_title"`
}
