package domain

import "time"

// User is the canonical user record persisted by the backend.
type User struct {
	ID           int       `json:"user_id" bson:"user_id" validate:"-"`
	Username     string    `json:"username" bson:"username" validate:"required,min=4,max=30"`
	Email        string    `json:"email" bson:"email" validate:"required,min=4,max=70"`
	CreationDate time.Time `json:"creation_date" bson:"creation_date"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
}

// UserDto is the view record returned by the backend's list endpoint. The
// counters are computed server-side at read time and are only guaranteed
// fresh immediately after a full fetch.
type UserDto struct {
	User         `bson:",inline"`
	PostCount    int `json:"post_count" bson:"post_count"`
	CommentCount int `json:"comment_count" bson:"comment_count"`
}
