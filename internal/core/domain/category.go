package domain

import "time"

// Category is the canonical category record persisted by the backend.
type Category struct {
	ID           int       `json:"category_id" bson:"category_id" validate:"-"`
	Name         string    `json:"name" bson:"name" validate:"required,max=30"`
	CreationDate time.Time `json:"creation_date" bson:"creation_date"`
}

// CategoryDto is the view record returned by the backend's list endpoint.
type CategoryDto struct {
	Category  `bson:",inline"`
	PostCount int `json:"post_count" bson:"post_count"`
}
