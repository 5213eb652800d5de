package services

import "time"

type Service struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description" json:"description"`
	Icon        string    `bson:"icon,omitempty" json:"icon,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type UpsertRequest struct {
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required,slug"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon"`
}
