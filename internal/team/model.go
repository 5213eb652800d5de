package team

import "time"

// Profile is the public face of a team member. It shares its id with the
// account that backs the member's login.
type Profile struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Email     string    `bson:"email" json:"email"`
	FullName  string    `bson:"full_name" json:"full_name"`
	Role      string    `bson:"role" json:"role"`
	AvatarURL string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role"`
}

type UpdateRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type PasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}
