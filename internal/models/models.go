package models

import "time"

const (
	AccountRoleAdmin = "admin"
)

// Account is the auth identity backing a team member; the matching profile
// shares its id 1:1.
type Account struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type ContactMessage struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	FirstName   string    `bson:"firstName" json:"firstName"`
	LastName    string    `bson:"lastName" json:"lastName"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Company     string    `bson:"company,omitempty" json:"company,omitempty"`
	ProjectType string    `bson:"projectType" json:"projectType"`
	Message     string    `bson:"message" json:"message"`
	Budget      string    `bson:"budget,omitempty" json:"budget,omitempty"`
	Timeframe   string    `bson:"timeframe,omitempty" json:"timeframe,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
