package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type UserData struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	HashedPassword string             `json:"-" bson:"password_hash"`
	Role           Role               `json:"role" bson:"role"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updated_at"`
}

// UserUpdate carries the fields of a partial user update; nil fields are left untouched.
type UserUpdate struct {
	Name           *string
	HashedPassword *string
	Role           *Role
}

// UserSummary is the public view of a user embedded in auth responses and booking listings.
type UserSummary struct {
	Id        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Role      Role               `json:"role,omitempty"`
	CreatedAt *time.Time         `json:"createdAt,omitempty"`
}

func (u UserData) Summary() UserSummary {
	return UserSummary{Id: u.Id, Name: u.Name, Email: u.Email, Role: u.Role}
}
