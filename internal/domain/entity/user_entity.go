package entity

import (
	"time"
)

// User is an account of the planning app.
// Passwords are stored as bcrypt hashes in Password field and never serialized.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	FirstName string    `json:"firstName" bson:"firstName"`
	LastName  string    `json:"lastName" bson:"lastName"`
	UserName  string    `json:"userName" bson:"userName"`
	IsAdmin   bool      `json:"isAdmin" bson:"isAdmin"`
	Password  string    `json:"-" bson:"password"`
	Date      time.Time `json:"date" bson:"date"`
}
