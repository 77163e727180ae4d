package model

import "time"

type User struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Email     string    `bson:"email" json:"email" validate:"required,email"`
	Password  string    `bson:"password" json:"-"` // argon2id hash
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
