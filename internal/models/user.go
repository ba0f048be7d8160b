package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles assigned to users. There is no hierarchy: an endpoint either
// requires an exact role or requires none at all.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Claims defines the structure of the JWT claims. Subject carries the
// stringified user id; Email and Role are the only custom claims.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
