package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID                string    `db:"id"`
	Name              string    `db:"name"`
	Email             string    `db:"email"`
	PasswordHash      string    `db:"password_hash"`
	PreferredProvider string    `db:"preferred_provider"`
	Onboarded         bool      `db:"onboarded"`
	CreatedAt         time.Time `db:"created_at"`
}

// Claims defines the structure of the JWT claims.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
