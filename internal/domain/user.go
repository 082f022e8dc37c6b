package domain

import "time"

// User is an authenticated identity. PasswordHash arrives pre-hashed from the
// signup flow; the identity provider never sees the raw password.
type User struct {
	UserID         string    `json:"id" dynamodbav:"user_id"`
	Email          string    `json:"email" dynamodbav:"email"`
	PasswordHash   string    `json:"-" dynamodbav:"password_hash"`
	EmailConfirmed bool      `json:"email_confirmed" dynamodbav:"email_confirmed"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
}
