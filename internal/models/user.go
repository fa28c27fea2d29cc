package models

import "time"

// User represents a registered user account.
type User struct {
	// Username is the unique, case-sensitive login name.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64

	// Groups lists the IDs of the groups the user is a member of.
	// It is filled from group membership when the user is read and is never
	// written on its own.
	Groups []string
}

// NewUser creates a user with the given username and password hash.
func NewUser(username, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
