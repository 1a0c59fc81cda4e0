// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the document store identifier, hex encoded.
	ID string `bson:"-" json:"id"`

	// Username is unique across all users.
	Username string `bson:"username" json:"username"`

	// Email is unique across all users.
	Email string `bson:"email" json:"email"`

	// PasswordHash is the bcrypt hash of the password. Plaintext is never
	// stored.
	PasswordHash string `bson:"password_hash" json:"-"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
