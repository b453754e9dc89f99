package types

import "time"

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user, assigned sequentially.
	ID int `json:"id"`

	// Username is the unique, case-sensitive login name chosen by the user.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the verified subject carried by an auth token.
type Identity struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
}
