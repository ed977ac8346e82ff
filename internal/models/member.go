package models

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a registered user account. Identity fields are
// immutable once created; the member directory owns this record.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Username is the unique handle used in the member directory.
	Username string

	// DisplayName is the human-readable name shown in groups.
	DisplayName string

	// Email is the login address (unique).
	Email string

	// AvatarURL is an optional profile picture location.
	AvatarURL string

	// PasswordHash is the bcrypt hash used by the password authenticator.
	// Never serialized to the API.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewMember builds a member with a fresh ID and creation timestamp.
func NewMember(email, username, displayName, passwordHash string) *Member {
	return &Member{
		ID:           uuid.New().String(),
		Username:     username,
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
