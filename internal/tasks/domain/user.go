package domain

import "time"

// DefaultProfilePic is the asset reference every new user starts with.
const DefaultProfilePic = "default.jpg"

type User struct {
	ID           string
	Username     string
	Email        string // lower-cased and trimmed
	PasswordHash string // PHC argon2id, never plaintext
	ProfilePic   string // opaque asset reference: a filename or a URL
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
