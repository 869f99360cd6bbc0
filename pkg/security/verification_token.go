package security

import "github.com/google/uuid"

// NewVerificationToken returns a fresh single-use email verification
// secret. A v4 UUID gives negligible collision probability and enough
// entropy to be unguessable; the store's unique index on the column
// backstops the rest.
func NewVerificationToken() string {
	return uuid.NewString()
}
