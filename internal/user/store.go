package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("user: not found")
	ErrConflict = errors.New("user: username or email already taken")
)

// Store owns user records. Uniqueness of usernames and emails is the store's
// responsibility: Create on a duplicate returns ErrConflict no matter how the
// callers interleave.
type Store interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// MarkVerified flips the verified flag. Verified is terminal: there is
	// no operation that clears it.
	MarkVerified(ctx context.Context, username string) (*User, error)

	// UpdatePassword replaces the stored hash, which invalidates every
	// session issued against the previous one.
	UpdatePassword(ctx context.Context, username string, passwordHash string) error
}
