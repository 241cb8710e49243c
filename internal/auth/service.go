package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quiz-service/internal/session"
	"quiz-service/internal/user"
)

var (
	// ErrInvalidCredentials covers unknown usernames, wrong passwords and
	// inactive accounts alike, so a caller cannot probe which usernames
	// exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotVerified is deliberately distinguishable from
	// ErrInvalidCredentials: the credentials were right, the email step is
	// missing.
	ErrNotVerified = errors.New("account not verified")

	// ErrInvalidInput marks signup data the caller can correct, as opposed
	// to store failures. Handlers map it to a 400 with the wrapped detail.
	ErrInvalidInput = errors.New("invalid input")
)

// dummyHash is a bcrypt hash of an unguessable throwaway value. Authenticate
// verifies against it when the username does not exist, so the missing-user
// path costs a bcrypt comparison just like the wrong-password path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service validates credentials against the user store and manages the
// verification state machine.
type Service struct {
	users user.Store

	// requireVerified gates login on completed email verification.
	requireVerified bool
}

func NewService(users user.Store, requireVerified bool) *Service {
	return &Service{
		users:           users,
		requireVerified: requireVerified,
	}
}

// Register creates a new user with the default role. Duplicate usernames or
// emails surface as user.ErrConflict from the store's uniqueness constraints;
// there is no check-then-insert window.
func (s *Service) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", ErrInvalidInput)
	}
	if strings.Contains(username, session.Delimiter) {
		return nil, fmt.Errorf("%w: username must not contain %q", ErrInvalidInput, session.Delimiter)
	}

	hash, err := HashPassword(password)
	if err != nil {
		// bcrypt only rejects caller-supplied material (empty or oversized)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	u := &user.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		Active:       true,
		Verified:     false,
		Role:         user.RoleUser,
	}

	return s.users.Create(ctx, u)
}

// Authenticate validates a username/password pair and returns the matching
// user. All failure modes except the unverified policy collapse into
// ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// burn the same time as a real comparison
			VerifyPassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if !u.Active {
		return nil, ErrInvalidCredentials
	}

	if s.requireVerified && !u.Verified {
		return nil, ErrNotVerified
	}

	return u, nil
}

// MarkVerified moves a user to the verified state. Verified is terminal, so
// repeating the call is a no-op that still succeeds.
func (s *Service) MarkVerified(ctx context.Context, username string) (*user.User, error) {
	return s.users.MarkVerified(ctx, username)
}
