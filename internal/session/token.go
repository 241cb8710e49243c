package session

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates the username from the password hash inside an encoded
// claim. Usernames containing it are rejected at encode time; bcrypt hashes
// never contain it.
const Delimiter = ":"

var ErrMalformedClaim = errors.New("session: malformed claim")

// Claim binds a username to the password hash that was current when the
// session was issued. It never leaves the server: the client only holds the
// opaque session ID the claim is stored under. Middleware re-checks the hash
// against the credential store on every request, so changing a password
// invalidates every session issued before the change.
type Claim struct {
	Username     string
	PasswordHash string
}

// Encode serializes the claim for storage. The hash must be the user's
// *stored* hash; re-hashing the plaintext at issue time would produce a
// different salt and a claim that never validates.
func (c Claim) Encode() (string, error) {
	if c.Username == "" || c.PasswordHash == "" {
		return "", ErrMalformedClaim
	}
	if strings.Contains(c.Username, Delimiter) {
		return "", fmt.Errorf("session: username must not contain %q", Delimiter)
	}
	return c.Username + Delimiter + c.PasswordHash, nil
}

// ParseClaim decodes a stored claim. It fails closed: a missing delimiter or
// an empty part is an error, never a partially filled claim.
func ParseClaim(s string) (Claim, error) {
	username, hash, ok := strings.Cut(s, Delimiter)
	if !ok || username == "" || hash == "" {
		return Claim{}, ErrMalformedClaim
	}
	return Claim{Username: username, PasswordHash: hash}, nil
}
