package auth

// Authorize reports whether the identity's role satisfies the required role.
// Roles are flat capability labels compared for exact equality: "admin" does
// not implicitly satisfy a check that requires "user".
func Authorize(id Identity, required string) bool {
	return id.Role == required
}
