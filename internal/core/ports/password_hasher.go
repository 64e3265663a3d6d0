package ports

// PasswordHasher hashes and verifies passwords with a per-call salt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify never fails on a malformed hash; it reports false instead.
	Verify(password, hash string) bool
}
