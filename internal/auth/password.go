package auth

import "golang.org/x/crypto/bcrypt"

// GeneratePasswordHash returns a bcrypt hash of the password. The salt is
// embedded in the returned string, so no separate salt storage is needed.
func GeneratePasswordHash(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

// ComparePasswordHash reports whether password matches the stored hash.
// A mismatch is not an error condition, just false.
func ComparePasswordHash(hashedPassword []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hashedPassword, []byte(password)) == nil
}
