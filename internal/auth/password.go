package auth

import "golang.org/x/crypto/bcrypt"

// HashCost is the fixed bcrypt cost for stored passwords.
const HashCost = 10

// HashPassword hashes a plaintext password using bcrypt with HashCost.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), HashCost)
	return string(b), err
}

// CheckPassword compares a bcrypt hash with a candidate plaintext password.
func CheckPassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
