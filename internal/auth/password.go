package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost factor for stored password hashes
const PasswordCost = 10

// dummyHash is compared against when no account exists, so a lookup miss
// costs about as much as a wrong password
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-account"), PasswordCost)

// HashPassword returns the salted bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck spends the time of one hash comparison without a real hash
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
