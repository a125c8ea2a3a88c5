package user

import (
	"errors"
	"regexp"
)

// User is the persisted credential record. Password holds a bcrypt hash,
// never plaintext
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

var (
	// ErrNotFound is returned when no user matches, or credentials don't verify
	ErrNotFound = errors.New("user not found")
	// ErrExists is returned when the email is already registered
	ErrExists = errors.New("email already exists")
	// ErrWeakPassword is returned when the password fails the acceptance policy
	ErrWeakPassword = errors.New("password must be at least 8 characters and contain upper/lowercase, a digit, and a special character")
)

var (
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*]`)
)

// ValidatePassword enforces the signup password policy: at least 8
// characters with one lowercase letter, one uppercase letter, one digit,
// and one character from !@#$%^&*
func ValidatePassword(password string) error {
	if len(password) < 8 ||
		!lowerPattern.MatchString(password) ||
		!upperPattern.MatchString(password) ||
		!digitPattern.MatchString(password) ||
		!specialPattern.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}
