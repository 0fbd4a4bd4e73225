package validator

import (
	"errors"
	"regexp"
)

var (
	ErrContactFieldsRequired = errors.New("All fields are required")
	ErrInvalidEmail          = errors.New("Invalid email address")
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}

// お問い合わせの入力を検証。trim済みの値を渡すこと。
func ValidateContact(name string, email string, subject string, message string) error {
	if name == "" || email == "" || subject == "" || message == "" {
		return ErrContactFieldsRequired
	}
	if !isEmailLike(email) {
		return ErrInvalidEmail
	}
	return nil
}
