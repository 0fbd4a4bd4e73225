package validator

import (
	"errors"
	"strings"
)

var (
	// ログイン入力不足
	ErrLoginFieldsRequired = errors.New("Username and password are required")

	// ユーザー作成の入力不足
	ErrUserFieldsRequired = errors.New("Username, password, and email are required")
)

// ログインの入力を検証
func ValidateLogin(username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrLoginFieldsRequired
	}
	return nil
}

// 管理者によるユーザー作成の入力を検証
func ValidateCreateUser(username string, password string, email string) error {
	if strings.TrimSpace(username) == "" || password == "" || strings.TrimSpace(email) == "" {
		return ErrUserFieldsRequired
	}
	return nil
}
