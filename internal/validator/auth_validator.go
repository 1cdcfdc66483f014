package validator

import (
	"regexp"
	"strings"

	"shoestore/internal/domain/apperr"
)

// 登録/ログイン入力の正準ルール。パスワード最低文字数は8に統一。
type AuthValidator struct{}

func NewAuthValidator() *AuthValidator {
	return &AuthValidator{}
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{9,11}$`)
)

func (v *AuthValidator) ValidateRegister(fullName string, email string, password string, phone string) error {
	if strings.TrimSpace(fullName) == "" {
		return apperr.New(apperr.Validation, "full_name is required")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.New(apperr.Validation, "email is required")
	}
	if !emailRe.MatchString(email) {
		return apperr.New(apperr.Validation, "email format is invalid")
	}

	if len(password) < 8 {
		return apperr.New(apperr.Validation, "password must be at least 8 characters")
	}

	// phoneは任意
	if phone != "" && !phoneRe.MatchString(phone) {
		return apperr.New(apperr.Validation, "phone format is invalid")
	}

	return nil
}

func (v *AuthValidator) ValidateLogin(email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return apperr.New(apperr.Validation, "email and password are required")
	}
	if !emailRe.MatchString(email) {
		return apperr.New(apperr.Validation, "email format is invalid")
	}

	return nil
}
