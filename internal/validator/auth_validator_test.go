package validator

import (
	"testing"

	"shoestore/internal/domain/apperr"

	"github.com/stretchr/testify/assert"
)

func TestAuthValidator_ValidateRegister(t *testing.T) {
	v := NewAuthValidator()

	cases := []struct {
		name     string
		fullName string
		email    string
		password string
		phone    string
		wantErr  bool
	}{
		{"ok", "Taro Test", "user@test.com", "password1", "", false},
		{"ok with phone", "Taro Test", "user@test.com", "password1", "0901234567", false},
		{"missing full name", "  ", "user@test.com", "password1", "", true},
		{"missing email", "Taro", "", "password1", "", true},
		{"bad email", "Taro", "not-an-email", "password1", "", true},
		{"bad email no tld", "Taro", "user@test", "password1", "", true},
		{"password 7 chars", "Taro", "user@test.com", "1234567", "", true},
		{"password 8 chars", "Taro", "user@test.com", "12345678", "", false},
		{"phone too short", "Taro", "user@test.com", "password1", "12345", true},
		{"phone with letters", "Taro", "user@test.com", "password1", "09012345ab", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateRegister(tc.fullName, tc.email, tc.password, tc.phone)
			if tc.wantErr {
				assert.True(t, apperr.IsKind(err, apperr.Validation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthValidator_ValidateLogin(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.ValidateLogin("user@test.com", "whatever"))
	assert.True(t, apperr.IsKind(v.ValidateLogin("", "pw"), apperr.Validation))
	assert.True(t, apperr.IsKind(v.ValidateLogin("user@test.com", ""), apperr.Validation))
	assert.True(t, apperr.IsKind(v.ValidateLogin("broken", "pw"), apperr.Validation))
}
