package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "a@b.co", NormalizeEmail("a@b.co"))
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"user@example.com",
		"first.last@sub.example.org",
		"user+tag@example.io",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user @example.com",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		confirm  string
		wantErr  string
	}{
		{name: "valid", password: "secret1", confirm: "secret1"},
		{name: "mismatch", password: "secret1", confirm: "secret2", wantErr: "passwords do not match"},
		{name: "too short", password: "abc12", confirm: "abc12", wantErr: "password must have 6 or more characters"},
		{name: "too long", password: strings.Repeat("a", 129), confirm: strings.Repeat("a", 129), wantErr: "password must not exceed 128 characters"},
		{name: "digits only", password: "12345678", confirm: "12345678", wantErr: "password cannot consist only of digits"},
		{name: "digits with letter", password: "1234567a", confirm: "1234567a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password, tt.confirm)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
