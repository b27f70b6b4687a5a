package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"a@x.com",
		"first.last@example.co.uk",
		"user+tag@example.io",
		"user_name%x@sub.example.com",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"user@",
		"user@localhost",
		"user@example.c",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), "expected %q to be invalid", email)
	}
}

func TestValidatePassword(t *testing.T) {
	valid := []string{
		"Abc12345!",
		"p@ssw0rd",
		"x1!x1!x1",
	}
	for _, password := range valid {
		assert.True(t, ValidatePassword(password), "expected %q to pass", password)
	}

	invalid := []string{
		"",
		"Ab1!",         // too short
		"abcdefgh!",    // no digit
		"12345678!",    // no letter
		"abcdefgh1",    // no symbol
	}
	for _, password := range invalid {
		assert.False(t, ValidatePassword(password), "expected %q to fail", password)
	}
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", SanitizeEmail("  A@X.Com "))
	assert.Equal(t, "a@x.com", SanitizeEmail("a@x.com"))
}
