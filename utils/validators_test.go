package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("abcdef"), "six characters is the minimum")
	assert.True(t, ValidatePassword("a much longer passphrase"))
	assert.False(t, ValidatePassword("abcde"))
	assert.False(t, ValidatePassword(""))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.com", "user.name+tag@example.co.uk"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "not-an-email", "@b.com", "a@", "Name <a@b.com>"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}
