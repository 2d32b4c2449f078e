package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("guest@example.com"))
	assert.True(t, ValidEmail("a.b+c@mail.example.org"))

	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("no-at-sign"))
	assert.False(t, ValidEmail("two@@example.com"))
	assert.False(t, ValidEmail("spaces in@example.com"))
	assert.False(t, ValidEmail("no-domain@"))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("12345678"))
	assert.True(t, ValidPassword("correct horse battery staple"))

	assert.False(t, ValidPassword(""))
	assert.False(t, ValidPassword("short"))
}
