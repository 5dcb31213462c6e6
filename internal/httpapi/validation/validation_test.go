package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/httpapi/apperr"
)

func TestUsername_Valid(t *testing.T) {
	for _, name := range []string{
		"alice",
		"bob.smith",
		"user@host",
		"first+last",
		"under_score",
		"with-dash",
	} {
		assert.NoError(t, Username(name), name)
	}
}

func TestUsername_Reserved(t *testing.T) {
	err := Username("me")
	ve, ok := apperr.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "username")
}

func TestUsername_Invalid(t *testing.T) {
	for _, name := range []string{
		"",
		"has space",
		"exclaim!",
		"slash/name",
		strings.Repeat("a", 151),
	} {
		err := Username(name)
		assert.Error(t, err, name)
		_, ok := apperr.AsValidation(err)
		assert.True(t, ok, name)
	}
}

func TestSlug_Valid(t *testing.T) {
	for _, slug := range []string{"movies", "sci-fi", "top_10", "Drama2024"} {
		assert.NoError(t, Slug(slug), slug)
	}
}

func TestSlug_Invalid(t *testing.T) {
	for _, slug := range []string{"", "with space", "юникод", "dot.ted", strings.Repeat("x", 51)} {
		assert.Error(t, Slug(slug), slug)
	}
}
