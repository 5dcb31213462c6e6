package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Cascade behavior (title -> reviews -> comments, user -> authored
// content, category detach, genre join-row cleanup) lives in the
// postgres schema and needs a real database to exercise.
func TestCascadeIntegration(t *testing.T) {
	t.Skip("Integration tests require database setup")
}

func TestTitleFilterZeroValue(t *testing.T) {
	var f TitleFilter
	assert.Empty(t, f.CategorySlug)
	assert.Empty(t, f.GenreSlug)
	assert.Empty(t, f.Name)
	assert.Nil(t, f.Year)
}
