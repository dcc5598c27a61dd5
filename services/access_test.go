package services

import (
	"testing"

	"yatube/models"

	"github.com/stretchr/testify/assert"
)

func TestCheckEditAccess(t *testing.T) {
	post := &models.Post{ID: 7, AuthorID: 1}

	tests := []struct {
		name     string
		actor    *models.User
		allowed  bool
		redirect string
	}{
		{"author", &models.User{ID: 1}, true, ""},
		{"other user", &models.User{ID: 2}, false, "/posts/7/"},
		{"anonymous", nil, false, "/posts/7/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := CheckEditAccess(post, tt.actor)
			assert.Equal(t, tt.allowed, access.Allowed())
			assert.Equal(t, tt.redirect, access.RedirectTarget())
		})
	}
}

func TestAccessVariants(t *testing.T) {
	assert.True(t, Permitted().Allowed())

	denied := DeniedRedirectTo("/somewhere/")
	assert.False(t, denied.Allowed())
	assert.Equal(t, "/somewhere/", denied.RedirectTarget())
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/posts/12/", PostDetailPath(12))
	assert.Equal(t, "/profile/leo/", ProfilePath("leo"))
}
