package services

import (
	"fmt"

	"yatube/models"
)

// Access is the outcome of an ownership check. A denied edit is not an error:
// the actor is sent to RedirectTarget instead.
type Access struct {
	redirect string
}

func Permitted() Access {
	return Access{}
}

func DeniedRedirectTo(target string) Access {
	return Access{redirect: target}
}

func (a Access) Allowed() bool {
	return a.redirect == ""
}

func (a Access) RedirectTarget() string {
	return a.redirect
}

func PostDetailPath(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func ProfilePath(username string) string {
	return "/profile/" + username + "/"
}

// CheckEditAccess lets only the author through; everyone else is redirected to
// the read-only detail page.
func CheckEditAccess(post *models.Post, actor *models.User) Access {
	if post.IsAuthor(actor) {
		return Permitted()
	}
	return DeniedRedirectTo(PostDetailPath(post.ID))
}
