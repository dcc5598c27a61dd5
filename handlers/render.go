package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode"

	"yatube/middleware"
	"yatube/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
)

const nonFieldErrors = "__all__"

type renderer struct {
	store sessions.Store
}

// render adds the acting user and pending flash messages to every page.
func (r renderer) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user := middleware.UserFrom(c); user != nil {
		data["user"] = user
	}
	data["flashes"] = middleware.Flashes(c, r.store)
	c.HTML(status, name, data)
}

func (r renderer) notFound(c *gin.Context) {
	r.render(c, http.StatusNotFound, "core/404.html", gin.H{
		"title": "Page not found",
		"path":  c.Request.URL.Path,
	})
}

func (r renderer) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	r.render(c, http.StatusInternalServerError, "core/500.html", gin.H{"title": "Server error"})
}

// NotFound serves unmatched routes with the same page as missing records.
func NotFound(store sessions.Store) gin.HandlerFunc {
	r := renderer{store: store}
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		r.notFound(c)
	}
}

// formErrors turns binding and service validation failures into a field name
// to message map for the templates.
func formErrors(err error) map[string]string {
	errs := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs[snakeCase(fe.Field())] = validationMessage(fe)
		}
		return errs
	}

	if ve, ok := services.AsValidationError(err); ok {
		errs[ve.Field] = ve.Message
		return errs
	}

	log.Printf("Unexpected form error: %v", err)
	errs[nonFieldErrors] = "The submitted form could not be processed."
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	default:
		return "Enter a valid value."
	}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
