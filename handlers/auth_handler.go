package handlers

import (
	"errors"
	"net/http"

	"yatube/middleware"
	"yatube/models"
	"yatube/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

type AuthHandler struct {
	renderer
	userService *services.UserService
}

func NewAuthHandler(db *gorm.DB, store sessions.Store) *AuthHandler {
	return &AuthHandler{
		renderer:    renderer{store: store},
		userService: services.NewUserService(db),
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var form models.CreateUserRequest
	if c.Request.Method != http.MethodPost {
		h.renderSignup(c, form, nil)
		return
	}

	if err := c.ShouldBind(&form); err != nil {
		h.renderSignup(c, form, formErrors(err))
		return
	}

	user, err := h.userService.CreateUser(&form)
	switch {
	case errors.Is(err, services.ErrUserExists):
		h.renderSignup(c, form, map[string]string{"username": "A user with that username or email already exists."})
		return
	case services.IsValidationError(err):
		h.renderSignup(c, form, formErrors(err))
		return
	case err != nil:
		h.serverError(c, err)
		return
	}

	if err := middleware.Login(c, h.store, user); err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Login(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.renderLogin(c, "", c.Query("next"), nil)
		return
	}

	next := c.PostForm("next")

	var form models.LoginRequest
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, form.Login, next, formErrors(err))
		return
	}

	user, err := h.userService.Authenticate(form.Login, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.renderLogin(c, form.Login, next, map[string]string{
				nonFieldErrors: "Please enter a correct username and password.",
			})
			return
		}
		h.serverError(c, err)
		return
	}

	if err := middleware.Login(c, h.store, user); err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, middleware.SafeNext(next))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c, h.store); err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderSignup(c *gin.Context, form models.CreateUserRequest, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	h.render(c, http.StatusOK, "users/signup.html", gin.H{
		"title":  "Sign up",
		"form":   form,
		"errors": errs,
	})
}

func (h *AuthHandler) renderLogin(c *gin.Context, login, next string, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	h.render(c, http.StatusOK, "users/login.html", gin.H{
		"title":  "Log in",
		"login":  login,
		"next":   next,
		"errors": errs,
	})
}
