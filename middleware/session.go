package middleware

import (
	"log"
	"net/http"

	"yatube/models"
	"yatube/services"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	SessionName     = "yatube"
	sessionTokenKey = "token"
	contextUserKey  = "current_user"
)

func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Login stores a freshly signed token for user in the session cookie.
func Login(c *gin.Context, store sessions.Store, user *models.User) error {
	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		return err
	}

	session, _ := store.Get(c.Request, SessionName)
	session.Values[sessionTokenKey] = token
	if err := session.Save(c.Request, c.Writer); err != nil {
		return err
	}

	c.Set(contextUserKey, user)
	return nil
}

func Logout(c *gin.Context, store sessions.Store) error {
	session, _ := store.Get(c.Request, SessionName)
	delete(session.Values, sessionTokenKey)
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}

func AddFlash(c *gin.Context, store sessions.Store, message string) {
	session, _ := store.Get(c.Request, SessionName)
	session.AddFlash(message)
	if err := session.Save(c.Request, c.Writer); err != nil {
		log.Printf("Failed to save flash message: %v", err)
	}
}

// Flashes pops pending flash messages from the session.
func Flashes(c *gin.Context, store sessions.Store) []string {
	session, err := store.Get(c.Request, SessionName)
	if err != nil {
		return nil
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(c.Request, c.Writer); err != nil {
		log.Printf("Failed to clear flash messages: %v", err)
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}

// CurrentUser resolves the session token into the acting user. Requests
// without a valid session continue anonymously.
func CurrentUser(store sessions.Store, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Request, SessionName)
		if err != nil {
			c.Next()
			return
		}

		token, _ := session.Values[sessionTokenKey].(string)
		if token == "" {
			c.Next()
			return
		}

		userID, err := utils.ValidateJWT(token)
		if err != nil {
			log.Printf("Session token rejected: %v", err)
			c.Next()
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// UserFrom returns the acting user or nil for anonymous requests.
func UserFrom(c *gin.Context) *models.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
