package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"yatube/utils"

	"github.com/gin-gonic/gin"
)

const LoginPath = "/auth/login/"

// AuthRequired guards the JSON API with a bearer token.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = authHeader[7:]
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		userID, err := utils.ValidateJWT(token)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// LoginRequired sends anonymous visitors of HTML pages to the login form,
// remembering where they were going.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) != nil {
			c.Next()
			return
		}

		c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{"next": {next}}.Encode()
}

// SafeNext accepts only local absolute paths as a post-login redirect.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
