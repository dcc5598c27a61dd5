package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yatube/models"
	"yatube/services"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUsers(t *testing.T) *services.UserService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return services.NewUserService(db)
}

func TestSessionRoundTrip(t *testing.T) {
	utils.ConfigureJWT("session-secret", time.Hour)
	users := setupUsers(t)
	leo, err := users.CreateUser(&models.CreateUserRequest{
		Email:    "leo@example.com",
		Username: "leo",
		Password: "secret-password",
	})
	require.NoError(t, err)

	store := NewSessionStore("cookie-secret", false)

	r := gin.New()
	r.Use(CurrentUser(store, users))
	r.GET("/login", func(c *gin.Context) {
		require.NoError(t, Login(c, store, leo))
		AddFlash(c, store, "Welcome back.")
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", func(c *gin.Context) {
		name := "anonymous"
		if user := UserFrom(c); user != nil {
			name = user.Username
		}
		c.JSON(http.StatusOK, gin.H{"user": name, "flashes": Flashes(c, store)})
	})
	r.GET("/logout", func(c *gin.Context) {
		require.NoError(t, Logout(c, store))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.JSONEq(t, `{"user":"anonymous","flashes":null}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookie := lastCookie(w, SessionName)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user":"leo","flashes":["Welcome back."]}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCurrentUserIgnoresTamperedCookie(t *testing.T) {
	users := setupUsers(t)
	store := NewSessionStore("cookie-secret", false)

	r := gin.New()
	r.Use(CurrentUser(store, users))
	r.GET("/whoami", func(c *gin.Context) {
		assert.Nil(t, UserFrom(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// lastCookie returns the final Set-Cookie for name; a handler that saves the
// session twice emits it more than once.
func lastCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
