package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"yatube/config"
	"yatube/models"
	"yatube/services"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "secret-password"

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	hub    *services.HubService
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.ConfigureJWT("test-secret", time.Hour)

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}))

	cfg := &config.Config{
		SessionSecret: "test-session-secret",
		PageSize:      10,
		Debug:         true,
	}
	hub := services.NewHubService()

	router, err := NewEngine(db, cfg, hub)
	require.NoError(t, err)

	return &testApp{t: t, db: db, router: router, hub: hub}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, cookies...)
}

func (a *testApp) createUser(username string) *models.User {
	a.t.Helper()
	user, err := services.NewUserService(a.db).CreateUser(&models.CreateUserRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: testPassword,
	})
	require.NoError(a.t, err)
	return user
}

func (a *testApp) createGroup(slug string) *models.Group {
	a.t.Helper()
	group, err := services.NewGroupService(a.db).Create(&models.CreateGroupRequest{
		Title: "Group " + slug,
		Slug:  slug,
	})
	require.NoError(a.t, err)
	return group
}

func (a *testApp) seedPosts(author *models.User, group *models.Group, n int) []models.Post {
	a.t.Helper()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := models.Post{
			Text:      fmt.Sprintf("post %d by %s", i, author.Username),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if group != nil {
			post.GroupID = &group.ID
		}
		require.NoError(a.t, a.db.Create(&post).Error)
		posts = append(posts, post)
	}
	return posts
}

// login signs in through the HTML form and returns the session cookies.
func (a *testApp) login(username string) []*http.Cookie {
	a.t.Helper()
	w := a.postForm("/auth/login/", url.Values{
		"username": {username},
		"password": {testPassword},
	})
	require.Equal(a.t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(a.t, cookies)
	return cookies
}

func (a *testApp) bearer(user *models.User) string {
	a.t.Helper()
	token, err := utils.GenerateJWT(user.ID, user.Username)
	require.NoError(a.t, err)
	return "Bearer " + token
}

func (a *testApp) postCount() int64 {
	a.t.Helper()
	var n int64
	require.NoError(a.t, a.db.Model(&models.Post{}).Count(&n).Error)
	return n
}

func cardCount(body string) int {
	return strings.Count(body, `<article class="post" `)
}
