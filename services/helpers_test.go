package services

import (
	"fmt"
	"testing"
	"time"

	"yatube/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
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

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user, err := NewUserService(db).CreateUser(&models.CreateUserRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "secret-password",
	})
	require.NoError(t, err)
	return user
}

func createGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()
	group, err := NewGroupService(db).Create(&models.CreateGroupRequest{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "about " + slug,
	})
	require.NoError(t, err)
	return group
}

// seedPosts inserts n posts one minute apart, oldest first.
func seedPosts(t *testing.T, db *gorm.DB, author *models.User, group *models.Group, n int) []models.Post {
	t.Helper()
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
		require.NoError(t, db.Create(&post).Error)
		posts = append(posts, post)
	}
	return posts
}
