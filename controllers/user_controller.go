package controllers

import (
	"errors"
	"net/http"

	"yatube/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	userService *services.UserService
	postService *services.PostService
}

func NewUserController(db *gorm.DB, pageSize int) *UserController {
	return &UserController{
		userService: services.NewUserService(db),
		postService: services.NewPostService(db, pageSize),
	}
}

// GetUserPosts godoc
// @Summary Profile feed of one author
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Param page query string false "Page number"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /users/{username}/posts [get]
func (uc *UserController) GetUserPosts(c *gin.Context) {
	author, err := uc.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	page, err := uc.postService.ListByAuthor(author.ID, c.Query("page"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"author": author.Public(),
		"posts":  newPostPageResponse(page),
	})
}

// DeleteMe godoc
// @Summary Delete your account and every post you wrote
// @Tags users
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /users/me [delete]
func (uc *UserController) DeleteMe(c *gin.Context) {
	user, ok := currentUser(c, uc.userService)
	if !ok {
		return
	}

	if err := uc.userService.DeleteUser(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
