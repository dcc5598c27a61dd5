package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"yatube/models"
	"yatube/services"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostController struct {
	postService  *services.PostService
	groupService *services.GroupService
	userService  *services.UserService
	hubService   *services.HubService
}

type PostPageResponse struct {
	Items       []models.PostResponse `json:"items"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalPages  int                   `json:"total_pages"`
	TotalItems  int                   `json:"total_items"`
	HasNext     bool                  `json:"has_next"`
	HasPrevious bool                  `json:"has_previous"`
}

func NewPostController(db *gorm.DB, pageSize int, hubService *services.HubService) *PostController {
	return &PostController{
		postService:  services.NewPostService(db, pageSize),
		groupService: services.NewGroupService(db),
		userService:  services.NewUserService(db),
		hubService:   hubService,
	}
}

func newPostPageResponse(page utils.Page[models.Post]) PostPageResponse {
	items := make([]models.PostResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, page.Items[i].Response())
	}
	return PostPageResponse{
		Items:       items,
		Page:        page.Number,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		HasNext:     page.HasNext(),
		HasPrevious: page.HasPrevious(),
	}
}

// GetPosts godoc
// @Summary Site-wide feed
// @Tags posts
// @Produce json
// @Param page query string false "Page number"
// @Success 200 {object} PostPageResponse
// @Router /posts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	page, err := pc.postService.ListAll(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, newPostPageResponse(page))
}

// GetGroupPosts godoc
// @Summary Feed of one group
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Param page query string false "Page number"
// @Success 200 {object} PostPageResponse
// @Failure 404 {object} map[string]string
// @Router /groups/{slug}/posts [get]
func (pc *PostController) GetGroupPosts(c *gin.Context) {
	group, err := pc.groupService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}

	page, err := pc.postService.ListByGroup(group.ID, c.Query("page"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group": group,
		"posts": newPostPageResponse(page),
	})
}

// GetGroups godoc
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /groups [get]
func (pc *PostController) GetGroups(c *gin.Context) {
	groups, err := pc.groupService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": groups})
}

// GetPost godoc
// @Summary Single post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostResponse
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	post, ok := pc.loadPost(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post.Response()})
}

// CreatePost godoc
// @Summary Publish a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body models.PostForm true "Post"
// @Success 201 {object} models.PostResponse
// @Failure 400 {object} map[string]string
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	actor, ok := currentUser(c, pc.userService)
	if !ok {
		return
	}

	var req models.PostForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.postService.Create(actor, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	pc.hubService.PublishPost(post)
	c.JSON(http.StatusCreated, gin.H{"data": post.Response()})
}

// UpdatePost godoc
// @Summary Edit your own post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param post body models.PostForm true "Post"
// @Success 200 {object} models.PostResponse
// @Failure 403 {object} map[string]string
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	actor, ok := currentUser(c, pc.userService)
	if !ok {
		return
	}
	post, ok := pc.loadPost(c)
	if !ok {
		return
	}

	var req models.PostForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := pc.postService.Update(post, actor, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated.Response()})
}

// DeletePost godoc
// @Summary Delete your own post
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	actor, ok := currentUser(c, pc.userService)
	if !ok {
		return
	}
	post, ok := pc.loadPost(c)
	if !ok {
		return
	}

	if err := pc.postService.Delete(post, actor); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (pc *PostController) loadPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return nil, false
	}

	post, err := pc.postService.GetByID(uint(id))
	if err != nil {
		writeServiceError(c, err)
		return nil, false
	}
	return post, true
}

func writeServiceError(c *gin.Context, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}

	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only change your own posts"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
