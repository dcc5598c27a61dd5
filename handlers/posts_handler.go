package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"yatube/middleware"
	"yatube/models"
	"yatube/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

type PostsHandler struct {
	renderer
	postService  *services.PostService
	groupService *services.GroupService
	userService  *services.UserService
	hubService   *services.HubService
}

func NewPostsHandler(db *gorm.DB, pageSize int, store sessions.Store, hubService *services.HubService) *PostsHandler {
	return &PostsHandler{
		renderer:     renderer{store: store},
		postService:  services.NewPostService(db, pageSize),
		groupService: services.NewGroupService(db),
		userService:  services.NewUserService(db),
		hubService:   hubService,
	}
}

func (h *PostsHandler) Index(c *gin.Context) {
	page, err := h.postService.ListAll(c.Query("page"))
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "posts/index.html", gin.H{
		"title":    "Latest posts",
		"page_obj": page,
	})
}

func (h *PostsHandler) GroupPosts(c *gin.Context) {
	group, err := h.groupService.GetBySlug(c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.postService.ListByGroup(group.ID, c.Query("page"))
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"title":    group.String(),
		"group":    group,
		"page_obj": page,
	})
}

func (h *PostsHandler) Profile(c *gin.Context) {
	author, err := h.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.postService.ListByAuthor(author.ID, c.Query("page"))
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "posts/profile.html", gin.H{
		"title":    "Profile of " + author.FullName(),
		"author":   author,
		"page_obj": page,
	})
}

func (h *PostsHandler) PostDetail(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	count, err := h.userService.CountPosts(post.AuthorID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"title":        "Post " + post.String(),
		"post":         post,
		"author_posts": count,
		"can_edit":     services.CheckEditAccess(post, middleware.UserFrom(c)).Allowed(),
	})
}

func (h *PostsHandler) PostCreate(c *gin.Context) {
	actor := middleware.UserFrom(c)

	var form models.PostForm
	if c.Request.Method != http.MethodPost {
		h.renderPostForm(c, form, nil, false, "/create/")
		return
	}

	if err := c.ShouldBind(&form); err != nil {
		h.renderPostForm(c, form, formErrors(err), false, "/create/")
		return
	}

	post, err := h.postService.Create(actor, &form)
	if err != nil {
		if services.IsValidationError(err) {
			h.renderPostForm(c, form, formErrors(err), false, "/create/")
			return
		}
		h.serverError(c, err)
		return
	}

	h.hubService.PublishPost(post)
	middleware.AddFlash(c, h.store, "Post published.")
	c.Redirect(http.StatusFound, services.ProfilePath(actor.Username))
}

func (h *PostsHandler) PostEdit(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	actor := middleware.UserFrom(c)
	if access := services.CheckEditAccess(post, actor); !access.Allowed() {
		c.Redirect(http.StatusFound, access.RedirectTarget())
		return
	}

	action := fmt.Sprintf("/posts/%d/edit/", post.ID)
	form := models.PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}

	if c.Request.Method != http.MethodPost {
		h.renderPostForm(c, form, nil, true, action)
		return
	}

	form = models.PostForm{}
	if err := c.ShouldBind(&form); err != nil {
		h.renderPostForm(c, form, formErrors(err), true, action)
		return
	}

	if _, err := h.postService.Update(post, actor, &form); err != nil {
		if services.IsValidationError(err) {
			h.renderPostForm(c, form, formErrors(err), true, action)
			return
		}
		h.serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, services.PostDetailPath(post.ID))
}

func (h *PostsHandler) PostDelete(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	actor := middleware.UserFrom(c)
	if access := services.CheckEditAccess(post, actor); !access.Allowed() {
		c.Redirect(http.StatusFound, access.RedirectTarget())
		return
	}

	if err := h.postService.Delete(post, actor); err != nil {
		h.serverError(c, err)
		return
	}

	middleware.AddFlash(c, h.store, "Post deleted.")
	c.Redirect(http.StatusFound, services.ProfilePath(actor.Username))
}

func (h *PostsHandler) renderPostForm(c *gin.Context, form models.PostForm, errs map[string]string, isEdit bool, action string) {
	groups, err := h.groupService.List()
	if err != nil {
		h.serverError(c, err)
		return
	}
	if errs == nil {
		errs = map[string]string{}
	}

	title := "New post"
	if isEdit {
		title = "Edit post"
	}

	h.render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"title":   title,
		"form":    form,
		"errors":  errs,
		"groups":  groups,
		"is_edit": isEdit,
		"action":  action,
	})
}

// loadPost resolves the :id parameter. Malformed ids are treated as unknown.
func (h *PostsHandler) loadPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.notFound(c)
		return nil, false
	}

	post, err := h.postService.GetByID(uint(id))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return post, true
}

func (h *PostsHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrUserNotFound):
		h.notFound(c)
	default:
		h.serverError(c, err)
	}
}
