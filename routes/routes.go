package routes

import (
	"net/http"

	"yatube/controllers"
	"yatube/handlers"
	"yatube/middleware"
	"yatube/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

type Pages struct {
	Posts *handlers.PostsHandler
	Auth  *handlers.AuthHandler
	Feed  *handlers.WebSocketHandler
}

type API struct {
	Auth  *controllers.AuthController
	Posts *controllers.PostController
	Users *controllers.UserController
}

func SetupRoutes(r *gin.Engine, store sessions.Store, userService *services.UserService, pages Pages, api API) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	currentUser := middleware.CurrentUser(store, userService)

	web := r.Group("/")
	web.Use(currentUser)
	{
		web.GET("/", pages.Posts.Index)
		web.GET("/group/:slug/", pages.Posts.GroupPosts)
		web.GET("/profile/:username/", pages.Posts.Profile)
		web.GET("/posts/:id/", pages.Posts.PostDetail)

		protected := web.Group("/")
		protected.Use(middleware.LoginRequired())
		{
			protected.GET("/create/", pages.Posts.PostCreate)
			protected.POST("/create/", pages.Posts.PostCreate)
			protected.GET("/posts/:id/edit/", pages.Posts.PostEdit)
			protected.POST("/posts/:id/edit/", pages.Posts.PostEdit)
			protected.POST("/posts/:id/delete/", pages.Posts.PostDelete)
		}

		auth := web.Group("/auth")
		{
			auth.GET("/signup/", pages.Auth.Signup)
			auth.POST("/signup/", pages.Auth.Signup)
			auth.GET("/login/", pages.Auth.Login)
			auth.POST("/login/", pages.Auth.Login)
			auth.GET("/logout/", pages.Auth.Logout)
		}
	}

	r.GET("/ws/feed", pages.Feed.HandleFeed)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", api.Auth.Register)
			auth.POST("/login", api.Auth.Login)
			auth.GET("/me", middleware.AuthRequired(), api.Auth.Me)
		}

		v1.GET("/posts", api.Posts.GetPosts)
		v1.GET("/posts/:id", api.Posts.GetPost)
		v1.GET("/groups", api.Posts.GetGroups)
		v1.GET("/groups/:slug/posts", api.Posts.GetGroupPosts)
		v1.GET("/users/:username/posts", api.Users.GetUserPosts)

		authed := v1.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.POST("/posts", api.Posts.CreatePost)
			authed.PUT("/posts/:id", api.Posts.UpdatePost)
			authed.DELETE("/posts/:id", api.Posts.DeletePost)
			authed.DELETE("/users/me", api.Users.DeleteMe)
		}
	}

	r.NoRoute(currentUser, handlers.NotFound(store))
}
