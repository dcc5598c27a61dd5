package routes

import (
	"yatube/config"
	"yatube/controllers"
	"yatube/handlers"
	"yatube/middleware"
	"yatube/services"
	"yatube/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "yatube/docs"
)

// NewEngine builds the fully wired HTTP engine.
func NewEngine(db *gorm.DB, cfg *config.Config, hubService *services.HubService) (*gin.Engine, error) {
	tmpl, err := web.NewTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	store := middleware.NewSessionStore(cfg.SessionSecret, !cfg.Debug)

	pages := Pages{
		Posts: handlers.NewPostsHandler(db, cfg.PageSize, store, hubService),
		Auth:  handlers.NewAuthHandler(db, store),
		Feed:  handlers.NewWebSocketHandler(db, hubService, cfg.AllowedOrigins),
	}
	api := API{
		Auth:  controllers.NewAuthController(db),
		Posts: controllers.NewPostController(db, cfg.PageSize, hubService),
		Users: controllers.NewUserController(db, cfg.PageSize),
	}

	SetupRoutes(r, store, services.NewUserService(db), pages, api)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}
