package commands

import (
	"fmt"
	"log"

	"yatube/database"
	"yatube/routes"
	"yatube/services"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)
			if !cfg.Debug {
				gin.SetMode(gin.ReleaseMode)
			}

			db, err := openDB(cfg)
			if err != nil {
				return err
			}

			if cfg.AutoMigrate || cfg.DBDriver == "sqlite" {
				if err := database.Migrate(db, cfg.DBDriver); err != nil {
					return err
				}
			}

			hubService := services.NewHubService()

			r, err := routes.NewEngine(db, cfg, hubService)
			if err != nil {
				return fmt.Errorf("failed to build router: %w", err)
			}

			log.Printf("Server starting on port %s", cfg.Port)
			log.Printf("Swagger docs available at: http://localhost:%s/swagger/index.html", cfg.Port)
			return r.Run(":" + cfg.Port)
		},
	}
}
