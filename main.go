package main

import (
	"fmt"
	"log"
	"os"

	"yatube/commands"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// @title Yatube API
// @version 1.0
// @description JSON API of the Yatube blogging platform: feeds, groups and posts.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	serve := commands.ServeCmd()

	rootCmd := &cobra.Command{
		Use:   "yatube",
		Short: "Yatube blogging platform",
		RunE:  serve.RunE,
	}

	rootCmd.AddCommand(
		serve,
		commands.MigrateCmd(),
		commands.GroupCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
