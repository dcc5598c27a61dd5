package commands

import (
	"yatube/config"
	"yatube/database"

	"gorm.io/gorm"
)

// openDB is replaced in tests.
var openDB = func(cfg *config.Config) (*gorm.DB, error) {
	return database.Connect(cfg)
}

func loadConfig() *config.Config {
	return config.Load()
}
