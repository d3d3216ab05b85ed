package main

import (
	"log"

	"github.com/photoatlas/heatmap-backend-go/internal/api"
	"github.com/photoatlas/heatmap-backend-go/internal/config"
	"github.com/photoatlas/heatmap-backend-go/internal/database"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	router := api.SetupRouter(cfg, database.GetDB())

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
