package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AparicioQA/RedditClone/internal/auth"
	"github.com/AparicioQA/RedditClone/internal/config"
	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Database
	db.Init(cfg)

	tokens := auth.NewService(cfg)

	// Initialize Gin
	r := gin.Default()

	// CORS for the SPA origin
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.RegisterRoutes(r, tokens)

	log.Printf("RedditClone API starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
