package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"instantapply/config"
	"instantapply/controllers"
	"instantapply/database"
	"instantapply/models"
	"instantapply/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.GetAppConfig()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	profileModel := models.NewUserProfileModel(db)
	attemptModel := models.NewApplicationAttemptModel(db)

	gemini := services.NewGeminiClient(cfg.GeminiKey, cfg.GeminiModel)
	orchestrator := services.NewOrchestrator(cfg.Automation, gemini)

	instantApply := controllers.NewInstantApplyController(profileModel, attemptModel, orchestrator)
	screenshots := controllers.NewScreenshotController()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default())

	r.Static("/static", "./static")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/applications/instant-apply", instantApply.InstantApply)
		api.GET("/applications/:userId", instantApply.ListAttempts)
		api.GET("/screenshots/*key", screenshots.GetScreenshot)
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
