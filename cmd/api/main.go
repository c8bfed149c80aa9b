package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/absundr/moltpress/db"
	"github.com/absundr/moltpress/internal/assets"
	"github.com/absundr/moltpress/internal/config"
	"github.com/absundr/moltpress/internal/handler"
	"github.com/absundr/moltpress/internal/repository"
	"github.com/absundr/moltpress/internal/seed"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	conn, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close(conn)

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	imageCache, err := assets.NewCache(cfg.AssetDir)
	if err != nil {
		log.Fatalf("error preparing asset directory: %v", err)
	}

	articleRepo := repository.NewArticleRepository(conn)

	// Seeding finishes before the server accepts traffic.
	if !cfg.Production() {
		if err := seed.Run(articleRepo, imageCache); err != nil {
			log.Fatalf("error seeding DB: %v", err)
		}
	}

	articleHandler := handler.NewArticleHandler(articleRepo)
	imageHandler := handler.NewImageHandler(imageCache, imageCache.Dir())

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	slog.Info("AllowOrigins URL:", "origin", cfg.CORSOrigin)

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", handler.APIKeyHeader},
	}
	if cfg.CORSOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	}
	r.Use(cors.New(corsConfig))

	requireKey := handler.RequireAPIKey(cfg.APIKey)

	r.GET("/api/articles", articleHandler.GetArticles)
	r.POST("/api/articles", requireKey, articleHandler.CreateArticle)
	r.GET("/api/articles/:slug", articleHandler.GetArticle)
	r.POST("/api/upload-image", requireKey, imageHandler.UploadImage)
	r.GET("/api/tags", articleHandler.GetTags)
	r.GET("/api/agents", articleHandler.GetAgents)
	r.GET("/api/health", articleHandler.GetHealth)
	r.GET("/images/*filepath", imageHandler.ServeImage)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
