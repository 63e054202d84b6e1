package main

import (
	"fmt"
	"log"

	"drivebox/config"
	"drivebox/database"
	"drivebox/handlers"
	"drivebox/logger"
	"drivebox/middleware"
	"drivebox/models"
	"drivebox/repositories"
	"drivebox/services"
	"drivebox/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.Println("starting drivebox service")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logger.SetLevel(cfg.Log.Level)

	if err := database.InitMySQL(&cfg.Database); err != nil {
		log.Fatalf("init mysql failed: %v", err)
	}

	database.DB.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.File{},
	)
	log.Println("database migration completed")

	if err := database.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("init redis failed: %v", err)
	}

	blobs, err := storage.NewMinioBlobStore(&cfg.Blob)
	if err != nil {
		log.Fatalf("init blob store failed: %v", err)
	}

	repoContainer := repositories.NewGormRepositories(database.DB, database.RedisClient).BuildContainer()
	serviceContainer := services.NewContainer(repoContainer, blobs)
	handlers.SetServices(serviceContainer)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(cfg)))
	setupRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("server listening on http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST"}
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	corsCfg.AllowCredentials = len(cfg.CORS.AllowOrigins) > 0
	return corsCfg
}

func setupRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	api.GET("/health", handlers.HealthCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// Content retrieval is keyed by handle alone; see GetFileContent.
	api.GET("/files/content/:handle", handlers.GetFileContent)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/folders", handlers.ListFolders)
		protected.POST("/folders", handlers.CreateFolder)
		protected.GET("/folders/:id/path", handlers.GetFolderPath)

		protected.GET("/files", handlers.ListFiles)
		protected.POST("/files", handlers.UploadFile)
		protected.GET("/files/:id/thumbnail", handlers.GetThumbnail)

		protected.GET("/search", handlers.Search)
	}
}
