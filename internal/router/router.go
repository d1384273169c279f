// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dzfactories/backend/internal/config"
	"github.com/dzfactories/backend/internal/handlers"
	"github.com/dzfactories/backend/internal/middleware"
	"github.com/dzfactories/backend/internal/repository"
	"github.com/dzfactories/backend/internal/services"
	"github.com/dzfactories/backend/internal/utils"
)

func Initialize(store repository.Store, cfg *config.Config) (*gin.Engine, error) {
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	authHandler := handlers.NewAuthHandler(store, cfg)
	factoryHandler := handlers.NewFactoryHandler(store)
	reviewHandler := handlers.NewReviewHandler(store)
	uploadHandler := handlers.NewUploadHandler(storageService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/user", middleware.AuthRequired(), authHandler.Profile)
			auth.PATCH("/user", middleware.AuthRequired(), authHandler.UpdateProfile)
		}

		// Public directory routes
		api.GET("/factories", factoryHandler.List)
		api.GET("/factories/:id", middleware.OptionalAuth(), factoryHandler.Get)
		api.GET("/factories/:id/reviews", reviewHandler.List)
		api.GET("/stats", factoryHandler.Stats)
		api.GET("/wilayas", factoryHandler.Wilayas)
		api.GET("/categories", factoryHandler.Categories)

		// Authenticated routes
		api.POST("/factories/:id/reviews", middleware.AuthRequired(), reviewHandler.Create)
		api.POST("/upload/image", middleware.AuthRequired(), middleware.UploadRateLimit(), uploadHandler.UploadImage)

		// Admin routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(cfg))
		{
			admin.POST("/factories", factoryHandler.Create)
			admin.PATCH("/factories/:id", factoryHandler.Update)
			admin.DELETE("/factories/:id", factoryHandler.Delete)
		}
	}

	return r, nil
}
