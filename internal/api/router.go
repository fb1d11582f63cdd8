package api

import (
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/api/handler"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/api/middleware"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/config"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/logger"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/service"
	"github.com/gin-gonic/gin"
)

// CaptionPath is the caption generation endpoint.
const CaptionPath = "/api/generate-caption"

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	captionService *service.CaptionService,
	cfg *config.ServerConfig,
	log *logger.Logger,
) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler()
	captionHandler := handler.NewCaptionHandler(captionService, cfg.MaxBodyBytes)

	r.GET("/health", healthHandler.Health)
	r.POST(CaptionPath, captionHandler.GenerateCaption)

	return r
}
