package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/mockmentor-backend/internal/handlers"
	"github.com/yungbote/mockmentor-backend/internal/middleware"
)

type RouterConfig struct {
	InterviewHandler     *handlers.InterviewHandler
	RequestLogMiddleware *middleware.RequestLogMiddleware
	AllowOrigins         []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("mockmentor-backend"))
	router.Use(cfg.RequestLogMiddleware.Tag())

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/interviews", cfg.InterviewHandler.StartInterview)
		api.POST("/interviews/:id/turns", cfg.InterviewHandler.SubmitTurn)
		api.GET("/interviews/:id/transcript", cfg.InterviewHandler.GetTranscript)
	}

	return router
}
