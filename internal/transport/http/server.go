package http

import (
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exercise-tracker/internal/bootstrap"
	"exercise-tracker/internal/transport/http/handler"
	"exercise-tracker/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.Metrics(), corsMiddleware(app.Config.CORS.AllowOrigins))

	webDir := app.Config.App.WebDir
	router.StaticFile("/", filepath.Join(webDir, "index.html"))
	router.Static("/public", filepath.Join(webDir, "public"))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userHandler := handler.NewUserHandler(app.Users)
	exerciseHandler := handler.NewExerciseHandler(app.Exercises, app.Logs)

	api := router.Group("/api")
	api.POST("/users", userHandler.Register)
	api.GET("/users", userHandler.List)
	api.POST("/users/:id/exercises", exerciseHandler.Record)
	api.GET("/users/:id/logs", exerciseHandler.Logs)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
