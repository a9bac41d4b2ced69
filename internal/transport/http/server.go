package http

import (
	"github.com/gin-gonic/gin"

	"holoframe-backend/internal/bootstrap"
	"holoframe-backend/internal/transport/http/handler"
	"holoframe-backend/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	healthHandler := handler.NewHealthHandler(app.Store)
	router.GET("/", healthHandler.Root)
	router.GET("/test", healthHandler.Test)

	galleryHandler := handler.NewGalleryHandler(app.Gallery, app.Config.Upload.MaxBytes)
	staticHandler := handler.NewStaticHandler(app.Files)

	api := router.Group("/api")
	api.GET("/bootstrap", galleryHandler.Bootstrap)
	api.POST("/photos/upload", galleryHandler.Upload)
	api.GET("/static/:fname", staticHandler.Serve)

	return router
}
