package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pochy-chat/internal/bootstrap"
	"pochy-chat/internal/transport/http/handler"
	"pochy-chat/internal/transport/http/middleware"
	"pochy-chat/web"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(app.Logger),
		middleware.Recovery(app.Logger),
	)

	healthHandler := handler.NewHealthHandler(app)
	chatHandler := handler.NewChatHandler(app.Chat, app.Limiter, app.Config.Ready(), app.Logger)

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
	})
	router.GET("/healthz", healthHandler.Check)

	api := router.Group("/api")
	api.POST("/chat", chatHandler.SendMessage)
	api.OPTIONS("/chat", chatHandler.Preflight)
	api.GET("/chat", healthHandler.Probe)

	return router
}
