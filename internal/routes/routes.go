package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, projectHandler *handlers.ProjectHandler, chatHandler *handlers.ChatHandler) {
	api := router.Group("/api/v1")

	projectRoutes := NewProjectRoutes(projectHandler)
	projectRoutes.RegisterRoutes(api)

	chatRoutes := NewChatRoutes(chatHandler)
	chatRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
