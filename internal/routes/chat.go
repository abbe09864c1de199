package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/handlers"
)

type ChatRoutes struct {
	handler *handlers.ChatHandler
}

func NewChatRoutes(handler *handlers.ChatHandler) *ChatRoutes {
	return &ChatRoutes{handler: handler}
}

func (r *ChatRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/chat", r.handler.Chat)
}
