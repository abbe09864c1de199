package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/responses"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Chat handles POST /api/v1/chat. The reply body is the raw turn payload
// ({message, schema?, projectName?}), not the CRUD envelope, since the chat
// client renders it directly.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req services.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	result, err := h.chatService.HandleTurn(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
			return
		}
		log.Printf("ERROR in Chat handler: %v", err)
		responses.Fail(c, http.StatusInternalServerError, nil,
			"An error occurred while processing your request. Please try again.")
		return
	}

	c.JSON(http.StatusOK, result)
}
