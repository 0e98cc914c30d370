package handlers

import (
	"net/http"

	"eventhire_backend/internal/services"
	"eventhire_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages", h.RequireAuth())
	{
		messages.POST("", h.SendMessage)
		messages.GET("/:userId", h.GetConversation)
	}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.messageService.SendMessage(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) GetConversation(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	otherID, err := ParseParamID(c, "userId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	messages, err := h.messageService.Conversation(c.Request.Context(), h.GetDB(c), actor, otherID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
