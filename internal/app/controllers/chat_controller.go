package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
	"github.com/uisgo/uisgo-backend/internal/pkg/helpers"
)

// ChatController handles assistant chat sessions and messages
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// CreateSession starts a new chat session
// @Summary Create a chat session
// @Description Starts a new assistant conversation for the caller
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChatSessionRequest true "Session data"
// @Success 201 {object} dto.APIResponse{data=dto.ChatSessionResponse} "Session created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/sessions [post]
func (c *ChatController) CreateSession(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateChatSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid session data")
		return
	}

	session, err := c.chatService.CreateSession(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, session)
}

// ListSessions lists the caller's chat sessions
// @Summary List chat sessions
// @Description Returns the caller's conversations, newest first
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Sessions retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/sessions [get]
func (c *ChatController) ListSessions(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx)

	sessions, total, err := c.chatService.ListSessions(ctx, userID, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPaginated(ctx, sessions, total, limit, offset)
}

// ListMessages lists the messages of a session
// @Summary List session messages
// @Description Returns the messages of one of the caller's conversations in chronological order
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Messages retrieved"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/sessions/{id}/messages [get]
func (c *ChatController) ListMessages(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx)

	messages, total, err := c.chatService.ListMessages(ctx, userID, sessionID, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPaginated(ctx, messages, total, limit, offset)
}

// SendMessage sends a message and returns the assistant reply
// @Summary Send a chat message
// @Description Sends a message to the assistant. The reply costs coins, charged only when the assistant answers.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.SendChatMessageRequest true "Message"
// @Success 200 {object} dto.APIResponse{data=dto.SendChatMessageResponse} "Reply generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Insufficient coins"
// @Failure 502 {object} dto.ErrorResponse "Assistant unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/sessions/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid message data")
		return
	}

	result, err := c.chatService.SendMessage(ctx, userID, sessionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, result)
}
