package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/middleware"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

// MessageController handles club message boards
type MessageController struct {
	messageService *services.MessageService
	policy         *authz.Policy
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService, policy *authz.Policy) *MessageController {
	return &MessageController{messageService: messageService, policy: policy}
}

// List returns a page of a club's messages, newest first
// @Summary List club messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size (max 100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.MessageListResponse}
// @Router /clubs/{id}/messages [get]
func (c *MessageController) List(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.messageService.List(ctx.Request.Context(), actor, clubID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Post adds a message to a club board
// @Summary Post message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.PostMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /clubs/{id}/messages [post]
func (c *MessageController) Post(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PostMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.messageService.Post(ctx.Request.Context(), actor, clubID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewMessageResponseFromModel(msg)))
}

// Delete removes a message
// @Summary Delete message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse
// @Router /messages/{id} [delete]
func (c *MessageController) Delete(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	messageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.messageService.Delete(ctx.Request.Context(), actor, messageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Message deleted"))
}
