package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/middleware"
)

// MembershipController handles rosters and the join-request workflow
type MembershipController struct {
	membershipService *services.MembershipService
	policy            *authz.Policy
}

// NewMembershipController creates a new MembershipController
func NewMembershipController(membershipService *services.MembershipService, policy *authz.Policy) *MembershipController {
	return &MembershipController{membershipService: membershipService, policy: policy}
}

// ListMembers returns a club roster, leaders first
// @Summary List club members
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MemberResponse}
// @Router /clubs/{id}/members [get]
func (c *MembershipController) ListMembers(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	members, err := c.membershipService.ListMembers(ctx.Request.Context(), actor, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// Status reports whether the caller belongs to a club
// @Summary Membership status
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.MembershipStatusResponse}
// @Router /clubs/{id}/membership [get]
func (c *MembershipController) Status(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, err := c.membershipService.IsMember(ctx.Request.Context(), actor, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// Leave removes the caller from a club
// @Summary Leave club
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Caller is the only leader"
// @Router /clubs/{id}/leave [post]
func (c *MembershipController) Leave(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.membershipService.LeaveClub(ctx.Request.Context(), actor, clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("You have left the club"))
}

// PromoteMember makes a member a club leader
// @Summary Make leader
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Router /clubs/{id}/members/{userId}/leader [post]
func (c *MembershipController) PromoteMember(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.membershipService.PromoteMember(ctx.Request.Context(), actor, clubID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Member promoted to leader"))
}

// SubmitJoinRequest asks to join a club
// @Summary Request to join
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.JoinRequestCreate false "Optional note"
// @Success 201 {object} dto.APIResponse{data=dto.JoinRequestResponse}
// @Failure 409 {object} dto.APIResponse "Already a member or request pending"
// @Router /clubs/{id}/join-requests [post]
func (c *MembershipController) SubmitJoinRequest(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.JoinRequestCreate
	if ctx.Request.ContentLength > 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.membershipService.SubmitJoinRequest(ctx.Request.Context(), actor, clubID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ListJoinRequests returns a club's pending requests
// @Summary List join requests
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.JoinRequestResponse}
// @Router /clubs/{id}/join-requests [get]
func (c *MembershipController) ListJoinRequests(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.membershipService.ListJoinRequests(ctx.Request.Context(), actor, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ApproveJoinRequest accepts a pending request
// @Summary Approve join request
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Join request ID"
// @Success 200 {object} dto.APIResponse{data=dto.JoinRequestResponse}
// @Router /join-requests/{id}/approve [post]
func (c *MembershipController) ApproveJoinRequest(ctx *gin.Context) {
	c.handleJoinRequest(ctx, dto.JoinRequestApprove)
}

// RejectJoinRequest declines a pending request
// @Summary Reject join request
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Join request ID"
// @Success 200 {object} dto.APIResponse{data=dto.JoinRequestResponse}
// @Router /join-requests/{id}/reject [post]
func (c *MembershipController) RejectJoinRequest(ctx *gin.Context) {
	c.handleJoinRequest(ctx, dto.JoinRequestReject)
}

func (c *MembershipController) handleJoinRequest(ctx *gin.Context, action dto.JoinRequestAction) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.membershipService.HandleJoinRequest(ctx.Request.Context(), actor, requestID, action)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
