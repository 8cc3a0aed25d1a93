package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/middleware"
)

// AdminController serves the admin dashboard and leader rankings
type AdminController struct {
	adminService  *services.AdminService
	leaderService *services.LeaderService
	policy        *authz.Policy
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, leaderService *services.LeaderService, policy *authz.Policy) *AdminController {
	return &AdminController{
		adminService:  adminService,
		leaderService: leaderService,
		policy:        policy,
	}
}

// Dashboard returns platform statistics
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	resp, err := c.adminService.Dashboard(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Leaders ranks leaders for promotion, computed now
// @Summary Leader candidates
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.LeaderCandidatesResponse}
// @Router /admin/leaders [get]
func (c *AdminController) Leaders(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	resp, err := c.leaderService.Candidates(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// LatestSnapshot returns the last ranking stored by the leaderboard job
// @Summary Stored leader ranking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.LeaderCandidatesResponse}
// @Router /admin/leaders/snapshot [get]
func (c *AdminController) LatestSnapshot(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	resp, err := c.leaderService.LatestSnapshot(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
