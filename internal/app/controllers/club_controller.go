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

// ClubController handles the club lifecycle
type ClubController struct {
	clubService *services.ClubService
	policy      *authz.Policy
}

// NewClubController creates a new ClubController
func NewClubController(clubService *services.ClubService, policy *authz.Policy) *ClubController {
	return &ClubController{clubService: clubService, policy: policy}
}

func bindClubListQuery(ctx *gin.Context) (*dto.ClubListQuery, bool) {
	var query dto.ClubListQuery
	if !middleware.BindQuery(ctx, &query) {
		return nil, false
	}
	query.Page, query.PageSize = helpers.ParsePaginationParams(ctx)
	return &query, true
}

// List returns the clubs visible to the caller
// @Summary List clubs
// @Description Admins see every club, leaders their own and joined clubs, members approved clubs and their own.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or description contains"
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size (max 100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ClubListResponse}
// @Router /clubs [get]
func (c *ClubController) List(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	query, ok := bindClubListQuery(ctx)
	if !ok {
		return
	}

	resp, err := c.clubService.List(ctx.Request.Context(), actor, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListPending returns clubs awaiting approval. Admin only.
// @Summary List pending clubs
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ClubListResponse}
// @Router /clubs/pending [get]
func (c *ClubController) ListPending(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	query, ok := bindClubListQuery(ctx)
	if !ok {
		return
	}

	resp, err := c.clubService.ListPending(ctx.Request.Context(), actor, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Create registers a new club with the caller as its first leader
// @Summary Create club
// @Description Leaders create pending clubs; clubs created by admins are approved immediately.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club"
// @Success 201 {object} dto.APIResponse{data=dto.ClubResponse}
// @Failure 403 {object} dto.APIResponse
// @Router /clubs [post]
func (c *ClubController) Create(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	var req dto.CreateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	club, err := c.clubService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewClubResponse(club)))
}

// Detail returns a club with roster, pending requests and upcoming events
// @Summary Get club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubDetailResponse}
// @Failure 404 {object} dto.APIResponse
// @Router /clubs/{id} [get]
func (c *ClubController) Detail(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.clubService.Detail(ctx.Request.Context(), actor, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Update changes a club's name or description
// @Summary Update club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.UpdateClubRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ClubResponse}
// @Router /clubs/{id} [put]
func (c *ClubController) Update(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	club, err := c.clubService.Update(ctx.Request.Context(), actor, clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewClubResponse(club)))
}

// UpdateLogo uploads a new club logo
// @Summary Upload club logo
// @Tags clubs
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param logo formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.ClubResponse}
// @Router /clubs/{id}/logo [put]
func (c *ClubController) UpdateLogo(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	file, ok := requiredFile(ctx, "logo")
	if !ok {
		return
	}

	club, err := c.clubService.UpdateLogo(ctx.Request.Context(), actor, clubID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewClubResponse(club)))
}

// Approve publishes a pending club. Admin only.
// @Summary Approve club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubResponse}
// @Router /clubs/{id}/approve [post]
func (c *ClubController) Approve(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	club, err := c.clubService.Approve(ctx.Request.Context(), actor, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewClubResponse(club)))
}

// Reject deletes a club together with everything that belongs to it. Admin only.
// @Summary Reject club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubDeletionResponse}
// @Router /clubs/{id}/reject [post]
func (c *ClubController) Reject(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.clubService.Reject(ctx.Request.Context(), actor, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ClubDeletionResponse{ClubID: clubID, Removed: *summary}))
}
