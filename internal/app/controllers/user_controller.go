package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/middleware"
)

// UserController handles profile endpoints and admin user management
type UserController struct {
	userService   *services.UserService
	leaderService *services.LeaderService
	policy        *authz.Policy
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, leaderService *services.LeaderService, policy *authz.Policy) *UserController {
	return &UserController{
		userService:   userService,
		leaderService: leaderService,
		policy:        policy,
	}
}

// GetProfile returns the caller's profile and clubs
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	profile, err := c.userService.GetProfile(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfile changes the caller's profile fields
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=models.UserProfile}
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.userService.UpdateProfile(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfilePicture replaces the caller's picture
// @Summary Upload profile picture
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param picture formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=models.UserProfile}
// @Router /users/me/picture [put]
func (c *UserController) UpdateProfilePicture(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	file, ok := requiredFile(ctx, "picture")
	if !ok {
		return
	}

	profile, err := c.userService.UpdateProfilePicture(ctx.Request.Context(), actor, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// GetUser returns any user's profile. Admin only.
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 403 {object} dto.APIResponse
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.userService.GetUser(ctx.Request.Context(), actor, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// LeaderDetails returns a club leader's public page
// @Summary Get leader details
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.LeaderDetailsResponse}
// @Failure 404 {object} dto.APIResponse "User leads no club"
// @Router /users/{id}/leader [get]
func (c *UserController) LeaderDetails(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	details, err := c.userService.LeaderDetails(ctx.Request.Context(), actor, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(details))
}

// PromoteToAdmin raises a leader to admin
// @Summary Promote leader to admin
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 409 {object} dto.APIResponse "User is not a leader"
// @Router /users/{id}/promote [post]
func (c *UserController) PromoteToAdmin(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.leaderService.PromoteToAdmin(ctx.Request.Context(), actor, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}
