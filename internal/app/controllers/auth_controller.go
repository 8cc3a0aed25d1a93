// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/middleware"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/filestorage"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	storage     filestorage.Storage
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, storage filestorage.Storage, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		storage:     storage,
		logger:      logger,
	}
}

// leaderDocumentFields are the multipart fields accepted for leader credentials
var leaderDocumentFields = []string{"experienceDoc", "achievementsDoc", "certificatesDoc", "educationDoc"}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a leader or member account and logs it in. Leaders may attach credential documents as multipart fields.
// @Tags auth
// @Accept json,mpfd
// @Produce json
// @Param request body dto.RegisterRequest true "User registration information"
// @Success 201 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 400 {object} dto.APIResponse "Invalid request, password mismatch, taken username or invalid role"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindForm(ctx, &req) {
		return
	}

	var stored []string
	if req.Role == models.RoleLeader && strings.HasPrefix(ctx.ContentType(), "multipart/") {
		docs, refs, err := c.saveLeaderDocuments(ctx)
		if err != nil {
			c.cleanup(refs)
			middleware.HandleAPIError(ctx, err)
			return
		}
		req.Documents = docs
		stored = refs
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.cleanup(stored)
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

func (c *AuthController) saveLeaderDocuments(ctx *gin.Context) (dto.LeaderDocuments, []string, error) {
	var docs dto.LeaderDocuments
	targets := []**string{&docs.Experience, &docs.Achievements, &docs.Certificates, &docs.Education}

	var refs []string
	for i, field := range leaderDocumentFields {
		file, err := optionalFile(ctx, field)
		if err != nil {
			return docs, refs, apperrors.NewValidationError("could not read " + field)
		}
		if file == nil {
			continue
		}

		ref, err := c.storage.Save(file, filestorage.FolderLeaderDocuments)
		if err != nil {
			return docs, refs, err
		}
		refs = append(refs, ref)
		*targets[i] = &ref
	}
	return docs, refs, nil
}

func (c *AuthController) cleanup(refs []string) {
	for _, ref := range refs {
		if err := c.storage.Delete(ref); err != nil {
			c.logger.Warn().Err(err).Str("ref", ref).Msg("Failed to delete uploaded document")
		}
	}
}

// Login handles user login
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RefreshToken handles refresh token request
// @Summary Refresh access token
// @Description Exchanges a refresh token for a new pair. The presented token is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.APIResponse "Invalid, expired or revoked refresh token"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Logout revokes a refresh token
// @Summary Logout
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}
