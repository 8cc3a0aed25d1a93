package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/middleware"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

// currentActor loads the authenticated user. Permissions are always
// evaluated against the stored role, never the token's claim.
func currentActor(c *gin.Context, policy *authz.Policy) (*models.User, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthorized)
		return nil, false
	}

	actor, err := policy.LoadActor(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return nil, false
	}
	return actor, true
}

// parseIDParam reads a positive int64 path parameter
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// requiredFile reads a mandatory multipart file field
func requiredFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, field+" file is required").WithField(field)
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return file, true
}

// optionalFile reads a multipart file field that may be absent
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return file, err
}
