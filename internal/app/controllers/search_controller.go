package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/middleware"
)

// SearchController serves the combined club and event search
type SearchController struct {
	searchService *services.SearchService
	policy        *authz.Policy
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService *services.SearchService, policy *authz.Policy) *SearchController {
	return &SearchController{
		searchService: searchService,
		policy:        policy,
	}
}

// Search matches clubs and events visible to the caller
// @Summary Search clubs and events
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Success 200 {object} dto.APIResponse{data=dto.SearchResponse}
// @Router /search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	var query dto.SearchQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	resp, err := c.searchService.Search(ctx.Request.Context(), actor, query.Query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
