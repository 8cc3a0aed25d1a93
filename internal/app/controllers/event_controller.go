package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/middleware"
)

// EventController handles events, teams and registrations
type EventController struct {
	eventService *services.EventService
	policy       *authz.Policy
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, policy *authz.Policy) *EventController {
	return &EventController{eventService: eventService, policy: policy}
}

// ListClubEvents returns a club's events by start date
// @Summary List club events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse}
// @Router /clubs/{id}/events [get]
func (c *EventController) ListClubEvents(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	events, err := c.eventService.ListClubEvents(ctx.Request.Context(), actor, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// Create schedules an event for a club
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.APIResponse "End date before start date"
// @Router /clubs/{id}/events [post]
func (c *EventController) Create(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), actor, clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewEventResponse(event, time.Now())))
}

// Upcoming lists events that have not started in the caller's clubs
// @Summary Upcoming events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse}
// @Router /events/upcoming [get]
func (c *EventController) Upcoming(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	events, err := c.eventService.Upcoming(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// Search matches events by title, description or location
// @Summary Search events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search text"
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse}
// @Router /events/search [get]
func (c *EventController) Search(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}

	var query dto.EventSearchQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	events, err := c.eventService.Search(ctx.Request.Context(), actor, query.Query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// Detail returns an event with participants and teams
// @Summary Get event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventDetailResponse}
// @Router /events/{id} [get]
func (c *EventController) Detail(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.Detail(ctx.Request.Context(), actor, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Update changes an event
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Router /events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Update(ctx.Request.Context(), actor, eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event, time.Now())))
}

// UpdateImage uploads an event image
// @Summary Upload event image
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param image formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Router /events/{id}/image [put]
func (c *EventController) UpdateImage(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	file, ok := requiredFile(ctx, "image")
	if !ok {
		return
	}

	event, err := c.eventService.UpdateImage(ctx.Request.Context(), actor, eventID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event, time.Now())))
}

// Delete removes an event
// @Summary Delete event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Router /events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Delete(ctx.Request.Context(), actor, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event deleted"))
}

// Register signs the caller up for an event
// @Summary Register for event
// @Description Team events need a teamId the caller belongs to. Registering twice returns 409.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.RegisterEventRequest false "Team"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse}
// @Failure 409 {object} dto.APIResponse "Already registered"
// @Router /events/{id}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RegisterEventRequest
	if ctx.Request.ContentLength > 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	reg, err := c.eventService.Register(ctx.Request.Context(), actor, eventID, req.TeamID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.RegistrationResponse{
		EventID:          reg.EventID,
		UserID:           reg.UserID,
		TeamID:           reg.TeamID,
		RegistrationDate: reg.RegistrationDate,
	}))
}

// Unregister cancels the caller's registration
// @Summary Cancel registration
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Router /events/{id}/register [delete]
func (c *EventController) Unregister(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Unregister(ctx.Request.Context(), actor, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Registration cancelled"))
}

// CreateTeam forms a team for a team event
// @Summary Create team
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.CreateTeamRequest true "Team"
// @Success 201 {object} dto.APIResponse{data=dto.TeamResponse}
// @Router /events/{id}/teams [post]
func (c *EventController) CreateTeam(ctx *gin.Context) {
	actor, ok := currentActor(ctx, c.policy)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	team, err := c.eventService.CreateTeam(ctx.Request.Context(), actor, eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewTeamResponse(team)))
}
