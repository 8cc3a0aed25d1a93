package dto

import (
	"time"

	"github.com/yigit/clubhub/internal/app/models"
)

// CreateEventRequest represents the event creation form
type CreateEventRequest struct {
	Title            string                  `json:"title" binding:"required,max=200" example:"Spring Tournament"`
	Description      string                  `json:"description" binding:"required"`
	StartDate        time.Time               `json:"startDate" binding:"required" example:"2025-05-01T10:00:00Z"`
	EndDate          time.Time               `json:"endDate" binding:"required" example:"2025-05-01T18:00:00Z"`
	Location         string                  `json:"location" binding:"required,max=200" example:"Main Hall"`
	RegistrationType models.RegistrationType `json:"registrationType" binding:"omitempty,oneof=individual team" example:"individual"`
}

// UpdateEventRequest changes an event. Nil fields are left alone; the club cannot change.
type UpdateEventRequest struct {
	Title            *string                  `json:"title" binding:"omitempty,max=200"`
	Description      *string                  `json:"description"`
	StartDate        *time.Time               `json:"startDate"`
	EndDate          *time.Time               `json:"endDate"`
	Location         *string                  `json:"location" binding:"omitempty,max=200"`
	RegistrationType *models.RegistrationType `json:"registrationType" binding:"omitempty,oneof=individual team"`
}

// EventResponse is the public view of an event
type EventResponse struct {
	ID               int64                   `json:"id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	ClubID           int64                   `json:"clubId"`
	ClubName         string                  `json:"clubName,omitempty"`
	CreatedBy        int64                   `json:"createdBy"`
	StartDate        time.Time               `json:"startDate"`
	EndDate          time.Time               `json:"endDate"`
	Location         string                  `json:"location"`
	Image            *string                 `json:"image,omitempty"`
	RegistrationType models.RegistrationType `json:"registrationType"`
	ParticipantCount int64                   `json:"participantCount"`
	IsClosed         bool                    `json:"isClosed"`
}

// NewEventResponse maps an event model as seen at now
func NewEventResponse(e *models.Event, now time.Time) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		ClubID:           e.ClubID,
		ClubName:         e.ClubName,
		CreatedBy:        e.CreatedBy,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		Location:         e.Location,
		Image:            e.Image,
		RegistrationType: e.RegistrationType,
		ParticipantCount: e.ParticipantCount,
		IsClosed:         e.IsClosed(now),
	}
}

// NewEventResponses maps a slice of events
func NewEventResponses(events []*models.Event, now time.Time) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventResponse(e, now))
	}
	return out
}

// EventDetailResponse is an event with its participants and teams
type EventDetailResponse struct {
	Event        EventResponse         `json:"event"`
	Participants []ParticipantResponse `json:"participants"`
	Teams        []TeamResponse        `json:"teams,omitempty"`
	IsRegistered bool                  `json:"isRegistered"`
}

// ParticipantResponse is one registration of an event
type ParticipantResponse struct {
	UserID           int64     `json:"userId"`
	Username         string    `json:"username"`
	RegistrationDate time.Time `json:"registrationDate"`
	TeamID           *int64    `json:"teamId,omitempty"`
}

// RegisterEventRequest selects the team for team-mode events
type RegisterEventRequest struct {
	TeamID *int64 `json:"teamId"`
}

// RegistrationResponse confirms a registration
type RegistrationResponse struct {
	EventID          int64     `json:"eventId"`
	UserID           int64     `json:"userId"`
	TeamID           *int64    `json:"teamId,omitempty"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// CreateTeamRequest represents the team creation form
type CreateTeamRequest struct {
	Name      string  `json:"name" binding:"required,max=100" example:"Knights"`
	MemberIDs []int64 `json:"memberIds" binding:"omitempty,max=50,dive,gt=0"`
}

// TeamResponse is the public view of a team
type TeamResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	EventID   int64   `json:"eventId"`
	LeaderID  int64   `json:"leaderId"`
	MemberIDs []int64 `json:"memberIds"`
}

// NewTeamResponse maps a team model
func NewTeamResponse(t *models.Team) TeamResponse {
	members := t.MemberIDs
	if members == nil {
		members = []int64{}
	}
	return TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		EventID:   t.EventID,
		LeaderID:  t.LeaderID,
		MemberIDs: members,
	}
}

// EventSearchQuery holds the search term
type EventSearchQuery struct {
	Query string `form:"q" binding:"required,min=1,max=100"`
}
