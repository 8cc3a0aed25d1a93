package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/filestorage"
)

// eventListLimit caps upcoming and search results
const eventListLimit = 50

// EventService manages events, teams and registrations
type EventService struct {
	clubs         repositories.IClubRepository
	memberships   repositories.IMembershipRepository
	events        repositories.IEventRepository
	registrations repositories.IRegistrationRepository
	teams         repositories.ITeamRepository
	tx            db.Transactor
	policy        *authz.Policy
	storage       filestorage.Storage
	logger        zerolog.Logger
	now           func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(
	clubs repositories.IClubRepository,
	memberships repositories.IMembershipRepository,
	events repositories.IEventRepository,
	registrations repositories.IRegistrationRepository,
	teams repositories.ITeamRepository,
	tx db.Transactor,
	policy *authz.Policy,
	storage filestorage.Storage,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		clubs:         clubs,
		memberships:   memberships,
		events:        events,
		registrations: registrations,
		teams:         teams,
		tx:            tx,
		policy:        policy,
		storage:       storage,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *EventService) getEvent(ctx context.Context, actor *models.User, eventID int64, action authz.Action) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, actor, action, authz.Target{ClubID: event.ClubID}); err != nil {
		return nil, err
	}
	return event, nil
}

// Create schedules an event for a club
func (s *EventService) Create(ctx context.Context, actor *models.User, clubID int64, req *dto.CreateEventRequest) (*models.Event, error) {
	s.logger.Debug().Int64("userID", actor.ID).Int64("clubID", clubID).Str("title", req.Title).Msg("Creating event")

	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionEventCreate, authz.Target{ClubID: clubID}); err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	regType := req.RegistrationType
	if regType == "" {
		regType = models.RegistrationIndividual
	}
	if !regType.Valid() {
		return nil, apperrors.NewValidationError("registration type must be individual or team")
	}

	event := &models.Event{
		Title:            req.Title,
		Description:      req.Description,
		ClubID:           clubID,
		CreatedBy:        actor.ID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Location:         req.Location,
		RegistrationType: regType,
		ClubName:         club.Name,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", event.ID).Int64("clubID", clubID).Msg("Event created")
	return event, nil
}

// Update changes an event. The hosting club cannot change.
func (s *EventService) Update(ctx context.Context, actor *models.User, eventID int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.getEvent(ctx, actor, eventID, authz.ActionEventUpdate)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.RegistrationType != nil {
		if !req.RegistrationType.Valid() {
			return nil, apperrors.NewValidationError("registration type must be individual or team")
		}
		event.RegistrationType = *req.RegistrationType
	}
	if event.EndDate.Before(event.StartDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateImage stores an uploaded event image and replaces the previous one
func (s *EventService) UpdateImage(ctx context.Context, actor *models.User, eventID int64, file *multipart.FileHeader) (*models.Event, error) {
	event, err := s.getEvent(ctx, actor, eventID, authz.ActionEventUpdate)
	if err != nil {
		return nil, err
	}

	ref, err := s.storage.Save(file, filestorage.FolderEventImages)
	if err != nil {
		return nil, err
	}

	previous := event.Image
	event.Image = &ref
	if err := s.events.Update(ctx, event); err != nil {
		s.deleteAsset(ref)
		return nil, err
	}
	if previous != nil {
		s.deleteAsset(*previous)
	}
	return event, nil
}

// Delete removes an event with its teams and registrations
func (s *EventService) Delete(ctx context.Context, actor *models.User, eventID int64) error {
	event, err := s.getEvent(ctx, actor, eventID, authz.ActionEventDelete)
	if err != nil {
		return err
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		return err
	}
	if event.Image != nil {
		s.deleteAsset(*event.Image)
	}

	s.logger.Info().Int64("eventID", eventID).Int64("by", actor.ID).Msg("Event deleted")
	return nil
}

// Detail returns an event with its participants and, for team events, its teams
func (s *EventService) Detail(ctx context.Context, actor *models.User, eventID int64) (*dto.EventDetailResponse, error) {
	event, err := s.getEvent(ctx, actor, eventID, authz.ActionEventView)
	if err != nil {
		return nil, err
	}

	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventDetailResponse{
		Event:        dto.NewEventResponse(event, s.now()),
		Participants: make([]dto.ParticipantResponse, 0, len(regs)),
	}
	for _, r := range regs {
		resp.Participants = append(resp.Participants, dto.ParticipantResponse{
			UserID:           r.UserID,
			Username:         r.Username,
			RegistrationDate: r.RegistrationDate,
			TeamID:           r.TeamID,
		})
		if r.UserID == actor.ID {
			resp.IsRegistered = true
		}
	}

	if event.RegistrationType == models.RegistrationTeam {
		teams, err := s.teams.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		for _, t := range teams {
			resp.Teams = append(resp.Teams, dto.NewTeamResponse(t))
		}
	}

	return resp, nil
}

// Register signs the actor up for an event. Registering twice is
// ErrAlreadyRegistered and leaves the first registration untouched.
func (s *EventService) Register(ctx context.Context, actor *models.User, eventID int64, teamID *int64) (*models.EventRegistration, error) {
	s.logger.Debug().Int64("userID", actor.ID).Int64("eventID", eventID).Msg("Registering for event")

	event, err := s.getEvent(ctx, actor, eventID, authz.ActionEventRegister)
	if err != nil {
		return nil, err
	}

	_, err = s.registrations.Get(ctx, eventID, actor.ID)
	if err == nil {
		return nil, apperrors.ErrAlreadyRegistered
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	switch event.RegistrationType {
	case models.RegistrationTeam:
		if teamID == nil {
			return nil, apperrors.NewValidationError("this event requires registering with a team")
		}
		team, err := s.teams.GetByID(ctx, *teamID)
		if err != nil {
			return nil, err
		}
		if team.EventID != eventID {
			return nil, apperrors.NewValidationError("team does not belong to this event")
		}
		if !team.HasMember(actor.ID) {
			return nil, apperrors.NewValidationError("you are not a member of this team")
		}
	default:
		if teamID != nil {
			return nil, apperrors.NewValidationError("this event takes individual registrations only")
		}
	}

	reg := &models.EventRegistration{
		EventID:  eventID,
		UserID:   actor.ID,
		TeamID:   teamID,
		Username: actor.Username,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Unregister removes the actor's own registration
func (s *EventService) Unregister(ctx context.Context, actor *models.User, eventID int64) error {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.registrations.Delete(ctx, eventID, actor.ID)
}

// CreateTeam forms a team for a team event with the actor as team leader.
// Every listed member must belong to the hosting club.
func (s *EventService) CreateTeam(ctx context.Context, actor *models.User, eventID int64, req *dto.CreateTeamRequest) (*models.Team, error) {
	event, err := s.getEvent(ctx, actor, eventID, authz.ActionTeamCreate)
	if err != nil {
		return nil, err
	}
	if event.RegistrationType != models.RegistrationTeam {
		return nil, apperrors.NewValidationError("teams can only be created for team events")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("team name is required")
	}

	for _, id := range req.MemberIDs {
		if id == actor.ID {
			continue
		}
		if _, err := s.memberships.Get(ctx, event.ClubID, id); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, apperrors.NewValidationError(fmt.Sprintf("user %d is not a member of this club", id))
			}
			return nil, err
		}
	}

	team := &models.Team{
		Name:      name,
		EventID:   eventID,
		LeaderID:  actor.ID,
		MemberIDs: req.MemberIDs,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.teams.Create(ctx, team)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// ListClubEvents returns every event of a club ordered by start date
func (s *EventService) ListClubEvents(ctx context.Context, actor *models.User, clubID int64) ([]dto.EventResponse, error) {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionEventView, authz.Target{ClubID: clubID}); err != nil {
		return nil, err
	}

	events, err := s.events.List(ctx, models.EventFilter{ClubID: &clubID}, 0)
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponses(events, s.now()), nil
}

// Upcoming returns events that have not started yet in the actor's clubs; all clubs for admins
func (s *EventService) Upcoming(ctx context.Context, actor *models.User) ([]dto.EventResponse, error) {
	now := s.now()
	filter := s.scopedFilter(actor)
	filter.StartFrom = &now

	events, err := s.events.List(ctx, filter, eventListLimit)
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponses(events, now), nil
}

// Search matches title, description and location, scoped like Upcoming
func (s *EventService) Search(ctx context.Context, actor *models.User, query string) ([]dto.EventResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}

	filter := s.scopedFilter(actor)
	filter.Search = query

	events, err := s.events.List(ctx, filter, eventListLimit)
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponses(events, s.now()), nil
}

func (s *EventService) scopedFilter(actor *models.User) models.EventFilter {
	if s.policy.IsAdmin(actor) {
		return models.EventFilter{}
	}
	return models.EventFilter{MemberID: &actor.ID}
}

func (s *EventService) deleteAsset(ref string) {
	if err := s.storage.Delete(ref); err != nil {
		s.logger.Warn().Err(err).Str("ref", ref).Msg("Failed to delete stored asset")
	}
}
