package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
)

// searchClubLimit caps the clubs returned by a combined search
const searchClubLimit = 20

// SearchService searches clubs and events together, each scoped the way its
// own listing is
type SearchService struct {
	clubs  *ClubService
	events *EventService
	logger zerolog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(clubs *ClubService, events *EventService, logger zerolog.Logger) *SearchService {
	return &SearchService{
		clubs:  clubs,
		events: events,
		logger: logger,
	}
}

// Search matches clubs by name or description and events by title,
// description or location
func (s *SearchService) Search(ctx context.Context, actor *models.User, query string) (*dto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	resp := &dto.SearchResponse{
		Query:  query,
		Clubs:  []dto.ClubResponse{},
		Events: []dto.EventResponse{},
	}
	if query == "" {
		return resp, nil
	}

	clubs, err := s.clubs.List(ctx, actor, &dto.ClubListQuery{Search: query, Page: 1, PageSize: searchClubLimit})
	if err != nil {
		return nil, err
	}
	events, err := s.events.Search(ctx, actor, query)
	if err != nil {
		return nil, err
	}

	resp.Clubs = clubs.Clubs
	if events != nil {
		resp.Events = events
	}
	s.logger.Debug().Int64("actorID", actor.ID).Int("clubs", len(resp.Clubs)).Int("events", len(resp.Events)).Msg("Search served")
	return resp, nil
}
