package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/filestorage"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

// clubDetailEventLimit is how many upcoming events a club page shows
const clubDetailEventLimit = 5

// ClubService handles the club lifecycle
type ClubService struct {
	clubs        repositories.IClubRepository
	memberships  repositories.IMembershipRepository
	joinRequests repositories.IJoinRequestRepository
	events       repositories.IEventRepository
	tx           db.Transactor
	policy       *authz.Policy
	storage      filestorage.Storage
	logger       zerolog.Logger
	now          func() time.Time
}

// NewClubService creates a new ClubService
func NewClubService(
	clubs repositories.IClubRepository,
	memberships repositories.IMembershipRepository,
	joinRequests repositories.IJoinRequestRepository,
	events repositories.IEventRepository,
	tx db.Transactor,
	policy *authz.Policy,
	storage filestorage.Storage,
	logger zerolog.Logger,
) *ClubService {
	return &ClubService{
		clubs:        clubs,
		memberships:  memberships,
		joinRequests: joinRequests,
		events:       events,
		tx:           tx,
		policy:       policy,
		storage:      storage,
		logger:       logger,
		now:          time.Now,
	}
}

// Create founds a club with the actor as its first leader.
// Clubs created by admins skip the approval step.
func (s *ClubService) Create(ctx context.Context, actor *models.User, req *dto.CreateClubRequest) (*models.Club, error) {
	s.logger.Debug().Int64("userID", actor.ID).Str("name", req.Name).Msg("Creating club")

	if err := s.policy.Authorize(ctx, actor, authz.ActionClubCreate, authz.Target{}); err != nil {
		return nil, err
	}

	club := &models.Club{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   actor.ID,
	}
	if s.policy.IsAdmin(actor) {
		club.IsApproved = true
		club.ApprovedBy = &actor.ID
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.clubs.Create(ctx, club); err != nil {
			return err
		}
		return s.memberships.Create(ctx, &models.ClubMembership{
			UserID:   actor.ID,
			ClubID:   club.ID,
			IsLeader: true,
		})
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", actor.ID).Msg("Failed to create club")
		return nil, err
	}

	club.MemberCount = 1
	s.logger.Info().Int64("clubID", club.ID).Bool("approved", club.IsApproved).Msg("Club created")
	return club, nil
}

// Approve makes a pending club visible. Admin only.
func (s *ClubService) Approve(ctx context.Context, actor *models.User, clubID int64) (*models.Club, error) {
	if err := s.policy.Authorize(ctx, actor, authz.ActionClubApprove, authz.Target{ClubID: clubID}); err != nil {
		return nil, err
	}

	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.IsApproved {
		return club, nil
	}

	if err := s.clubs.Approve(ctx, clubID, actor.ID); err != nil {
		return nil, err
	}

	club.IsApproved = true
	club.ApprovedBy = &actor.ID
	s.logger.Info().Int64("clubID", clubID).Int64("adminID", actor.ID).Msg("Club approved")
	return club, nil
}

// Reject deletes a club and everything it owns. Admin only.
func (s *ClubService) Reject(ctx context.Context, actor *models.User, clubID int64) (*models.ClubDeletionSummary, error) {
	if err := s.policy.Authorize(ctx, actor, authz.ActionClubReject, authz.Target{ClubID: clubID}); err != nil {
		return nil, err
	}

	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}

	var summary *models.ClubDeletionSummary
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		summary, err = s.clubs.DeleteCascade(ctx, clubID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if club.Logo != nil {
		s.deleteAsset(*club.Logo)
	}

	s.logger.Info().Int64("clubID", clubID).
		Int64("memberships", summary.Memberships).
		Int64("events", summary.Events).
		Msg("Club rejected and deleted")
	return summary, nil
}

// Update changes name and description. Club leaders and admins only.
func (s *ClubService) Update(ctx context.Context, actor *models.User, clubID int64, req *dto.UpdateClubRequest) (*models.Club, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionClubUpdate, authz.Target{ClubID: clubID}); err != nil {
		return nil, err
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Description != nil {
		club.Description = *req.Description
	}

	if err := s.clubs.Update(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

// UpdateLogo stores an uploaded logo and replaces the previous one
func (s *ClubService) UpdateLogo(ctx context.Context, actor *models.User, clubID int64, file *multipart.FileHeader) (*models.Club, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionClubUpdate, authz.Target{ClubID: clubID}); err != nil {
		return nil, err
	}

	ref, err := s.storage.Save(file, filestorage.FolderClubLogos)
	if err != nil {
		return nil, err
	}

	previous := club.Logo
	club.Logo = &ref
	if err := s.clubs.Update(ctx, club); err != nil {
		s.deleteAsset(ref)
		return nil, err
	}

	if previous != nil {
		s.deleteAsset(*previous)
	}
	return club, nil
}

// List returns the clubs the actor may see, optionally filtered by a search term.
// Admins see every club, leaders the clubs they created or joined, members the
// clubs they joined plus every approved club.
func (s *ClubService) List(ctx context.Context, actor *models.User, query *dto.ClubListQuery) (*dto.ClubListResponse, error) {
	filter := models.ClubFilter{Search: query.Search}
	switch {
	case s.policy.IsAdmin(actor):
	case actor.Role == models.RoleLeader:
		filter.CreatedBy = &actor.ID
		filter.MemberID = &actor.ID
	default:
		filter.MemberID = &actor.ID
		filter.IncludeApproved = true
	}

	return s.list(ctx, filter, query.Page, query.PageSize)
}

// ListPending returns clubs waiting for approval. Admin only.
func (s *ClubService) ListPending(ctx context.Context, actor *models.User, query *dto.ClubListQuery) (*dto.ClubListResponse, error) {
	if err := s.policy.Authorize(ctx, actor, authz.ActionClubListPending, authz.Target{}); err != nil {
		return nil, err
	}

	approved := false
	return s.list(ctx, models.ClubFilter{ApprovedOnly: &approved, Search: query.Search}, query.Page, query.PageSize)
}

func (s *ClubService) list(ctx context.Context, filter models.ClubFilter, page, size int) (*dto.ClubListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	clubs, total, err := s.clubs.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.ClubListResponse{
		Clubs:      dto.NewClubResponses(clubs),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Detail returns a club page: roster, upcoming events and the actor's relation
// to the club. Unapproved clubs are hidden from everyone but admins and members.
func (s *ClubService) Detail(ctx context.Context, actor *models.User, clubID int64) (*dto.ClubDetailResponse, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberships.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClubDetailResponse{
		Club:    dto.NewClubResponse(club),
		Members: dto.NewMemberResponses(members),
	}
	for _, m := range members {
		if m.UserID == actor.ID {
			resp.IsMember = true
			resp.IsLeader = m.IsLeader
		}
	}

	isAdmin := s.policy.IsAdmin(actor)
	if !club.IsApproved && !isAdmin && !resp.IsMember {
		return nil, apperrors.ErrClubNotFound
	}

	if !resp.IsMember {
		jr, err := s.joinRequests.GetByUserAndClub(ctx, actor.ID, clubID)
		switch {
		case err == nil:
			resp.HasPendingRequest = jr.Status() == models.JoinRequestPending
		case !errors.Is(err, apperrors.ErrResourceNotFound):
			return nil, err
		}
	}

	if isAdmin || resp.IsLeader {
		pending, err := s.joinRequests.ListPending(ctx, &clubID, 0)
		if err != nil {
			return nil, err
		}
		resp.PendingRequests = dto.NewJoinRequestResponses(pending)
	}

	now := s.now()
	events, err := s.events.List(ctx, models.EventFilter{ClubID: &clubID, StartFrom: &now}, clubDetailEventLimit)
	if err != nil {
		return nil, err
	}
	resp.UpcomingEvents = dto.NewEventResponses(events, now)

	return resp, nil
}

func (s *ClubService) deleteAsset(ref string) {
	if err := s.storage.Delete(ref); err != nil {
		s.logger.Warn().Err(err).Str("ref", ref).Msg("Failed to delete stored asset")
	}
}
