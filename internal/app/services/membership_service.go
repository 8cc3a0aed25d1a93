package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

// MembershipService runs the join-request workflow and club rosters.
//
// Per (user, club) the states are: no relation, pending request, member and
// rejected. A rejected request, or an approved one whose member later left,
// is replaced by a fresh pending request when the user asks again.
type MembershipService struct {
	clubs        repositories.IClubRepository
	memberships  repositories.IMembershipRepository
	joinRequests repositories.IJoinRequestRepository
	tx           db.Transactor
	policy       *authz.Policy
	logger       zerolog.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	clubs repositories.IClubRepository,
	memberships repositories.IMembershipRepository,
	joinRequests repositories.IJoinRequestRepository,
	tx db.Transactor,
	policy *authz.Policy,
	logger zerolog.Logger,
) *MembershipService {
	return &MembershipService{
		clubs:        clubs,
		memberships:  memberships,
		joinRequests: joinRequests,
		tx:           tx,
		policy:       policy,
		logger:       logger,
	}
}

// SubmitJoinRequest asks to join a club
func (s *MembershipService) SubmitJoinRequest(ctx context.Context, actor *models.User, clubID int64, message string) (*dto.JoinRequestResponse, error) {
	s.logger.Debug().Int64("userID", actor.ID).Int64("clubID", clubID).Msg("Submitting join request")

	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.IsApproved && !s.policy.IsAdmin(actor) {
		return nil, apperrors.ErrClubNotApproved
	}

	member, err := s.policy.IsClubMember(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, apperrors.ErrAlreadyMember
	}

	existing, err := s.joinRequests.GetByUserAndClub(ctx, actor.ID, clubID)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status() == models.JoinRequestPending {
		return nil, apperrors.ErrJoinRequestPending
	}

	jr := &models.ClubJoinRequest{
		UserID:   actor.ID,
		ClubID:   clubID,
		Message:  message,
		Username: actor.Username,
		ClubName: club.Name,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if existing != nil {
			// a concurrent resubmission already replaced the old row
			if err := s.joinRequests.Delete(ctx, existing.ID); errors.Is(err, apperrors.ErrJoinRequestNotFound) {
				return apperrors.ErrJoinRequestExists
			} else if err != nil {
				return err
			}
		}
		return s.joinRequests.Create(ctx, jr)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewJoinRequestResponse(jr)
	resp.Resubmitted = existing != nil
	s.logger.Info().Int64("requestID", jr.ID).Int64("clubID", clubID).Bool("resubmitted", resp.Resubmitted).Msg("Join request submitted")
	return &resp, nil
}

// HandleJoinRequest approves or rejects a pending request. Approval adds the
// requester as a regular member in the same transaction.
func (s *MembershipService) HandleJoinRequest(ctx context.Context, actor *models.User, requestID int64, action dto.JoinRequestAction) (*dto.JoinRequestResponse, error) {
	if action != dto.JoinRequestApprove && action != dto.JoinRequestReject {
		return nil, apperrors.NewValidationError("action must be approve or reject")
	}

	jr, err := s.joinRequests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionJoinRequestHandle, authz.Target{ClubID: jr.ClubID}); err != nil {
		return nil, err
	}
	if jr.Status() != models.JoinRequestPending {
		return nil, apperrors.ErrJoinRequestHandled
	}

	approve := action == dto.JoinRequestApprove
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.joinRequests.Resolve(ctx, jr.ID, approve); err != nil {
			return err
		}
		if !approve {
			return nil
		}
		return s.memberships.Create(ctx, &models.ClubMembership{
			UserID: jr.UserID,
			ClubID: jr.ClubID,
		})
	})
	if err != nil {
		return nil, err
	}

	jr.IsApproved = approve
	jr.IsRejected = !approve
	s.logger.Info().Int64("requestID", jr.ID).Str("action", string(action)).Int64("by", actor.ID).Msg("Join request handled")

	resp := dto.NewJoinRequestResponse(jr)
	return &resp, nil
}

// ListJoinRequests returns a club's pending requests, newest first
func (s *MembershipService) ListJoinRequests(ctx context.Context, actor *models.User, clubID int64) ([]dto.JoinRequestResponse, error) {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionJoinRequestList, authz.Target{ClubID: clubID}); err != nil {
		return nil, err
	}

	requests, err := s.joinRequests.ListPending(ctx, &clubID, 0)
	if err != nil {
		return nil, err
	}
	return dto.NewJoinRequestResponses(requests), nil
}

// LeaveClub removes the actor from a club. The last leader cannot leave.
func (s *MembershipService) LeaveClub(ctx context.Context, actor *models.User, clubID int64) error {
	s.logger.Debug().Int64("userID", actor.ID).Int64("clubID", clubID).Msg("Leaving club")

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		m, err := s.memberships.Get(ctx, clubID, actor.ID)
		if err != nil {
			return err
		}

		if m.IsLeader {
			leaders, err := s.memberships.LockLeaders(ctx, clubID)
			if err != nil {
				return err
			}
			if len(leaders) <= 1 {
				return apperrors.ErrSoleLeader
			}
		}

		return s.memberships.Delete(ctx, clubID, actor.ID)
	})
}

// PromoteMember makes an existing member a club leader
func (s *MembershipService) PromoteMember(ctx context.Context, actor *models.User, clubID, userID int64) error {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionMemberPromote, authz.Target{ClubID: clubID}); err != nil {
		return err
	}

	m, err := s.memberships.Get(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if m.IsLeader {
		return nil
	}

	if err := s.memberships.SetLeader(ctx, clubID, userID, true); err != nil {
		return err
	}
	s.logger.Info().Int64("clubID", clubID).Int64("userID", userID).Int64("by", actor.ID).Msg("Member promoted to leader")
	return nil
}

// ListMembers returns the roster, leaders first
func (s *MembershipService) ListMembers(ctx context.Context, actor *models.User, clubID int64) ([]dto.MemberResponse, error) {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}

	members, err := s.memberships.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return dto.NewMemberResponses(members), nil
}

// IsMember reports the actor's relation to a club
func (s *MembershipService) IsMember(ctx context.Context, actor *models.User, clubID int64) (*dto.MembershipStatusResponse, error) {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}

	resp := &dto.MembershipStatusResponse{ClubID: clubID}
	m, err := s.memberships.Get(ctx, clubID, actor.ID)
	switch {
	case err == nil:
		resp.IsMember = true
		resp.IsLeader = m.IsLeader
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return nil, err
	}
	return resp, nil
}
