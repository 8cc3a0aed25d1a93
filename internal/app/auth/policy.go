// Package auth decides what an actor may do. Every check reads the role stored
// on the actor's profile and the club roster, never token claims.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/logger"
)

// Action names a guarded operation
type Action string

const (
	ActionClubCreate      Action = "club.create"
	ActionClubApprove     Action = "club.approve"
	ActionClubReject      Action = "club.reject"
	ActionClubListPending Action = "club.list_pending"
	ActionClubUpdate      Action = "club.update"

	ActionJoinRequestHandle Action = "join_request.handle"
	ActionJoinRequestList   Action = "join_request.list"
	ActionMemberPromote     Action = "member.promote"

	ActionEventCreate   Action = "event.create"
	ActionEventUpdate   Action = "event.update"
	ActionEventDelete   Action = "event.delete"
	ActionEventView     Action = "event.view"
	ActionEventRegister Action = "event.register"
	ActionTeamCreate    Action = "team.create"

	ActionMessageList   Action = "message.list"
	ActionMessagePost   Action = "message.post"
	ActionMessageDelete Action = "message.delete"

	ActionUserView      Action = "user.view"
	ActionPromoteAdmin  Action = "user.promote_admin"
	ActionLeaderRank    Action = "leader.rank"
	ActionDashboardView Action = "dashboard.view"
)

// Target identifies what an action applies to. ClubID scopes leader and member
// checks; OwnerID is the author of the resource, when it has one.
type Target struct {
	ClubID  int64
	OwnerID int64
}

// Policy answers capability questions for an actor
type Policy struct {
	users       repositories.IUserRepository
	memberships repositories.IMembershipRepository
	logger      zerolog.Logger
}

// NewPolicy creates a Policy
func NewPolicy(users repositories.IUserRepository, memberships repositories.IMembershipRepository) *Policy {
	return &Policy{
		users:       users,
		memberships: memberships,
		logger:      logger.Component("policy"),
	}
}

// LoadActor resolves an authenticated user id to the stored user and role.
// An id that no longer exists is treated as unauthenticated.
func (p *Policy) LoadActor(ctx context.Context, userID int64) (*models.User, error) {
	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	return user, nil
}

// IsAdmin reports whether actor holds the admin role
func (p *Policy) IsAdmin(actor *models.User) bool {
	return actor != nil && actor.Role == models.RoleAdmin
}

// IsOwner reports whether actor authored the resource owned by ownerID
func (p *Policy) IsOwner(actor *models.User, ownerID int64) bool {
	return actor != nil && ownerID != 0 && actor.ID == ownerID
}

// IsClubMember reports whether actor has a membership row in clubID
func (p *Policy) IsClubMember(ctx context.Context, actor *models.User, clubID int64) (bool, error) {
	m, err := p.membership(ctx, actor, clubID)
	return m != nil, err
}

// IsClubLeader reports whether actor leads clubID
func (p *Policy) IsClubLeader(ctx context.Context, actor *models.User, clubID int64) (bool, error) {
	m, err := p.membership(ctx, actor, clubID)
	return m != nil && m.IsLeader, err
}

func (p *Policy) membership(ctx context.Context, actor *models.User, clubID int64) (*models.ClubMembership, error) {
	if actor == nil {
		return nil, nil
	}
	m, err := p.memberships.Get(ctx, clubID, actor.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	return m, nil
}

// Can evaluates action for actor against target
func (p *Policy) Can(ctx context.Context, actor *models.User, action Action, target Target) (bool, error) {
	if actor == nil {
		return false, nil
	}
	if p.IsAdmin(actor) {
		return isKnown(action), nil
	}

	switch action {
	case ActionClubCreate:
		return actor.Role == models.RoleLeader, nil

	case ActionClubApprove, ActionClubReject, ActionClubListPending,
		ActionUserView, ActionPromoteAdmin, ActionLeaderRank, ActionDashboardView:
		return false, nil

	case ActionClubUpdate, ActionJoinRequestHandle, ActionJoinRequestList, ActionMemberPromote,
		ActionEventCreate, ActionEventUpdate, ActionEventDelete:
		return p.IsClubLeader(ctx, actor, target.ClubID)

	case ActionEventView, ActionEventRegister, ActionTeamCreate, ActionMessageList, ActionMessagePost:
		return p.IsClubMember(ctx, actor, target.ClubID)

	case ActionMessageDelete:
		if p.IsOwner(actor, target.OwnerID) {
			return true, nil
		}
		return p.IsClubLeader(ctx, actor, target.ClubID)
	}

	p.logger.Warn().Str("action", string(action)).Msg("Unknown action denied")
	return false, nil
}

// Authorize is Can with a denial turned into ErrPermissionDenied
func (p *Policy) Authorize(ctx context.Context, actor *models.User, action Action, target Target) error {
	ok, err := p.Can(ctx, actor, action, target)
	if err != nil {
		return err
	}
	if !ok {
		uid := int64(0)
		if actor != nil {
			uid = actor.ID
		}
		p.logger.Debug().Int64("userID", uid).Str("action", string(action)).Int64("clubID", target.ClubID).Msg("Permission denied")
		return fmt.Errorf("%w: %s", apperrors.ErrPermissionDenied, action)
	}
	return nil
}

func isKnown(action Action) bool {
	switch action {
	case ActionClubCreate, ActionClubApprove, ActionClubReject, ActionClubListPending, ActionClubUpdate,
		ActionJoinRequestHandle, ActionJoinRequestList, ActionMemberPromote,
		ActionEventCreate, ActionEventUpdate, ActionEventDelete, ActionEventView, ActionEventRegister, ActionTeamCreate,
		ActionMessageList, ActionMessagePost, ActionMessageDelete,
		ActionUserView, ActionPromoteAdmin, ActionLeaderRank, ActionDashboardView:
		return true
	}
	return false
}
