package dto

import (
	"time"

	"github.com/yigit/clubhub/internal/app/models"
)

// JoinRequestCreate is the optional note attached to a join request
type JoinRequestCreate struct {
	Message string `json:"message" binding:"max=1000" example:"I have been playing chess for years"`
}

// JoinRequestAction is what a leader does with a pending request
type JoinRequestAction string

const (
	JoinRequestApprove JoinRequestAction = "approve"
	JoinRequestReject  JoinRequestAction = "reject"
)

// JoinRequestResponse is the public view of a join request
type JoinRequestResponse struct {
	ID          int64                    `json:"id"`
	UserID      int64                    `json:"userId"`
	Username    string                   `json:"username,omitempty"`
	ClubID      int64                    `json:"clubId"`
	ClubName    string                   `json:"clubName,omitempty"`
	Message     string                   `json:"message"`
	CreatedAt   time.Time                `json:"createdAt"`
	Status      models.JoinRequestStatus `json:"status"`
	Resubmitted bool                     `json:"resubmitted,omitempty"`
}

// NewJoinRequestResponse maps a join request model
func NewJoinRequestResponse(r *models.ClubJoinRequest) JoinRequestResponse {
	return JoinRequestResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Username:  r.Username,
		ClubID:    r.ClubID,
		ClubName:  r.ClubName,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
		Status:    r.Status(),
	}
}

// NewJoinRequestResponses maps a slice of join requests
func NewJoinRequestResponses(requests []*models.ClubJoinRequest) []JoinRequestResponse {
	out := make([]JoinRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, NewJoinRequestResponse(r))
	}
	return out
}

// MemberResponse is one entry of a club roster
type MemberResponse struct {
	UserID     int64     `json:"userId"`
	Username   string    `json:"username"`
	DateJoined time.Time `json:"dateJoined"`
	IsLeader   bool      `json:"isLeader"`
}

// NewMemberResponses maps a roster
func NewMemberResponses(members []*models.ClubMembership) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, MemberResponse{
			UserID:     m.UserID,
			Username:   m.Username,
			DateJoined: m.DateJoined,
			IsLeader:   m.IsLeader,
		})
	}
	return out
}

// MembershipStatusResponse answers the "already member" check
type MembershipStatusResponse struct {
	ClubID   int64 `json:"clubId"`
	IsMember bool  `json:"isMember"`
	IsLeader bool  `json:"isLeader"`
}
