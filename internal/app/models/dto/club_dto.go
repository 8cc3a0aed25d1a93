package dto

import (
	"time"

	"github.com/yigit/clubhub/internal/app/models"
)

// CreateClubRequest represents the club creation form
type CreateClubRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100" example:"Chess Club"`
	Description string `json:"description" binding:"required,max=5000" example:"Weekly games and tournaments"`
}

// UpdateClubRequest changes a club's editable fields. Nil fields are left alone.
type UpdateClubRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// ClubListQuery holds list parameters
type ClubListQuery struct {
	Search   string `form:"search" binding:"omitempty,max=100"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// ClubResponse is the public view of a club
type ClubResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	IsApproved  bool      `json:"isApproved"`
	ApprovedBy  *int64    `json:"approvedBy,omitempty"`
	Logo        *string   `json:"logo,omitempty"`
	MemberCount int64     `json:"memberCount"`
}

// NewClubResponse maps a club model
func NewClubResponse(c *models.Club) ClubResponse {
	return ClubResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		IsApproved:  c.IsApproved,
		ApprovedBy:  c.ApprovedBy,
		Logo:        c.Logo,
		MemberCount: c.MemberCount,
	}
}

// NewClubResponses maps a slice of clubs
func NewClubResponses(clubs []*models.Club) []ClubResponse {
	out := make([]ClubResponse, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, NewClubResponse(c))
	}
	return out
}

// ClubListResponse is one page of clubs
type ClubListResponse struct {
	Clubs      []ClubResponse `json:"clubs"`
	Pagination PaginationInfo `json:"pagination"`
}

// ClubDetailResponse is a club with its roster and the caller's relation to it
type ClubDetailResponse struct {
	Club              ClubResponse          `json:"club"`
	Members           []MemberResponse      `json:"members"`
	IsMember          bool                  `json:"isMember"`
	IsLeader          bool                  `json:"isLeader"`
	HasPendingRequest bool                  `json:"hasPendingRequest"`
	PendingRequests   []JoinRequestResponse `json:"pendingRequests,omitempty"`
	UpcomingEvents    []EventResponse       `json:"upcomingEvents"`
}

// ClubDeletionResponse reports what was removed with a rejected club
type ClubDeletionResponse struct {
	ClubID  int64                      `json:"clubId"`
	Removed models.ClubDeletionSummary `json:"removed"`
}
