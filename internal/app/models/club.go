package models

import "time"

// Club is owned by its creator until an admin approves or rejects it
type Club struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	IsApproved  bool      `json:"isApproved" db:"is_approved"`
	ApprovedBy  *int64    `json:"approvedBy,omitempty" db:"approved_by"`
	Logo        *string   `json:"logo,omitempty" db:"logo"`

	MemberCount int64 `json:"memberCount" db:"member_count"`
}

// ClubMembership links a user to a club
type ClubMembership struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	ClubID     int64     `json:"clubId" db:"club_id"`
	DateJoined time.Time `json:"dateJoined" db:"date_joined"`
	IsLeader   bool      `json:"isLeader" db:"is_leader"`

	Username string `json:"username,omitempty" db:"username"`
}

// ClubJoinRequest is a user's proposal to become a club member
type ClubJoinRequest struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	ClubID     int64     `json:"clubId" db:"club_id"`
	Message    string    `json:"message" db:"message"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	IsApproved bool      `json:"isApproved" db:"is_approved"`
	IsRejected bool      `json:"isRejected" db:"is_rejected"`

	Username string `json:"username,omitempty" db:"username"`
	ClubName string `json:"clubName,omitempty" db:"club_name"`
}

// JoinRequestStatus is the derived state of a join request
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// Status derives the request state from its two flags
func (r *ClubJoinRequest) Status() JoinRequestStatus {
	switch {
	case r.IsApproved:
		return JoinRequestApproved
	case r.IsRejected:
		return JoinRequestRejected
	default:
		return JoinRequestPending
	}
}

// ClubFilter narrows a club listing. Empty filter means every club.
type ClubFilter struct {
	CreatedBy       *int64 // clubs created by this user
	MemberID        *int64 // clubs this user belongs to
	IncludeApproved bool   // also every approved club
	LeaderID        *int64 // only clubs this user leads
	ApprovedOnly    *bool  // restrict on approval state
	Search          string // case-insensitive match on name or description
}

// ClubDeletionSummary counts the rows removed together with a club
type ClubDeletionSummary struct {
	Memberships   int64 `json:"memberships"`
	JoinRequests  int64 `json:"joinRequests"`
	Events        int64 `json:"events"`
	Teams         int64 `json:"teams"`
	Registrations int64 `json:"registrations"`
	Messages      int64 `json:"messages"`
}
