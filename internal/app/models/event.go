package models

import "time"

// Event is scheduled by a club. ClubID never changes after creation.
type Event struct {
	ID               int64            `json:"id" db:"id"`
	Title            string           `json:"title" db:"title"`
	Description      string           `json:"description" db:"description"`
	ClubID           int64            `json:"clubId" db:"club_id"`
	CreatedBy        int64            `json:"createdBy" db:"created_by"`
	StartDate        time.Time        `json:"startDate" db:"start_date"`
	EndDate          time.Time        `json:"endDate" db:"end_date"`
	Location         string           `json:"location" db:"location"`
	Image            *string          `json:"image,omitempty" db:"image"`
	RegistrationType RegistrationType `json:"registrationType" db:"registration_type"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`

	ClubName         string `json:"clubName,omitempty" db:"club_name"`
	ParticipantCount int64  `json:"participantCount" db:"participant_count"`
}

// IsClosed reports whether the event has ended at now
func (e *Event) IsClosed(now time.Time) bool {
	return now.After(e.EndDate)
}

// Team groups users registering together for a team event
type Team struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	EventID   int64     `json:"eventId" db:"event_id"`
	LeaderID  int64     `json:"leaderId" db:"leader_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	MemberIDs []int64   `json:"memberIds"`
}

// HasMember reports whether userID belongs to the team
func (t *Team) HasMember(userID int64) bool {
	if t.LeaderID == userID {
		return true
	}
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// EventRegistration records a user's participation in an event
type EventRegistration struct {
	ID               int64     `json:"id" db:"id"`
	EventID          int64     `json:"eventId" db:"event_id"`
	UserID           int64     `json:"userId" db:"user_id"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date"`
	TeamID           *int64    `json:"teamId,omitempty" db:"team_id"`

	Username string `json:"username,omitempty" db:"username"`
}

// EventFilter narrows event listings
type EventFilter struct {
	ClubID    *int64     // events of one club
	MemberID  *int64     // events of clubs this user belongs to
	StartFrom *time.Time // start_date >= StartFrom
	Search    string     // case-insensitive match on title, description or location
}
