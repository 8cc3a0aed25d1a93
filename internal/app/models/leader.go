package models

import "time"

// LeaderActivity is the raw input of the leader ranking
type LeaderActivity struct {
	UserID          int64
	Username        string
	Email           string
	AccountCreated  time.Time
	RecentMessages  int64 // messages sent inside the communication window
	EventsOrganized int64 // events of clubs the leader created
	ClubsCount      int64 // clubs the leader created
	TotalMembers    int64 // members across those clubs
}

// LeaderScore is one ranked leader
type LeaderScore struct {
	Rank               int       `json:"rank" db:"rank"`
	UserID             int64     `json:"userId" db:"user_id"`
	Username           string    `json:"username" db:"username"`
	Email              string    `json:"email"`
	CommunicationScore float64   `json:"communicationScore" db:"communication_score"`
	ExperienceScore    float64   `json:"experienceScore" db:"experience_score"`
	EventsScore        float64   `json:"eventsScore" db:"events_score"`
	TotalScore         float64   `json:"totalScore" db:"total_score"`
	ClubsCount         int64     `json:"clubsCount"`
	TotalMembers       int64     `json:"totalMembers"`
	AccountAgeMonths   int       `json:"accountAgeMonths"`
	ComputedAt         time.Time `json:"computedAt" db:"computed_at"`
}

// DashboardStats summarises the platform for admins
type DashboardStats struct {
	TotalUsers          int64          `json:"totalUsers"`
	TotalClubs          int64          `json:"totalClubs"`
	ApprovedClubs       int64          `json:"approvedClubs"`
	PendingClubs        int64          `json:"pendingClubs"`
	TotalEvents         int64          `json:"totalEvents"`
	UpcomingEvents      int64          `json:"upcomingEvents"`
	TotalMessages       int64          `json:"totalMessages"`
	PendingJoinRequests int64          `json:"pendingJoinRequests"`
	RoleCounts          map[Role]int64 `json:"roleCounts"`
}

// ClubStat is a club with one aggregated figure, used for dashboard top lists
type ClubStat struct {
	ClubID int64  `json:"clubId"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}
