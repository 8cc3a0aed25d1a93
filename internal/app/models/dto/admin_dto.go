package dto

import (
	"time"

	"github.com/yigit/clubhub/internal/app/models"
)

// DashboardResponse is the admin overview page
type DashboardResponse struct {
	Stats               models.DashboardStats `json:"stats"`
	PopularClubs        []models.ClubStat     `json:"popularClubs"`
	ActiveClubs         []models.ClubStat     `json:"activeClubs"`
	PendingClubs        []ClubResponse        `json:"pendingClubs"`
	PendingJoinRequests []JoinRequestResponse `json:"pendingJoinRequests"`
	TopLeaders          []models.LeaderScore  `json:"topLeaders"`
}

// LeaderCandidatesResponse is a ranking of leaders for promotion review
type LeaderCandidatesResponse struct {
	Candidates []models.LeaderScore `json:"candidates"`
	ComputedAt time.Time            `json:"computedAt"`
}
