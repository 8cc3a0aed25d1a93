// Package ranking scores club leaders for promotion. Everything here is pure:
// callers supply the activity figures and the evaluation time.
package ranking

import (
	"math"
	"sort"
	"time"

	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

const (
	CommunicationWeight = 0.4
	ExperienceWeight    = 0.3
	EventsWeight        = 0.3

	// CommunicationWindow is how far back messages count
	CommunicationWindow = 30 * 24 * time.Hour
	// MaxExperienceMonths caps the experience score at two years
	MaxExperienceMonths = 24
	// DefaultLimit is the number of candidates surfaced to admins
	DefaultLimit = 10
)

// WindowStart returns the inclusive lower bound of the communication window
func WindowStart(now time.Time) time.Time {
	return now.Add(-CommunicationWindow)
}

// AccountAgeMonths counts complete 30-day months since created
func AccountAgeMonths(created, now time.Time) int {
	return helpers.WholeDaysBetween(created, now) / 30
}

// Score computes the component and total scores of one leader
func Score(a models.LeaderActivity, now time.Time) models.LeaderScore {
	months := AccountAgeMonths(a.AccountCreated, now)
	experience := months
	if experience > MaxExperienceMonths {
		experience = MaxExperienceMonths
	}

	s := models.LeaderScore{
		UserID:             a.UserID,
		Username:           a.Username,
		Email:              a.Email,
		CommunicationScore: float64(a.RecentMessages),
		ExperienceScore:    float64(experience),
		EventsScore:        float64(a.EventsOrganized),
		ClubsCount:         a.ClubsCount,
		TotalMembers:       a.TotalMembers,
		AccountAgeMonths:   months,
		ComputedAt:         now,
	}
	s.TotalScore = roundTenth(CommunicationWeight*s.CommunicationScore +
		ExperienceWeight*s.ExperienceScore +
		EventsWeight*s.EventsScore)
	return s
}

// Rank scores every activity, sorts by total descending keeping input order
// for ties, and returns at most limit entries with 1-based ranks.
// A non-positive limit returns all of them.
func Rank(activities []models.LeaderActivity, now time.Time, limit int) []models.LeaderScore {
	scores := make([]models.LeaderScore, 0, len(activities))
	for _, a := range activities {
		scores = append(scores, Score(a, now))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
