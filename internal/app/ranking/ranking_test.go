package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScore_WeightedTotal(t *testing.T) {
	s := Score(models.LeaderActivity{
		UserID:          1,
		AccountCreated:  now.AddDate(0, 0, -60),
		RecentMessages:  10,
		EventsOrganized: 3,
	}, now)

	assert.Equal(t, 10.0, s.CommunicationScore)
	assert.Equal(t, 2.0, s.ExperienceScore)
	assert.Equal(t, 3.0, s.EventsScore)
	assert.Equal(t, 5.5, s.TotalScore)
	assert.Equal(t, 2, s.AccountAgeMonths)
}

func TestScore_ExperienceCapped(t *testing.T) {
	s := Score(models.LeaderActivity{AccountCreated: now.AddDate(-5, 0, 0)}, now)

	assert.Equal(t, float64(MaxExperienceMonths), s.ExperienceScore)
	assert.Greater(t, s.AccountAgeMonths, MaxExperienceMonths)
	assert.Equal(t, 7.2, s.TotalScore)
}

func TestScore_PartialMonthDoesNotCount(t *testing.T) {
	s := Score(models.LeaderActivity{AccountCreated: now.AddDate(0, 0, -29)}, now)
	assert.Equal(t, 0.0, s.ExperienceScore)
}

func TestScore_RoundsToOneDecimal(t *testing.T) {
	s := Score(models.LeaderActivity{AccountCreated: now, RecentMessages: 1, EventsOrganized: 1}, now)
	assert.Equal(t, 0.7, s.TotalScore)
}

func TestRank_StableOrderAndLimit(t *testing.T) {
	activities := []models.LeaderActivity{
		{UserID: 1, AccountCreated: now, RecentMessages: 5},
		{UserID: 2, AccountCreated: now, RecentMessages: 10},
		{UserID: 3, AccountCreated: now, RecentMessages: 5},
		{UserID: 4, AccountCreated: now, RecentMessages: 1},
	}

	ranked := Rank(activities, now, 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, []int64{2, 1, 3}, []int64{ranked[0].UserID, ranked[1].UserID, ranked[2].UserID})
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRank_DefaultsToAllWhenLimitUnset(t *testing.T) {
	activities := make([]models.LeaderActivity, 12)
	for i := range activities {
		activities[i] = models.LeaderActivity{UserID: int64(i + 1), AccountCreated: now}
	}

	assert.Len(t, Rank(activities, now, 0), 12)
	assert.Len(t, Rank(activities, now, DefaultLimit), DefaultLimit)
	assert.Empty(t, Rank(nil, now, DefaultLimit))
}

func TestWindowStart(t *testing.T) {
	assert.Equal(t, now.AddDate(0, 0, -30), WindowStart(now))
}
