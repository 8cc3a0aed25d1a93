package dto

import (
	"time"

	"github.com/yigit/clubhub/internal/app/models"
)

// UserResponse is the public view of a user account
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewUserResponse maps a user model
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ProfileResponse is a user together with their profile. The admin view also
// carries the clubs they lead and their latest messages.
type ProfileResponse struct {
	User           *UserResponse       `json:"user"`
	Profile        *models.UserProfile `json:"profile"`
	Clubs          []ClubResponse      `json:"clubs"`
	LeaderClubs    []ClubResponse      `json:"leaderClubs,omitempty"`
	RecentMessages []MessageResponse   `json:"recentMessages,omitempty"`
}

// LeaderDetailsResponse is the public page of a club leader
type LeaderDetailsResponse struct {
	User        *UserResponse       `json:"user"`
	Profile     *models.UserProfile `json:"profile"`
	LeaderClubs []ClubResponse      `json:"leaderClubs"`
}

// UpdateProfileRequest changes editable profile fields. Nil fields are left alone.
type UpdateProfileRequest struct {
	Bio          *string `json:"bio" binding:"omitempty,max=2000"`
	PhoneNumber  *string `json:"phoneNumber" binding:"omitempty,max=20"`
	Experience   *string `json:"experience"`
	Achievements *string `json:"achievements"`
	Certificates *string `json:"certificates"`
	Education    *string `json:"education" binding:"omitempty,max=200"`
}
