package models

import (
	"time"
)

// User defines the user model based on the 'users' table joined with its profile role
type User struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	Role        Role       `json:"role" db:"role"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserProfile defines the 'user_profiles' row owned by a user.
// Leader fields are only filled for users who registered as leaders.
type UserProfile struct {
	UserID         int64   `json:"userId" db:"user_id"`
	Role           Role    `json:"role" db:"role"`
	Bio            *string `json:"bio,omitempty" db:"bio"`
	ProfilePicture *string `json:"profilePicture,omitempty" db:"profile_picture"`

	PhoneNumber  *string `json:"phoneNumber,omitempty" db:"phone_number"`
	Experience   *string `json:"experience,omitempty" db:"experience"`
	Achievements *string `json:"achievements,omitempty" db:"achievements"`
	Certificates *string `json:"certificates,omitempty" db:"certificates"`
	Education    *string `json:"education,omitempty" db:"education"`

	// Stored document references
	ExperienceDoc   *string `json:"experienceDoc,omitempty" db:"experience_doc"`
	AchievementsDoc *string `json:"achievementsDoc,omitempty" db:"achievements_doc"`
	CertificatesDoc *string `json:"certificatesDoc,omitempty" db:"certificates_doc"`
	EducationDoc    *string `json:"educationDoc,omitempty" db:"education_doc"`
}

// RefreshToken is a long-lived token that can be exchanged for a new access token
type RefreshToken struct {
	ID        int64     `db:"id"`
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	Revoked   bool      `db:"revoked"`
	CreatedAt time.Time `db:"created_at"`
}
