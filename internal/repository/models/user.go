package models

import (
	"time"

	"hangeul-path/internal/domain"
)

// User is a document in the users collection. The ID is a ULID; the
// Google subject is kept separately so re-logins find the same account.
type User struct {
	ID                    string    `bson:"_id"`
	GoogleID              string    `bson:"googleId"`
	Email                 string    `bson:"email"`
	Name                  string    `bson:"name"`
	PictureURL            string    `bson:"pictureUrl,omitempty"`
	CurrentLevel          string    `bson:"currentLevel"`
	TotalStudySeconds     int64     `bson:"totalStudySeconds"`
	Streak                int       `bson:"streak"`
	LastActivityDate      string    `bson:"lastActivityDate,omitempty"`
	CompletedCoursesCount int       `bson:"completedCoursesCount"`
	TotalLessonsCompleted int       `bson:"totalLessonsCompleted"`
	CreatedAt             time.Time `bson:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt"`
}

// ToDomain converts the stored user to its domain form.
func (u *User) ToDomain() *domain.UserProfile {
	return &domain.UserProfile{
		ID:                    u.ID,
		GoogleID:              u.GoogleID,
		Email:                 u.Email,
		Name:                  u.Name,
		PictureURL:            u.PictureURL,
		CurrentLevel:          u.CurrentLevel,
		TotalStudySeconds:     u.TotalStudySeconds,
		Streak:                u.Streak,
		LastActivityDate:      u.LastActivityDate,
		CompletedCoursesCount: u.CompletedCoursesCount,
		TotalLessonsCompleted: u.TotalLessonsCompleted,
	}
}

// UserFromDomain converts a domain profile into its stored form.
func UserFromDomain(profile *domain.UserProfile) *User {
	now := time.Now()
	return &User{
		ID:                    profile.ID,
		GoogleID:              profile.GoogleID,
		Email:                 profile.Email,
		Name:                  profile.Name,
		PictureURL:            profile.PictureURL,
		CurrentLevel:          profile.CurrentLevel,
		TotalStudySeconds:     profile.TotalStudySeconds,
		Streak:                profile.Streak,
		LastActivityDate:      profile.LastActivityDate,
		CompletedCoursesCount: profile.CompletedCoursesCount,
		TotalLessonsCompleted: profile.TotalLessonsCompleted,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}
