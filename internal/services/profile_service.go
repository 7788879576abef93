package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agrolime/limeportal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileInput is the editable part of a profile (onboarding wizard and settings page)
type ProfileInput struct {
	FullName            string `json:"fullName"`
	Phone               string `json:"phone"`
	FarmName            string `json:"farmName"`
	OnboardingCompleted *bool  `json:"onboardingCompleted"`
}

// EnsureProfile returns the profile for a session user, creating it with the user role on first sight
func EnsureProfile(db *gorm.DB, user *SessionUser) (*models.Profile, error) {
	profile := models.Profile{ID: user.ID, Email: user.Email, Role: models.RoleUser}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error; err != nil {
		return nil, err
	}
	return GetProfile(db, user.ID)
}

// GetProfile loads a profile by id
func GetProfile(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// ProfileRole returns the stored role for a user, or ErrNotFound if the user has no profile
func ProfileRole(db *gorm.DB, id string) (string, error) {
	profile, err := GetProfile(db, id)
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

// UpdateProfile updates the caller's own profile
func UpdateProfile(db *gorm.DB, id string, input ProfileInput) (*models.Profile, error) {
	updates := map[string]interface{}{
		"full_name": strings.TrimSpace(input.FullName),
		"phone":     strings.TrimSpace(input.Phone),
		"farm_name": strings.TrimSpace(input.FarmName),
	}
	if input.OnboardingCompleted != nil {
		updates["onboarding_completed"] = *input.OnboardingCompleted
	}

	res := db.Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetProfile(db, id)
}

// ListProfiles lists all profiles, newest first
func ListProfiles(db *gorm.DB) ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := db.Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

// SetRole changes a profile's role. An admin cannot remove their own admin role.
func SetRole(db *gorm.DB, actorID, targetID, role string) (*models.Profile, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if actorID == targetID && role != models.RoleAdmin {
		return nil, ErrSelfDemotion
	}

	res := db.Model(&models.Profile{}).Where("id = ?", targetID).Update("role", role)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetProfile(db, targetID)
}
