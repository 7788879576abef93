package models

import "time"

// Profile roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile is the portal account row, keyed by the Authorizer user id
type Profile struct {
	ID                  string    `gorm:"primaryKey;size:64" json:"id"`
	Email               string    `gorm:"size:255;index" json:"email"`
	FullName            string    `gorm:"size:255" json:"fullName"`
	Phone               string    `gorm:"size:32" json:"phone"`
	FarmName            string    `gorm:"size:255" json:"farmName"`
	Role                string    `gorm:"size:16;not null;default:'user'" json:"role"`
	OnboardingCompleted bool      `gorm:"not null" json:"onboardingCompleted"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the profile may use the admin API
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// TableName overrides the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
