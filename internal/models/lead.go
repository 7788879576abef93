package models

// Lead statuses
const (
	LeadNew       = "new"
	LeadContacted = "contacted"
	LeadClosed    = "closed"
)

// Lead is a contact form submission from the marketing site
type Lead struct {
	Base
	Name    string   `gorm:"size:255;not null" json:"name"`
	Email   string   `gorm:"size:255;not null" json:"email"`
	Phone   string   `gorm:"size:32" json:"phone"`
	Message string   `gorm:"type:text" json:"message"`
	AreaHa  *float64 `json:"areaHa"`
	Source  string   `gorm:"size:64" json:"source"`
	Consent bool     `gorm:"not null" json:"consent"`
	Status  string   `gorm:"size:16;not null;default:'new';index" json:"status"`
}

// TableName overrides the table name for Lead
func (Lead) TableName() string {
	return "leads"
}
