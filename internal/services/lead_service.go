package services

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/types"
	"gorm.io/gorm"
)

// LeadInput is the public contact form
type LeadInput struct {
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Message        string            `json:"message"`
	AreaHa         types.FlexFloat64 `json:"areaHa"`
	Source         string            `json:"source"`
	Consent        bool              `json:"consent"`
	TurnstileToken string            `json:"turnstileToken"`
}

// CreateLead validates and stores a contact form submission
func CreateLead(db *gorm.DB, input LeadInput) (*models.Lead, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	email := strings.TrimSpace(input.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if !input.Consent {
		return nil, fmt.Errorf("%w: consent is required", ErrValidation)
	}
	if input.AreaHa.Set && (!input.AreaHa.Finite() || input.AreaHa.Value < 0) {
		return nil, fmt.Errorf("%w: area must not be negative", ErrValidation)
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = "contact_form"
	}
	lead := models.Lead{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Message: input.Message,
		AreaHa:  input.AreaHa.Ptr(),
		Source:  source,
		Consent: true,
		Status:  models.LeadNew,
	}
	if err := db.Create(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// ListLeads lists leads, newest first, optionally by status
func ListLeads(db *gorm.DB, status string) ([]models.Lead, error) {
	query := db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	leads := []models.Lead{}
	err := query.Find(&leads).Error
	return leads, err
}

// UpdateLeadStatus sets a lead's follow-up status
func UpdateLeadStatus(db *gorm.DB, id, status string) (*models.Lead, error) {
	switch status {
	case models.LeadNew, models.LeadContacted, models.LeadClosed:
	default:
		return nil, fmt.Errorf("%w: unknown lead status %q", ErrValidation, status)
	}

	res := db.Model(&models.Lead{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var lead models.Lead
	if err := db.First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}
