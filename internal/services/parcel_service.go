// parcel_service.go
//
// Liming and fertilization consultancy portal with customer self-service and calculators
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of limeportal.
// limeportal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// limeportal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with limeportal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agrolime/limeportal/internal/agronomy"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/types"
	"gorm.io/gorm"
)

// ParcelInput is the body of parcel create and update calls
type ParcelInput struct {
	Name            string            `json:"name"`
	AreaHa          types.FlexFloat64 `json:"areaHa"`
	SoilCategory    string            `json:"soilCategory"`
	Location        string            `json:"location"`
	CadastralNumber string            `json:"cadastralNumber"`
	CropType        string            `json:"cropType"`
	Notes           string            `json:"notes"`
}

func (in ParcelInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !in.AreaHa.Set || !in.AreaHa.Finite() || in.AreaHa.Value <= 0 {
		return fmt.Errorf("%w: area must be greater than zero", ErrValidation)
	}
	if !agronomy.SoilCategory(in.SoilCategory).Valid() {
		return fmt.Errorf("%w: unknown soil category %q", ErrValidation, in.SoilCategory)
	}
	return nil
}

func (in ParcelInput) apply(p *models.Parcel) {
	p.Name = strings.TrimSpace(in.Name)
	p.AreaHa = in.AreaHa.Value
	p.SoilCategory = in.SoilCategory
	p.Location = strings.TrimSpace(in.Location)
	p.CadastralNumber = strings.TrimSpace(in.CadastralNumber)
	p.CropType = strings.TrimSpace(in.CropType)
	p.Notes = in.Notes
}

// ListParcels lists a user's parcels by name
func ListParcels(db *gorm.DB, userID string) ([]models.Parcel, error) {
	parcels := []models.Parcel{}
	err := db.Where("user_id = ?", userID).Order("name ASC").Find(&parcels).Error
	return parcels, err
}

// GetParcel loads a parcel owned by userID. Other users' parcels are reported as not found.
func GetParcel(db *gorm.DB, userID, id string) (*models.Parcel, error) {
	var parcel models.Parcel
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&parcel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &parcel, nil
}

// CreateParcel creates a parcel for userID
func CreateParcel(db *gorm.DB, userID string, input ParcelInput) (*models.Parcel, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	parcel := models.Parcel{UserID: userID}
	input.apply(&parcel)
	if err := db.Create(&parcel).Error; err != nil {
		return nil, err
	}
	return &parcel, nil
}

// UpdateParcel replaces the editable fields of a parcel owned by userID
func UpdateParcel(db *gorm.DB, userID, id string, input ParcelInput) (*models.Parcel, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	parcel, err := GetParcel(db, userID, id)
	if err != nil {
		return nil, err
	}
	input.apply(parcel)
	if err := db.Save(parcel).Error; err != nil {
		return nil, err
	}
	return parcel, nil
}

// DeleteParcel deletes a parcel and its soil analyses
func DeleteParcel(db *gorm.DB, userID, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetParcel(tx, userID, id); err != nil {
			return err
		}
		if err := tx.Where("parcel_id = ?", id).Delete(&models.SoilAnalysis{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Parcel{}).Error
	})
}

// AnalysisInput is one soil analysis in a create call
type AnalysisInput struct {
	SampledAt     string            `json:"sampledAt"`
	PH            types.FlexFloat64 `json:"ph"`
	P2O5          types.FlexFloat64 `json:"p2o5"`
	K2O           types.FlexFloat64 `json:"k2o"`
	Mg            types.FlexFloat64 `json:"mg"`
	OrganicMatter types.FlexFloat64 `json:"organicMatter"`
	LabName       string            `json:"labName"`
	Notes         string            `json:"notes"`
}

func (in AnalysisInput) toModel(userID, parcelID string) (models.SoilAnalysis, error) {
	if !in.PH.Set || !in.PH.Finite() || in.PH.Value < 0 || in.PH.Value > 14 {
		return models.SoilAnalysis{}, fmt.Errorf("%w: pH must be between 0 and 14", ErrValidation)
	}
	for name, v := range map[string]types.FlexFloat64{"p2o5": in.P2O5, "k2o": in.K2O, "mg": in.Mg, "organicMatter": in.OrganicMatter} {
		if v.Set && (!v.Finite() || v.Value < 0) {
			return models.SoilAnalysis{}, fmt.Errorf("%w: %s must not be negative", ErrValidation, name)
		}
	}

	sampled := time.Now().UTC()
	if in.SampledAt != "" {
		t, err := parseDate(in.SampledAt)
		if err != nil {
			return models.SoilAnalysis{}, fmt.Errorf("%w: sampledAt: %v", ErrValidation, err)
		}
		sampled = t
	}

	return models.SoilAnalysis{
		ParcelID:      parcelID,
		UserID:        userID,
		SampledAt:     sampled,
		PH:            in.PH.Value,
		P2O5:          in.P2O5.Ptr(),
		K2O:           in.K2O.Ptr(),
		Mg:            in.Mg.Ptr(),
		OrganicMatter: in.OrganicMatter.Ptr(),
		LabName:       strings.TrimSpace(in.LabName),
		Notes:         in.Notes,
	}, nil
}

// ListAnalyses lists the analyses of a parcel owned by userID, newest first
func ListAnalyses(db *gorm.DB, userID, parcelID string) ([]models.SoilAnalysis, error) {
	if _, err := GetParcel(db, userID, parcelID); err != nil {
		return nil, err
	}
	analyses := []models.SoilAnalysis{}
	err := db.Where("parcel_id = ?", parcelID).Order("sampled_at DESC").Find(&analyses).Error
	return analyses, err
}

// ListUserAnalyses lists every analysis of a user, newest first
func ListUserAnalyses(db *gorm.DB, userID string) ([]models.SoilAnalysis, error) {
	analyses := []models.SoilAnalysis{}
	err := db.Where("user_id = ?", userID).Order("sampled_at DESC").Find(&analyses).Error
	return analyses, err
}

// CreateAnalyses stores one or more analyses for a parcel in a single transaction
func CreateAnalyses(db *gorm.DB, userID, parcelID string, inputs []AnalysisInput) ([]models.SoilAnalysis, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no analyses given", ErrValidation)
	}
	rows := make([]models.SoilAnalysis, 0, len(inputs))
	for _, in := range inputs {
		row, err := in.toModel(userID, parcelID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetParcel(tx, userID, parcelID); err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteAnalysis deletes an analysis owned by userID
func DeleteAnalysis(db *gorm.DB, userID, id string) error {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.SoilAnalysis{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// latestByParcel expects analyses ordered newest first
func latestByParcel(analyses []models.SoilAnalysis) map[string]models.SoilAnalysis {
	latest := make(map[string]models.SoilAnalysis)
	for _, a := range analyses {
		if _, seen := latest[a.ParcelID]; !seen {
			latest[a.ParcelID] = a
		}
	}
	return latest
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02.01.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
