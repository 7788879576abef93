// catalog_service.go
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
	"net/url"
	"strings"

	"github.com/agrolime/limeportal/internal/models"
	"gorm.io/gorm"
)

// CatalogRow is a row type managed through the admin catalog endpoints
type CatalogRow interface {
	models.LimingProduct | models.FertilizationProduct | models.PortalImage
}

// ListCatalog lists catalog rows in display order
func ListCatalog[T CatalogRow](db *gorm.DB, activeOnly bool) ([]T, error) {
	rows := []T{}
	query := db.Order("sort_order ASC").Order("created_at ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetCatalog loads one catalog row by id
func GetCatalog[T CatalogRow](db *gorm.DB, id string) (*T, error) {
	var row T
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// CreateCatalog inserts a catalog row. Ids and timestamps sent by the client are discarded.
func CreateCatalog[T CatalogRow](db *gorm.DB, row *T) error {
	if err := validateCatalog(row); err != nil {
		return err
	}
	if base := baseOf(row); base != nil {
		*base = models.Base{}
	}
	return db.Create(row).Error
}

// UpdateCatalog overwrites every editable column of an existing row
func UpdateCatalog[T CatalogRow](db *gorm.DB, id string, row *T) (*T, error) {
	if err := validateCatalog(row); err != nil {
		return nil, err
	}
	existing, err := GetCatalog[T](db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(existing).Select("*").Omit("id", "created_at").Updates(row).Error; err != nil {
		return nil, err
	}
	return GetCatalog[T](db, id)
}

// DeleteCatalog deletes a catalog row
func DeleteCatalog[T CatalogRow](db *gorm.DB, id string) error {
	var row T
	res := db.Where("id = ?", id).Delete(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListImages lists portal images, optionally for one page section
func ListImages(db *gorm.DB, section string, activeOnly bool) ([]models.PortalImage, error) {
	query := db
	if section != "" {
		query = query.Where("section = ?", section)
	}
	return ListCatalog[models.PortalImage](query, activeOnly)
}

func validateCatalog(row interface{}) error {
	switch r := row.(type) {
	case *models.LimingProduct:
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return fmt.Errorf("%w: name is required", ErrValidation)
		}
		if !percent(r.CaOContent) || !percent(r.MgOContent) || r.CaOContent+r.MgOContent > 100 {
			return fmt.Errorf("%w: CaO and MgO contents must be percentages", ErrValidation)
		}
		if r.PricePerTon < 0 {
			return fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
	case *models.FertilizationProduct:
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return fmt.Errorf("%w: name is required", ErrValidation)
		}
		for _, v := range []float64{r.N, r.P2O5, r.K2O, r.MgO, r.S} {
			if !percent(v) {
				return fmt.Errorf("%w: nutrient contents must be percentages", ErrValidation)
			}
		}
		if r.PricePerTon < 0 {
			return fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
	case *models.PortalImage:
		r.URL = strings.TrimSpace(r.URL)
		if r.URL == "" {
			return fmt.Errorf("%w: url is required", ErrValidation)
		}
		if u, err := url.Parse(r.URL); err != nil || (u.Scheme != "" && u.Scheme != "https" && u.Scheme != "http") {
			return fmt.Errorf("%w: url must be an http(s) or site-relative address", ErrValidation)
		}
	}
	return nil
}

// CatalogID returns the id of a catalog row
func CatalogID[T CatalogRow](row *T) string {
	if base := baseOf(row); base != nil {
		return base.ID
	}
	return ""
}

func baseOf(row interface{}) *models.Base {
	switch r := row.(type) {
	case *models.LimingProduct:
		return &r.Base
	case *models.FertilizationProduct:
		return &r.Base
	case *models.PortalImage:
		return &r.Base
	}
	return nil
}

func percent(v float64) bool {
	return v >= 0 && v <= 100
}
