// seed.go
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

package database

import (
	"fmt"

	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedFile is the YAML layout of a starter catalog
type SeedFile struct {
	LimingProducts []struct {
		Name         string  `yaml:"name"`
		Manufacturer string  `yaml:"manufacturer"`
		Form         string  `yaml:"form"`
		CaO          float64 `yaml:"cao"`
		MgO          float64 `yaml:"mgo"`
		PricePerTon  float64 `yaml:"price_per_ton"`
		SortOrder    int     `yaml:"sort_order"`
		Description  string  `yaml:"description"`
	} `yaml:"liming_products"`
	FertilizationProducts []struct {
		Name         string  `yaml:"name"`
		Manufacturer string  `yaml:"manufacturer"`
		N            float64 `yaml:"n"`
		P2O5         float64 `yaml:"p2o5"`
		K2O          float64 `yaml:"k2o"`
		MgO          float64 `yaml:"mgo"`
		S            float64 `yaml:"s"`
		PricePerTon  float64 `yaml:"price_per_ton"`
		SortOrder    int     `yaml:"sort_order"`
		Description  string  `yaml:"description"`
	} `yaml:"fertilization_products"`
	PortalImages []struct {
		Title     string `yaml:"title"`
		URL       string `yaml:"url"`
		Alt       string `yaml:"alt"`
		Section   string `yaml:"section"`
		SortOrder int    `yaml:"sort_order"`
	} `yaml:"portal_images"`
}

// SeedResult counts the rows inserted per table
type SeedResult struct {
	LimingProducts        int
	FertilizationProducts int
	PortalImages          int
}

// SeedCatalog inserts the catalog from raw YAML. Tables that already hold rows are left alone.
func SeedCatalog(db *gorm.DB, raw []byte) (SeedResult, error) {
	var file SeedFile
	var result SeedResult
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return result, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if empty, err := isEmpty(tx, &models.LimingProduct{}); err != nil {
			return err
		} else if empty {
			for _, p := range file.LimingProducts {
				row := models.LimingProduct{
					Name:         p.Name,
					Manufacturer: p.Manufacturer,
					Form:         p.Form,
					CaOContent:   p.CaO,
					MgOContent:   p.MgO,
					PricePerTon:  p.PricePerTon,
					SortOrder:    p.SortOrder,
					Description:  p.Description,
					Active:       true,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				result.LimingProducts++
			}
		}

		if empty, err := isEmpty(tx, &models.FertilizationProduct{}); err != nil {
			return err
		} else if empty {
			for _, p := range file.FertilizationProducts {
				row := models.FertilizationProduct{
					Name:         p.Name,
					Manufacturer: p.Manufacturer,
					N:            p.N,
					P2O5:         p.P2O5,
					K2O:          p.K2O,
					MgO:          p.MgO,
					S:            p.S,
					PricePerTon:  p.PricePerTon,
					SortOrder:    p.SortOrder,
					Description:  p.Description,
					Active:       true,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				result.FertilizationProducts++
			}
		}

		if empty, err := isEmpty(tx, &models.PortalImage{}); err != nil {
			return err
		} else if empty {
			for _, img := range file.PortalImages {
				row := models.PortalImage{
					Title:     img.Title,
					URL:       img.URL,
					AltText:   img.Alt,
					Section:   img.Section,
					SortOrder: img.SortOrder,
					Active:    true,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				result.PortalImages++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	logging.L().Info("seeded catalog",
		zap.Int("liming_products", result.LimingProducts),
		zap.Int("fertilization_products", result.FertilizationProducts),
		zap.Int("portal_images", result.PortalImages))
	return result, nil
}

func isEmpty(tx *gorm.DB, model interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
