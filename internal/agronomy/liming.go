// liming.go
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

package agronomy

import (
	"fmt"
	"math"
)

// SoilCategory is the agronomic soil category used by the liming advisory tables.
type SoilCategory string

const (
	VeryLight SoilCategory = "very_light"
	Light     SoilCategory = "light"
	Medium    SoilCategory = "medium"
	Heavy     SoilCategory = "heavy"
)

// SoilCategories lists the categories in table order.
var SoilCategories = []SoilCategory{VeryLight, Light, Medium, Heavy}

// Valid reports whether c is a known category.
func (c SoilCategory) Valid() bool {
	_, ok := limeTable[c]
	return ok
}

// MgONeutralisingFactor expresses MgO as CaO-equivalent neutralising value (molar mass ratio 56.08/40.30).
const MgONeutralisingFactor = 1.39

type limeBand struct {
	maxPH float64
	dose  float64 // t CaO/ha
}

// Advisory doses in t CaO/ha. Above the last band no liming is needed.
var limeTable = map[SoilCategory][]limeBand{
	VeryLight: {{4.0, 3.0}, {4.5, 2.0}, {5.0, 1.0}},
	Light:     {{4.5, 3.5}, {5.0, 2.5}, {5.5, 1.5}},
	Medium:    {{5.0, 4.5}, {5.5, 3.0}, {6.0, 1.7}},
	Heavy:     {{5.5, 6.0}, {6.0, 3.0}, {6.5, 1.0}},
}

// LimeRequirement returns the CaO need in t/ha for a soil with the given pH (measured in KCl).
func LimeRequirement(ph float64, category SoilCategory) (float64, error) {
	if err := validatePH(ph); err != nil {
		return 0, err
	}
	bands, ok := limeTable[category]
	if !ok {
		return 0, fmt.Errorf("%w: unknown soil category %q", ErrInvalidInput, category)
	}
	for _, b := range bands {
		if ph <= b.maxPH {
			return b.dose, nil
		}
	}
	return 0, nil
}

// OptimalPH returns the pH above which the category needs no liming.
func OptimalPH(category SoilCategory) (float64, error) {
	bands, ok := limeTable[category]
	if !ok {
		return 0, fmt.Errorf("%w: unknown soil category %q", ErrInvalidInput, category)
	}
	return bands[len(bands)-1].maxPH, nil
}

// ProductDose converts a CaO need (t/ha) into tonnes of product per hectare,
// given the product's CaO and MgO content in percent.
func ProductDose(caoNeed, caoPct, mgoPct float64) (float64, error) {
	if err := requireNonNegative("CaO need", caoNeed); err != nil {
		return 0, err
	}
	if err := requirePercent("CaO content", caoPct); err != nil {
		return 0, err
	}
	if err := requirePercent("MgO content", mgoPct); err != nil {
		return 0, err
	}
	neutralising := caoPct + mgoPct*MgONeutralisingFactor
	if neutralising <= 0 {
		return 0, fmt.Errorf("%w: product has no neutralising content", ErrInvalidInput)
	}
	return caoNeed / (neutralising / 100), nil
}

// LimingInput describes one liming calculation.
type LimingInput struct {
	PH          float64
	Category    SoilCategory
	AreaHa      float64
	CaOPct      float64
	MgOPct      float64
	PricePerTon float64
}

// LimingPlan is the result of a liming calculation.
type LimingPlan struct {
	CaONeedTHa     float64 `json:"caoNeedTHa"`
	CaCO3NeedTHa   float64 `json:"caco3NeedTHa"`
	ProductDoseTHa float64 `json:"productDoseTHa"`
	TotalProductT  float64 `json:"totalProductT"`
	TotalCost      float64 `json:"totalCost"`
	TargetPH       float64 `json:"targetPH"`
	LimingNeeded   bool    `json:"limingNeeded"`
}

// PlanLiming computes the single-season liming plan for a parcel.
func PlanLiming(in LimingInput) (LimingPlan, error) {
	if err := requirePositive("area", in.AreaHa); err != nil {
		return LimingPlan{}, err
	}
	if err := requireNonNegative("price", in.PricePerTon); err != nil {
		return LimingPlan{}, err
	}
	need, err := LimeRequirement(in.PH, in.Category)
	if err != nil {
		return LimingPlan{}, err
	}
	target, _ := OptimalPH(in.Category)

	plan := LimingPlan{CaONeedTHa: need, TargetPH: target, LimingNeeded: need > 0}
	plan.CaCO3NeedTHa, _ = Convert(need, CaO, CaCO3)
	if need == 0 {
		return plan, nil
	}

	dose, err := ProductDose(need, in.CaOPct, in.MgOPct)
	if err != nil {
		return LimingPlan{}, err
	}
	plan.ProductDoseTHa = dose
	plan.TotalProductT = dose * in.AreaHa
	plan.TotalCost = plan.TotalProductT * in.PricePerTon
	return plan, nil
}

func validatePH(ph float64) error {
	if math.IsNaN(ph) || ph < 0 || ph > 14 {
		return fmt.Errorf("%w: pH must be between 0 and 14", ErrInvalidInput)
	}
	return nil
}

func requirePercent(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalidInput, name)
	}
	return nil
}
