// economics.go
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

import "fmt"

type lossBand struct {
	belowPH  float64
	fraction float64
}

// Yield loss attributed to acidity, by pH band. pH at or above 6.0 causes no loss.
var lossBands = []lossBand{
	{4.5, 0.35},
	{5.0, 0.25},
	{5.5, 0.15},
	{6.0, 0.05},
}

// YieldLossFraction returns the share of yield lost to acidity at the given pH.
func YieldLossFraction(ph float64) (float64, error) {
	if err := validatePH(ph); err != nil {
		return 0, err
	}
	for _, b := range lossBands {
		if ph < b.belowPH {
			return b.fraction, nil
		}
	}
	return 0, nil
}

// LossInput describes an economic loss calculation.
type LossInput struct {
	PH          float64
	YieldTHa    float64
	PricePerTon float64
	AreaHa      float64
}

// LossResult is the outcome of an economic loss calculation.
type LossResult struct {
	LossFraction float64 `json:"lossFraction"`
	LostYieldTHa float64 `json:"lostYieldTHa"`
	LostYieldT   float64 `json:"lostYieldT"`
	LostValue    float64 `json:"lostValue"`
	LostValueHa  float64 `json:"lostValueHa"`
}

// EconomicLoss estimates what acidity costs on a parcel per season.
// YieldTHa is the yield actually achieved; the loss is relative to the attainable yield.
func EconomicLoss(in LossInput) (LossResult, error) {
	if err := requireNonNegative("yield", in.YieldTHa); err != nil {
		return LossResult{}, err
	}
	if err := requireNonNegative("price", in.PricePerTon); err != nil {
		return LossResult{}, err
	}
	if err := requirePositive("area", in.AreaHa); err != nil {
		return LossResult{}, err
	}
	fraction, err := YieldLossFraction(in.PH)
	if err != nil {
		return LossResult{}, err
	}

	attainable := in.YieldTHa / (1 - fraction)
	lostHa := attainable - in.YieldTHa
	res := LossResult{
		LossFraction: fraction,
		LostYieldTHa: lostHa,
		LostYieldT:   lostHa * in.AreaHa,
		LostValueHa:  lostHa * in.PricePerTon,
	}
	res.LostValue = res.LostValueHa * in.AreaHa
	return res, nil
}

// NutrientDose converts an element requirement (kg/ha, e.g. kg P) into kg of product per hectare,
// given the product content of the corresponding oxide in percent (e.g. % P2O5).
func NutrientDose(elementKgHa float64, element Compound, oxidePct float64) (float64, error) {
	if err := requireNonNegative("requirement", elementKgHa); err != nil {
		return 0, err
	}
	if err := requirePercent("content", oxidePct); err != nil {
		return 0, err
	}
	if oxidePct == 0 {
		return 0, fmt.Errorf("%w: product does not contain the nutrient", ErrInvalidInput)
	}
	oxide, ok := oxideOf[element]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no oxide form", ErrUnsupportedConversion, element)
	}
	oxideKg, err := Convert(elementKgHa, element, oxide)
	if err != nil {
		return 0, err
	}
	return oxideKg / (oxidePct / 100), nil
}

var oxideOf = map[Compound]Compound{
	P:  P2O5,
	K:  K2O,
	Mg: MgO,
}
