// conversion.go
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

// Package agronomy holds the portal calculators: oxide/element conversions, liming doses,
// nutrient dosing and the economic loss caused by soil acidity.
//
// All functions are pure. Inputs are validated, outputs are not rounded; use Round for display.
package agronomy

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Compound identifies a nutrient form as printed on fertilizer labels and lab reports.
type Compound string

const (
	CaO   Compound = "CaO"
	CaCO3 Compound = "CaCO3"
	P2O5  Compound = "P2O5"
	P     Compound = "P"
	K2O   Compound = "K2O"
	K     Compound = "K"
	MgO   Compound = "MgO"
	Mg    Compound = "Mg"
)

var (
	// ErrInvalidInput is returned for missing, negative or non-finite inputs.
	ErrInvalidInput = errors.New("invalid calculator input")
	// ErrUnsupportedConversion is returned for compound pairs without a factor.
	ErrUnsupportedConversion = errors.New("unsupported conversion")
)

type pair struct{ from, to Compound }

// Literature factors. CaO/CaCO3 use the advisory values 1.79 and 0.559, so the
// round trip is 1.00061 rather than exactly 1.
var factors = map[pair]float64{
	{CaO, CaCO3}: 1.79,
	{CaCO3, CaO}: 0.559,
	{P2O5, P}:    0.4364,
	{P, P2O5}:    2.2914,
	{K2O, K}:     0.8301,
	{K, K2O}:     1.2046,
	{MgO, Mg}:    0.6030,
	{Mg, MgO}:    1.6583,
}

// Factor returns the multiplication factor for converting from one compound to another.
func Factor(from, to Compound) (float64, error) {
	if from == to {
		return 1, nil
	}
	f, ok := factors[pair{from, to}]
	if !ok {
		return 0, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, from, to)
	}
	return f, nil
}

// Convert converts a mass (any unit) of one compound to the equivalent mass of another.
func Convert(mass float64, from, to Compound) (float64, error) {
	if err := requireNonNegative("mass", mass); err != nil {
		return 0, err
	}
	f, err := Factor(from, to)
	if err != nil {
		return 0, err
	}
	return mass * f, nil
}

// Pairs lists the supported conversions, for the calculator form.
func Pairs() [][2]Compound {
	order := []Compound{CaO, CaCO3, P2O5, P, K2O, K, MgO, Mg}
	out := make([][2]Compound, 0, len(factors))
	for _, from := range order {
		for _, to := range order {
			if _, ok := factors[pair{from, to}]; ok {
				out = append(out, [2]Compound{from, to})
			}
		}
	}
	return out
}

// ParseCompound accepts the usual spellings ("cao", "CaCO3", "p2o5").
func ParseCompound(s string) (Compound, error) {
	for _, c := range []Compound{CaO, CaCO3, P2O5, P, K2O, K, MgO, Mg} {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown compound %q", ErrInvalidInput, s)
}

// Round rounds to the given number of decimal places, for presentation.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func requireNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidInput, name)
	}
	return nil
}

func requirePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidInput, name)
	}
	return nil
}
