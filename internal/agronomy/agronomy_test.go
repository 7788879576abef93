package agronomy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCaO(t *testing.T) {
	v, err := Convert(10, CaO, CaCO3)
	require.NoError(t, err)
	assert.InDelta(t, 17.9, v, 1e-9)

	v, err = Convert(0, CaO, CaCO3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = Convert(17.9, CaCO3, CaO)
	require.NoError(t, err)
	assert.InDelta(t, 10.0061, v, 1e-4)
}

func TestConvertRoundTripResidual(t *testing.T) {
	// 1.79 * 0.559 = 1.00061: the round trip overshoots by 0.061 %.
	for _, m := range []float64{0.001, 1, 3.5, 10, 250, 1e6} {
		there, err := Convert(m, CaO, CaCO3)
		require.NoError(t, err)
		back, err := Convert(there, CaCO3, CaO)
		require.NoError(t, err)
		assert.InDelta(t, m*1.00061, back, m*1e-9)
		assert.InEpsilon(t, m, back, 0.001)
	}
}

func TestAllPairsNearIdentity(t *testing.T) {
	pairs := Pairs()
	require.Len(t, pairs, 8)
	for _, p := range pairs {
		there, err := Convert(100, p[0], p[1])
		require.NoError(t, err)
		back, err := Convert(there, p[1], p[0])
		require.NoError(t, err)
		assert.InEpsilon(t, 100, back, 0.001, "%s -> %s", p[0], p[1])
	}
}

func TestConvertRejectsBadInput(t *testing.T) {
	for _, m := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := Convert(m, CaO, CaCO3)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
	_, err := Convert(1, CaO, P2O5)
	assert.True(t, errors.Is(err, ErrUnsupportedConversion))

	v, err := Convert(4.2, K2O, K2O)
	require.NoError(t, err)
	assert.Equal(t, 4.2, v)
}

func TestParseCompound(t *testing.T) {
	c, err := ParseCompound(" caco3 ")
	require.NoError(t, err)
	assert.Equal(t, CaCO3, c)

	_, err = ParseCompound("NaCl")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLimeRequirementBands(t *testing.T) {
	cases := []struct {
		ph   float64
		cat  SoilCategory
		want float64
	}{
		{3.9, VeryLight, 3.0},
		{4.0, VeryLight, 3.0},
		{4.3, VeryLight, 2.0},
		{5.0, VeryLight, 1.0},
		{5.1, VeryLight, 0},
		{4.5, Light, 3.5},
		{5.5, Light, 1.5},
		{5.6, Light, 0},
		{4.8, Medium, 4.5},
		{5.8, Medium, 1.7},
		{6.1, Medium, 0},
		{5.5, Heavy, 6.0},
		{5.9, Heavy, 3.0},
		{6.5, Heavy, 1.0},
		{7.0, Heavy, 0},
	}
	for _, tc := range cases {
		got, err := LimeRequirement(tc.ph, tc.cat)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "pH %.1f %s", tc.ph, tc.cat)
	}

	_, err := LimeRequirement(15, Heavy)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = LimeRequirement(5, SoilCategory("peat"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProductDose(t *testing.T) {
	dose, err := ProductDose(3, 50, 0)
	require.NoError(t, err)
	assert.InDelta(t, 6, dose, 1e-9)

	// dolomite: 30 % CaO + 20 % MgO -> 57.8 % CaO-equivalent
	dose, err = ProductDose(2.89, 30, 20)
	require.NoError(t, err)
	assert.InDelta(t, 5, dose, 1e-9)

	_, err = ProductDose(3, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ProductDose(3, 120, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlanLiming(t *testing.T) {
	plan, err := PlanLiming(LimingInput{PH: 4.8, Category: Medium, AreaHa: 10, CaOPct: 50, PricePerTon: 200})
	require.NoError(t, err)
	assert.True(t, plan.LimingNeeded)
	assert.Equal(t, 4.5, plan.CaONeedTHa)
	assert.InDelta(t, 8.055, plan.CaCO3NeedTHa, 1e-9)
	assert.InDelta(t, 9, plan.ProductDoseTHa, 1e-9)
	assert.InDelta(t, 90, plan.TotalProductT, 1e-9)
	assert.InDelta(t, 18000, plan.TotalCost, 1e-6)
	assert.Equal(t, 6.0, plan.TargetPH)

	plan, err = PlanLiming(LimingInput{PH: 7, Category: Light, AreaHa: 3})
	require.NoError(t, err, "no product needed when no liming is needed")
	assert.False(t, plan.LimingNeeded)
	assert.Zero(t, plan.TotalCost)

	_, err = PlanLiming(LimingInput{PH: 5, Category: Light, AreaHa: 0, CaOPct: 50})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEconomicLoss(t *testing.T) {
	res, err := EconomicLoss(LossInput{PH: 4.7, YieldTHa: 6, PricePerTon: 800, AreaHa: 20})
	require.NoError(t, err)
	assert.Equal(t, 0.25, res.LossFraction)
	assert.InDelta(t, 2, res.LostYieldTHa, 1e-9)
	assert.InDelta(t, 40, res.LostYieldT, 1e-9)
	assert.InDelta(t, 1600, res.LostValueHa, 1e-9)
	assert.InDelta(t, 32000, res.LostValue, 1e-6)

	res, err = EconomicLoss(LossInput{PH: 6.5, YieldTHa: 8, PricePerTon: 800, AreaHa: 1})
	require.NoError(t, err)
	assert.Zero(t, res.LostValue)

	bands := map[float64]float64{4.4: 0.35, 4.5: 0.25, 5.2: 0.15, 5.9: 0.05, 6.0: 0}
	for ph, want := range bands {
		got, err := YieldLossFraction(ph)
		require.NoError(t, err)
		assert.Equal(t, want, got, "pH %.1f", ph)
	}
}

func TestNutrientDose(t *testing.T) {
	// 43.64 kg P = 100 kg P2O5 -> 217.4 kg of a 46 % P2O5 product
	dose, err := NutrientDose(43.64, P, 46)
	require.NoError(t, err)
	assert.InDelta(t, 217.39, dose, 0.01)

	_, err = NutrientDose(10, CaO, 40)
	assert.ErrorIs(t, err, ErrUnsupportedConversion)
	_, err = NutrientDose(10, K, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 17.9, Round(17.899999, 2))
	assert.Equal(t, 1.01, Round(1.006, 2))
}
