package services

import (
	"math"
	"testing"

	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/testutil"
	"github.com/agrolime/limeportal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func area(v float64) types.FlexFloat64 {
	return types.FlexFloat64{Value: v, Set: true}
}

func newParcel(t *testing.T, svc func() (*models.Parcel, error)) *models.Parcel {
	t.Helper()
	p, err := svc()
	require.NoError(t, err)
	return p
}

func TestParcelValidation(t *testing.T) {
	db := testutil.NewDB(t)

	cases := map[string]ParcelInput{
		"missing name":  {AreaHa: area(1), SoilCategory: "light"},
		"zero area":     {Name: "North", AreaHa: area(0), SoilCategory: "light"},
		"unset area":    {Name: "North", SoilCategory: "light"},
		"bad category":  {Name: "North", AreaHa: area(1), SoilCategory: "peat"},
		"NaN area":      {Name: "North", AreaHa: area(math.NaN()), SoilCategory: "light"},
		"infinite area": {Name: "North", AreaHa: area(math.Inf(1)), SoilCategory: "light"},
	}
	for name, in := range cases {
		_, err := CreateParcel(db, "u1", in)
		assert.ErrorIs(t, err, ErrValidation, name)
	}
	assert.Zero(t, testutil.Count(t, db, &models.Parcel{}))
}

func TestAnalysesRejectNonFiniteValues(t *testing.T) {
	db := testutil.NewDB(t)
	parcel, err := CreateParcel(db, "u1", ParcelInput{Name: "North", AreaHa: area(3), SoilCategory: "light"})
	require.NoError(t, err)

	for name, in := range map[string]AnalysisInput{
		"NaN pH":          {PH: area(math.NaN())},
		"infinite pH":     {PH: area(math.Inf(1))},
		"negative inf pH": {PH: area(math.Inf(-1))},
		"NaN p2o5":        {PH: area(6), P2O5: area(math.NaN())},
		"infinite k2o":    {PH: area(6), K2O: area(math.Inf(1))},
	} {
		_, err := CreateAnalyses(db, "u1", parcel.ID, []AnalysisInput{in})
		assert.ErrorIs(t, err, ErrValidation, name)
	}
	assert.Zero(t, testutil.Count(t, db, &models.SoilAnalysis{}))
}

func TestParcelOwnerIsolation(t *testing.T) {
	db := testutil.NewDB(t)

	p := newParcel(t, func() (*models.Parcel, error) {
		return CreateParcel(db, "u1", ParcelInput{Name: " North ", AreaHa: area(12.5), SoilCategory: "medium"})
	})
	assert.Equal(t, "North", p.Name)
	assert.Len(t, p.ID, 36)

	_, err := GetParcel(db, "u2", p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = UpdateParcel(db, "u2", p.ID, ParcelInput{Name: "Stolen", AreaHa: area(1), SoilCategory: "light"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, DeleteParcel(db, "u2", p.ID), ErrNotFound)

	list, err := ListParcels(db, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)

	updated, err := UpdateParcel(db, "u1", p.ID, ParcelInput{Name: "North field", AreaHa: area(13), SoilCategory: "heavy"})
	require.NoError(t, err)
	assert.Equal(t, "heavy", updated.SoilCategory)

	got, err := GetParcel(db, "u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "North field", got.Name)
	assert.Equal(t, 13.0, got.AreaHa)
}

func TestDeleteParcelRemovesAnalyses(t *testing.T) {
	db := testutil.NewDB(t)

	keep := newParcel(t, func() (*models.Parcel, error) {
		return CreateParcel(db, "u1", ParcelInput{Name: "Keep", AreaHa: area(1), SoilCategory: "light"})
	})
	drop := newParcel(t, func() (*models.Parcel, error) {
		return CreateParcel(db, "u1", ParcelInput{Name: "Drop", AreaHa: area(1), SoilCategory: "light"})
	})

	_, err := CreateAnalyses(db, "u1", keep.ID, []AnalysisInput{{PH: area(5.1)}})
	require.NoError(t, err)
	_, err = CreateAnalyses(db, "u1", drop.ID, []AnalysisInput{{PH: area(4.9)}, {PH: area(5.0)}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), testutil.Count(t, db, &models.SoilAnalysis{}))

	require.NoError(t, DeleteParcel(db, "u1", drop.ID))
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.SoilAnalysis{}))
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Parcel{}))
}

func TestAnalyses(t *testing.T) {
	db := testutil.NewDB(t)

	p := newParcel(t, func() (*models.Parcel, error) {
		return CreateParcel(db, "u1", ParcelInput{Name: "North", AreaHa: area(3), SoilCategory: "light"})
	})

	_, err := CreateAnalyses(db, "u1", p.ID, []AnalysisInput{{PH: area(15)}})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = CreateAnalyses(db, "u1", p.ID, []AnalysisInput{{PH: area(5), K2O: area(-1)}})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = CreateAnalyses(db, "u1", p.ID, []AnalysisInput{{PH: area(5), SampledAt: "yesterday"}})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = CreateAnalyses(db, "u2", p.ID, []AnalysisInput{{PH: area(5)}})
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := CreateAnalyses(db, "u1", p.ID, []AnalysisInput{
		{PH: area(4.8), SampledAt: "2024-03-01", P2O5: area(12.1)},
		{PH: area(5.6), SampledAt: "15.04.2025"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].P2O5)
	assert.Nil(t, rows[0].K2O)

	list, err := ListAnalyses(db, "u1", p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 5.6, list[0].PH, "newest first")

	assert.ErrorIs(t, DeleteAnalysis(db, "u2", list[0].ID), ErrNotFound)
	require.NoError(t, DeleteAnalysis(db, "u1", list[0].ID))
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.SoilAnalysis{}))
}

func TestBuildParcelReport(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := EnsureProfile(db, &SessionUser{ID: "u1", Email: "farmer@example.com"})
	require.NoError(t, err)

	acid := newParcel(t, func() (*models.Parcel, error) {
		return CreateParcel(db, "u1", ParcelInput{Name: "Acid", AreaHa: area(10), SoilCategory: "medium"})
	})
	newParcel(t, func() (*models.Parcel, error) {
		return CreateParcel(db, "u1", ParcelInput{Name: "Bare", AreaHa: area(2), SoilCategory: "light"})
	})
	_, err = CreateAnalyses(db, "u1", acid.ID, []AnalysisInput{
		{PH: area(6.5), SampledAt: "2020-01-01"},
		{PH: area(4.8), SampledAt: "2024-01-01"},
	})
	require.NoError(t, err)

	report, err := BuildParcelReport(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, "farmer@example.com", report.Profile.Email)
	require.Len(t, report.Rows, 2)
	assert.Len(t, report.Analyses, 2)

	row := report.Rows[0]
	assert.Equal(t, "Acid", row.Parcel.Name)
	require.NotNil(t, row.Latest)
	assert.Equal(t, 4.8, row.Latest.PH)
	require.NotNil(t, row.CaONeedTHa)
	assert.Equal(t, 4.5, *row.CaONeedTHa)

	assert.Nil(t, report.Rows[1].Latest)
	assert.Nil(t, report.Rows[1].CaONeedTHa)
	assert.Equal(t, "Acid", report.Parcels[acid.ID])
}
