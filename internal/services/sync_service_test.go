package services

import (
	"context"
	"testing"

	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBuildSyncSnapshot(t *testing.T) {
	db := testutil.NewDB(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	_, err := EnsureProfile(db, &SessionUser{ID: "u1", Email: "farmer@example.com"})
	require.NoError(t, err)
	parcel, err := CreateParcel(db, "u1", ParcelInput{Name: "North", AreaHa: area(5), SoilCategory: "light"})
	require.NoError(t, err)
	_, err = CreateAnalyses(db, "u1", parcel.ID, []AnalysisInput{{PH: area(5.2)}})
	require.NoError(t, err)
	_, err = CreateParcel(db, "u2", ParcelInput{Name: "Other", AreaHa: area(5), SoilCategory: "light"})
	require.NoError(t, err)
	require.NoError(t, CreateCatalog(db, &models.LimingProduct{Name: "Kreda", CaOContent: 50, Active: true}))

	snap := BuildSyncSnapshot(context.Background(), db, "u1")
	assert.Empty(t, snap.Errors)
	require.NotNil(t, snap.Profile)
	assert.Len(t, snap.Parcels, 1)
	assert.Len(t, snap.Analyses, 1)
	assert.Empty(t, snap.Requests)
	assert.Len(t, snap.LimingProducts, 1)
	assert.Empty(t, snap.FertilizationProducts)
	assert.False(t, snap.SyncedAt.IsZero())
}

func TestBuildSyncSnapshotPartialFailure(t *testing.T) {
	db := testutil.NewDB(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	_, err := CreateParcel(db, "u1", ParcelInput{Name: "North", AreaHa: area(5), SoilCategory: "light"})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.LimingRequest{}))

	snap := BuildSyncSnapshot(context.Background(), db, "u1")
	assert.Contains(t, snap.Errors, SyncRequests)
	assert.Contains(t, snap.Errors, SyncProfile, "no profile yet")
	assert.NotContains(t, snap.Errors, SyncParcels)
	assert.Len(t, snap.Parcels, 1)
	assert.Nil(t, snap.Requests)
}
