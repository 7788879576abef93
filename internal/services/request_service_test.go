// request_service_test.go
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
	"math"
	"testing"

	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest(t *testing.T) {
	db := testutil.NewDB(t)

	parcel, err := CreateParcel(db, "u1", ParcelInput{Name: "North", AreaHa: area(7.5), SoilCategory: "light"})
	require.NoError(t, err)
	product := models.LimingProduct{Name: "Dolomite", CaOContent: 30, MgOContent: 18, Active: true}
	require.NoError(t, CreateCatalog(db, &product))

	req, err := CreateRequest(db, "u1", RequestInput{ParcelID: parcel.ID, ProductID: product.ID, PreferredDate: "2025-09-01"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, 7.5, req.AreaHa, "area taken from the parcel")
	require.NotNil(t, req.PreferredDate)
	assert.Equal(t, 2025, req.PreferredDate.Year())

	_, err = CreateRequest(db, "u2", RequestInput{ParcelID: parcel.ID})
	assert.ErrorIs(t, err, ErrValidation, "another user's parcel")
	_, err = CreateRequest(db, "u1", RequestInput{AreaHa: area(2), ProductID: "missing"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = CreateRequest(db, "u1", RequestInput{})
	assert.ErrorIs(t, err, ErrValidation, "no area")
	_, err = CreateRequest(db, "u1", RequestInput{AreaHa: area(math.Inf(1))})
	assert.ErrorIs(t, err, ErrValidation, "infinite area")
	_, err = CreateRequest(db, "u1", RequestInput{AreaHa: area(math.NaN())})
	assert.ErrorIs(t, err, ErrValidation, "NaN area")
	_, err = CreateRequest(db, "u1", RequestInput{ParcelID: parcel.ID, AreaHa: area(math.Inf(1))})
	assert.ErrorIs(t, err, ErrValidation, "infinite area overriding the parcel")
	_, err = CreateRequest(db, "u1", RequestInput{AreaHa: area(2), DoseTHa: area(math.Inf(1))})
	assert.ErrorIs(t, err, ErrValidation, "infinite dose")
	_, err = CreateRequest(db, "u1", RequestInput{AreaHa: area(2), DoseTHa: area(math.NaN())})
	assert.ErrorIs(t, err, ErrValidation, "NaN dose")

	assert.Equal(t, int64(1), testutil.Count(t, db, &models.LimingRequest{}))
}

func TestUpdateRequestStatus(t *testing.T) {
	db := testutil.NewDB(t)

	req, err := CreateRequest(db, "u1", RequestInput{AreaHa: area(4)})
	require.NoError(t, err)

	_, err = UpdateRequestStatus(db, req.ID, StatusInput{Status: models.RequestCompleted})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = UpdateRequestStatus(db, req.ID, StatusInput{Status: "lost"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = UpdateRequestStatus(db, "missing", StatusInput{Status: models.RequestInReview})
	assert.ErrorIs(t, err, ErrNotFound)

	notes := "call before arrival"
	change, err := UpdateRequestStatus(db, req.ID, StatusInput{Status: models.RequestInReview, AdminNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, change.OldStatus)
	assert.Equal(t, models.RequestInReview, change.Request.Status)

	change, err = UpdateRequestStatus(db, req.ID, StatusInput{Status: models.RequestInReview})
	require.NoError(t, err, "same status is accepted")
	assert.Equal(t, models.RequestInReview, change.OldStatus)

	for _, s := range []string{models.RequestScheduled, models.RequestCompleted} {
		_, err = UpdateRequestStatus(db, req.ID, StatusInput{Status: s})
		require.NoError(t, err)
	}
	_, err = UpdateRequestStatus(db, req.ID, StatusInput{Status: models.RequestCancelled})
	assert.ErrorIs(t, err, ErrInvalidTransition, "completed is terminal")

	var stored models.LimingRequest
	require.NoError(t, db.First(&stored, "id = ?", req.ID).Error)
	assert.Equal(t, models.RequestCompleted, stored.Status)
	assert.Equal(t, notes, stored.AdminNotes)

	list, err := ListRequests(db, models.RequestCompleted)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = ListRequests(db, models.RequestPending)
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = ListRequests(db, "bogus")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelRequest(t *testing.T) {
	db := testutil.NewDB(t)

	req, err := CreateRequest(db, "u1", RequestInput{AreaHa: area(4)})
	require.NoError(t, err)

	_, err = CancelRequest(db, "u2", req.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	cancelled, err := CancelRequest(db, "u1", req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestCancelled, cancelled.Status)

	_, err = UpdateRequestStatus(db, req.ID, StatusInput{Status: models.RequestInReview})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	mine, err := ListUserRequests(db, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.RequestCancelled, mine[0].Status)
}
