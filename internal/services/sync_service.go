// sync_service.go
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
	"context"
	"sync"
	"time"

	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Sync snapshot parts
const (
	SyncProfile               = "profile"
	SyncParcels               = "parcels"
	SyncAnalyses              = "analyses"
	SyncRequests              = "requests"
	SyncLimingProducts        = "limingProducts"
	SyncFertilizationProducts = "fertilizationProducts"
)

// SyncSnapshot is everything the portal client caches for one customer
type SyncSnapshot struct {
	Profile               *models.Profile               `json:"profile"`
	Parcels               []models.Parcel               `json:"parcels"`
	Analyses              []models.SoilAnalysis         `json:"analyses"`
	Requests              []models.LimingRequest        `json:"requests"`
	LimingProducts        []models.LimingProduct        `json:"limingProducts"`
	FertilizationProducts []models.FertilizationProduct `json:"fertilizationProducts"`
	Errors                map[string]string             `json:"errors"`
	SyncedAt              time.Time                     `json:"syncedAt"`
}

// BuildSyncSnapshot fetches every part of the snapshot in parallel. A failing part is logged and
// reported in Errors; the others are still returned. The call never fails as a whole.
func BuildSyncSnapshot(ctx context.Context, db *gorm.DB, userID string) *SyncSnapshot {
	snap := &SyncSnapshot{Errors: map[string]string{}}
	tx := db.WithContext(ctx)

	var mu sync.Mutex
	fail := func(part string, err error) {
		logging.L().Warn("sync part failed", zap.String("part", part), zap.String("user", userID), zap.Error(err))
		mu.Lock()
		snap.Errors[part] = err.Error()
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		p, err := GetProfile(tx, userID)
		if err != nil {
			fail(SyncProfile, err)
			return nil
		}
		snap.Profile = p
		return nil
	})
	g.Go(func() error {
		p, err := ListParcels(tx, userID)
		if err != nil {
			fail(SyncParcels, err)
			return nil
		}
		snap.Parcels = p
		return nil
	})
	g.Go(func() error {
		a, err := ListUserAnalyses(tx, userID)
		if err != nil {
			fail(SyncAnalyses, err)
			return nil
		}
		snap.Analyses = a
		return nil
	})
	g.Go(func() error {
		r, err := ListUserRequests(tx, userID)
		if err != nil {
			fail(SyncRequests, err)
			return nil
		}
		snap.Requests = r
		return nil
	})
	g.Go(func() error {
		p, err := ListCatalog[models.LimingProduct](tx, true)
		if err != nil {
			fail(SyncLimingProducts, err)
			return nil
		}
		snap.LimingProducts = p
		return nil
	})
	g.Go(func() error {
		p, err := ListCatalog[models.FertilizationProduct](tx, true)
		if err != nil {
			fail(SyncFertilizationProducts, err)
			return nil
		}
		snap.FertilizationProducts = p
		return nil
	})
	_ = g.Wait()

	snap.SyncedAt = time.Now().UTC()
	return snap
}
