// request_service.go
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
	"strings"

	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestInput is the body of a customer liming request
type RequestInput struct {
	ParcelID      string            `json:"parcelId"`
	ProductID     string            `json:"productId"`
	AreaHa        types.FlexFloat64 `json:"areaHa"`
	DoseTHa       types.FlexFloat64 `json:"doseTHa"`
	PreferredDate string            `json:"preferredDate"`
	Notes         string            `json:"notes"`
}

// StatusInput is the body of an admin status change
type StatusInput struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

// StatusChange reports a liming request status update
type StatusChange struct {
	Request   *models.LimingRequest
	OldStatus string
}

// CreateRequest files a liming request. A referenced parcel must belong to the caller and a
// referenced product must exist. The area defaults to the parcel's area.
func CreateRequest(db *gorm.DB, userID string, input RequestInput) (*models.LimingRequest, error) {
	req := models.LimingRequest{
		UserID: userID,
		Status: models.RequestPending,
		Notes:  input.Notes,
	}

	if input.DoseTHa.Set {
		if !input.DoseTHa.Finite() || input.DoseTHa.Value < 0 {
			return nil, fmt.Errorf("%w: dose must not be negative", ErrValidation)
		}
		req.DoseTHa = input.DoseTHa.Ptr()
	}
	if input.PreferredDate != "" {
		t, err := parseDate(input.PreferredDate)
		if err != nil {
			return nil, fmt.Errorf("%w: preferredDate: %v", ErrValidation, err)
		}
		req.PreferredDate = &t
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if id := strings.TrimSpace(input.ParcelID); id != "" {
			parcel, err := GetParcel(tx, userID, id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return fmt.Errorf("%w: unknown parcel", ErrValidation)
				}
				return err
			}
			req.ParcelID = &parcel.ID
			req.AreaHa = parcel.AreaHa
		}
		if id := strings.TrimSpace(input.ProductID); id != "" {
			product, err := GetCatalog[models.LimingProduct](tx, id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return fmt.Errorf("%w: unknown product", ErrValidation)
				}
				return err
			}
			req.ProductID = &product.ID
		}
		if input.AreaHa.Set {
			if !input.AreaHa.Finite() {
				return fmt.Errorf("%w: area must be a number", ErrValidation)
			}
			req.AreaHa = input.AreaHa.Value
		}
		if req.AreaHa <= 0 {
			return fmt.Errorf("%w: area must be greater than zero", ErrValidation)
		}
		return tx.Create(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListUserRequests lists a customer's own requests, newest first
func ListUserRequests(db *gorm.DB, userID string) ([]models.LimingRequest, error) {
	requests := []models.LimingRequest{}
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// CancelRequest lets a customer cancel their own request while the transition allows it
func CancelRequest(db *gorm.DB, userID, id string) (*models.LimingRequest, error) {
	var req models.LimingRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, &req, "id = ? AND user_id = ?", id, userID); err != nil {
			return err
		}
		if !models.CanTransition(req.Status, models.RequestCancelled) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, req.Status, models.RequestCancelled)
		}
		req.Status = models.RequestCancelled
		return tx.Model(&req).Update("status", req.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListRequests lists all requests for the admin view, optionally filtered by status
func ListRequests(db *gorm.DB, status string) ([]models.LimingRequest, error) {
	if status != "" && !models.ValidRequestStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	query := db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	requests := []models.LimingRequest{}
	err := query.Find(&requests).Error
	return requests, err
}

// UpdateRequestStatus moves a request to a new status under a row lock.
// Setting the current status again succeeds without changing anything but the admin notes.
func UpdateRequestStatus(db *gorm.DB, id string, input StatusInput) (*StatusChange, error) {
	if !models.ValidRequestStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, input.Status)
	}

	var req models.LimingRequest
	var old string
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, &req, "id = ?", id); err != nil {
			return err
		}
		old = req.Status
		if !models.CanTransition(old, input.Status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, old, input.Status)
		}

		updates := map[string]interface{}{"status": input.Status}
		if input.AdminNotes != nil {
			updates["admin_notes"] = *input.AdminNotes
		}
		if err := tx.Model(&req).Updates(updates).Error; err != nil {
			return err
		}
		req.Status = input.Status
		if input.AdminNotes != nil {
			req.AdminNotes = *input.AdminNotes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &StatusChange{Request: &req, OldStatus: old}, nil
}

// lockRequest loads a request with SELECT ... FOR UPDATE (a no-op on SQLite)
func lockRequest(tx *gorm.DB, req *models.LimingRequest, query string, args ...interface{}) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(query, args...).
		First(req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
