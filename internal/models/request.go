// request.go
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

package models

import "time"

// Liming request statuses
const (
	RequestPending   = "pending"
	RequestInReview  = "in_review"
	RequestScheduled = "scheduled"
	RequestCompleted = "completed"
	RequestCancelled = "cancelled"
)

var requestTransitions = map[string][]string{
	RequestPending:   {RequestInReview, RequestCancelled},
	RequestInReview:  {RequestScheduled, RequestPending, RequestCancelled},
	RequestScheduled: {RequestCompleted, RequestCancelled},
}

// ValidRequestStatus reports whether s is a known status
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestPending, RequestInReview, RequestScheduled, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a request may move from one status to another.
// Staying in the same status is allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return ValidRequestStatus(from)
	}
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LimingRequest is a customer's request for a liming service
type LimingRequest struct {
	Base
	UserID        string     `gorm:"size:64;not null;index" json:"userId"`
	ParcelID      *string    `gorm:"size:36;index" json:"parcelId"`
	ProductID     *string    `gorm:"size:36" json:"productId"`
	AreaHa        float64    `gorm:"not null" json:"areaHa"`
	DoseTHa       *float64   `json:"doseTHa"`
	PreferredDate *time.Time `json:"preferredDate"`
	Status        string     `gorm:"size:16;not null;default:'pending';index" json:"status"`
	Notes         string     `gorm:"type:text" json:"notes"`
	AdminNotes    string     `gorm:"type:text" json:"adminNotes"`
}

// TableName overrides the table name for LimingRequest
func (LimingRequest) TableName() string {
	return "liming_requests"
}
