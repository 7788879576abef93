package models

import "time"

// Parcel is a managed unit of agricultural land belonging to a customer
type Parcel struct {
	Base
	UserID          string  `gorm:"size:64;not null;index" json:"userId"`
	Name            string  `gorm:"size:255;not null" json:"name"`
	AreaHa          float64 `gorm:"not null" json:"areaHa"`
	SoilCategory    string  `gorm:"size:16;not null" json:"soilCategory"`
	Location        string  `gorm:"size:255" json:"location"`
	CadastralNumber string  `gorm:"size:64" json:"cadastralNumber"`
	CropType        string  `gorm:"size:64" json:"cropType"`
	Notes           string  `gorm:"type:text" json:"notes"`
}

// TableName overrides the table name for Parcel
func (Parcel) TableName() string {
	return "parcels"
}

// SoilAnalysis is a lab-measured record of a parcel's pH and nutrient content.
// Nutrient values are mg per 100 g of soil; nil means not measured.
type SoilAnalysis struct {
	Base
	ParcelID      string    `gorm:"size:36;not null;index" json:"parcelId"`
	UserID        string    `gorm:"size:64;not null;index" json:"userId"`
	SampledAt     time.Time `gorm:"not null;index" json:"sampledAt"`
	PH            float64   `gorm:"column:ph;not null" json:"ph"`
	P2O5          *float64  `gorm:"column:p2o5" json:"p2o5"`
	K2O           *float64  `gorm:"column:k2o" json:"k2o"`
	Mg            *float64  `gorm:"column:mg" json:"mg"`
	OrganicMatter *float64  `json:"organicMatter"`
	LabName       string    `gorm:"size:255" json:"labName"`
	Notes         string    `gorm:"type:text" json:"notes"`
}

// TableName overrides the table name for SoilAnalysis
func (SoilAnalysis) TableName() string {
	return "soil_analyses"
}
