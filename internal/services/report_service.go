package services

import (
	"github.com/agrolime/limeportal/internal/agronomy"
	"github.com/agrolime/limeportal/internal/models"
	"gorm.io/gorm"
)

// ParcelReportRow is one parcel line of the customer report
type ParcelReportRow struct {
	Parcel     models.Parcel
	Latest     *models.SoilAnalysis
	CaONeedTHa *float64
}

// ParcelReport is the data behind the customer PDF and XLSX reports
type ParcelReport struct {
	Profile  *models.Profile
	Rows     []ParcelReportRow
	Analyses []models.SoilAnalysis
	Parcels  map[string]string
}

// BuildParcelReport collects a customer's parcels with their newest analysis and CaO need
func BuildParcelReport(db *gorm.DB, userID string) (*ParcelReport, error) {
	profile, err := GetProfile(db, userID)
	if err != nil {
		return nil, err
	}
	parcels, err := ListParcels(db, userID)
	if err != nil {
		return nil, err
	}
	analyses, err := ListUserAnalyses(db, userID)
	if err != nil {
		return nil, err
	}
	latest := latestByParcel(analyses)

	report := &ParcelReport{
		Profile:  profile,
		Rows:     make([]ParcelReportRow, 0, len(parcels)),
		Analyses: analyses,
		Parcels:  make(map[string]string, len(parcels)),
	}
	for _, p := range parcels {
		row := ParcelReportRow{Parcel: p}
		report.Parcels[p.ID] = p.Name
		if a, ok := latest[p.ID]; ok {
			a := a
			row.Latest = &a
			if need, err := agronomy.LimeRequirement(a.PH, agronomy.SoilCategory(p.SoilCategory)); err == nil {
				row.CaONeedTHa = &need
			}
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}
