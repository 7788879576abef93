// excel.go
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

package export

import (
	"fmt"
	"io"

	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SheetParcels  = "Parcels"
	SheetAnalyses = "Analyses"
	SheetRequests = "Requests"
)

// sheetWriter fills one sheet row by row. The first row written is the bold header.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	row    int
	header int
	err    error
}

func (s *sheetWriter) write(values ...interface{}) {
	if s.err != nil {
		return
	}
	s.row++
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, s.row)
		if err != nil {
			s.err = err
			return
		}
		if err := s.f.SetCellValue(s.sheet, cell, v); err != nil {
			s.err = err
			return
		}
	}
	if s.row == 1 {
		last, _ := excelize.ColumnNumberToName(len(values))
		if err := s.f.SetRowStyle(s.sheet, 1, 1, s.header); err != nil {
			s.err = err
			return
		}
		s.err = s.f.SetColWidth(s.sheet, "A", last, 18)
	}
}

func newWorkbook(sheets ...string) (*excelize.File, int, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheets[0]); err != nil {
		f.Close()
		return nil, 0, err
	}
	for _, name := range sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, 0, err
		}
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6D7"}},
	})
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, header, nil
}

// optional renders a nullable measurement, leaving the cell empty when unset
func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// ParcelWorkbook writes the customer report as XLSX with a Parcels and an Analyses sheet
func ParcelWorkbook(w io.Writer, report *services.ParcelReport) error {
	f, header, err := newWorkbook(SheetParcels, SheetAnalyses)
	if err != nil {
		return err
	}
	defer f.Close()

	parcels := &sheetWriter{f: f, sheet: SheetParcels, header: header}
	parcels.write("Parcel", "Area [ha]", "Soil category", "Latest pH", "Sampled", "CaO need [t/ha]", "Location", "Crop")
	for _, row := range report.Rows {
		var ph, sampled, need interface{} = "", "", ""
		if row.Latest != nil {
			ph = row.Latest.PH
			sampled = row.Latest.SampledAt.Format("2006-01-02")
		}
		if row.CaONeedTHa != nil {
			need = *row.CaONeedTHa
		}
		parcels.write(row.Parcel.Name, row.Parcel.AreaHa, row.Parcel.SoilCategory, ph, sampled, need, row.Parcel.Location, row.Parcel.CropType)
	}

	analyses := &sheetWriter{f: f, sheet: SheetAnalyses, header: header}
	analyses.write("Parcel", "Sampled", "pH", "P2O5 [mg/100g]", "K2O [mg/100g]", "Mg [mg/100g]", "Organic matter [%]", "Lab")
	for _, a := range report.Analyses {
		analyses.write(report.Parcels[a.ParcelID], a.SampledAt.Format("2006-01-02"), a.PH,
			optional(a.P2O5), optional(a.K2O), optional(a.Mg), optional(a.OrganicMatter), a.LabName)
	}

	if err := firstErr(parcels.err, analyses.err); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	_, err = f.WriteTo(w)
	return err
}

// RequestWorkbook writes the admin liming request export
func RequestWorkbook(w io.Writer, requests []models.LimingRequest) error {
	f, header, err := newWorkbook(SheetRequests)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := &sheetWriter{f: f, sheet: SheetRequests, header: header}
	sheet.write("Request", "Created", "Customer", "Status", "Area [ha]", "Dose [t/ha]", "Preferred date", "Parcel", "Product", "Notes", "Admin notes")
	for _, r := range requests {
		preferred := ""
		if r.PreferredDate != nil {
			preferred = r.PreferredDate.Format("2006-01-02")
		}
		sheet.write(r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.UserID, r.Status, r.AreaHa, optional(r.DoseTHa),
			preferred, deref(r.ParcelID), deref(r.ProductID), r.Notes, r.AdminNotes)
	}
	if sheet.err != nil {
		return fmt.Errorf("failed to build workbook: %w", sheet.err)
	}
	_, err = f.WriteTo(w)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
