// pdf.go
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
	"time"

	"github.com/agrolime/limeportal/internal/agronomy"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/go-pdf/fpdf"
)

// pdfColumn is one column of the parcel table
type pdfColumn struct {
	title string
	width float64
	align string
}

var parcelColumns = []pdfColumn{
	{"Parcel", 55, "L"},
	{"Area [ha]", 22, "R"},
	{"Soil category", 30, "L"},
	{"Latest pH", 22, "R"},
	{"Sampled", 25, "C"},
	{"CaO need [t/ha]", 30, "R"},
}

// ParcelPDF writes the customer parcel report: A4 portrait, a parcel table with the latest pH and
// CaO need, then the recommended liming products.
func ParcelPDF(w io.Writer, report *services.ParcelReport, products []models.LimingProduct, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(latin(s)) }

	pdf.SetTitle("Parcel report", true)
	pdf.SetAuthor("limeportal", true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Parcel report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+now.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	if p := report.Profile; p != nil {
		name := p.FullName
		if name == "" {
			name = p.Email
		}
		pdf.CellFormat(0, 6, text("Customer: "+name), "", 1, "L", false, 0, "")
		if p.FarmName != "" {
			pdf.CellFormat(0, 6, text("Farm: "+p.FarmName), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 230, 215)
	for _, col := range parcelColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(report.Rows) == 0 {
		pdf.CellFormat(0, 7, "No parcels.", "1", 1, "C", false, 0, "")
	}
	for _, row := range report.Rows {
		cells := parcelCells(row)
		for i, col := range parcelColumns {
			pdf.CellFormat(col.width, 7, text(cells[i]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(products) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Liming products", "", 1, "L", false, 0, "")
		for _, p := range products {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(0, 6, text(fmt.Sprintf("%s (CaO %.0f%%, MgO %.0f%%)", p.Name, p.CaOContent, p.MgOContent)), "", 1, "L", false, 0, "")
			if desc := PlainText(p.Description); desc != "" {
				pdf.SetFont("Helvetica", "", 9)
				pdf.MultiCell(0, 5, text(desc), "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	return pdf.Output(w)
}

func parcelCells(row services.ParcelReportRow) []string {
	cells := []string{
		row.Parcel.Name,
		fmt.Sprintf("%.2f", row.Parcel.AreaHa),
		row.Parcel.SoilCategory,
		"-",
		"-",
		"-",
	}
	if row.Latest != nil {
		cells[3] = fmt.Sprintf("%.1f", row.Latest.PH)
		cells[4] = row.Latest.SampledAt.Format("2006-01-02")
	}
	if row.CaONeedTHa != nil {
		cells[5] = fmt.Sprintf("%.2f", agronomy.Round(*row.CaONeedTHa, 2))
	}
	return cells
}
