package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *services.ParcelReport {
	sampled := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	need := 4.5
	p2o5 := 11.2
	parcel := models.Parcel{Base: models.Base{ID: "p1"}, Name: "Pole za stodołą", AreaHa: 10, SoilCategory: "medium"}
	analysis := models.SoilAnalysis{Base: models.Base{ID: "a1"}, ParcelID: "p1", SampledAt: sampled, PH: 4.8, P2O5: &p2o5}
	return &services.ParcelReport{
		Profile: &models.Profile{ID: "u1", Email: "jan@example.com", FullName: "Łukasz Żółć", FarmName: "Gospodarstwo Łąka"},
		Rows: []services.ParcelReportRow{
			{Parcel: parcel, Latest: &analysis, CaONeedTHa: &need},
			{Parcel: models.Parcel{Base: models.Base{ID: "p2"}, Name: "Bare", AreaHa: 2, SoilCategory: "light"}},
		},
		Analyses: []models.SoilAnalysis{analysis},
		Parcels:  map[string]string{"p1": parcel.Name},
	}
}

func TestPlainText(t *testing.T) {
	html := `<h2>Dolomit</h2><p>Wapno   magnezowe <b>granulowane</b>.</p><ul><li>CaO 30%</li><li>MgO 18%</li></ul>`
	assert.Equal(t, "Dolomit\nWapno magnezowe granulowane.\n- CaO 30%\n- MgO 18%", PlainText(html))
	assert.Equal(t, "plain text", PlainText("  plain\n text "))
	assert.Equal(t, "inline only", PlainText("<span>inline</span> <em>only</em>"))
	assert.Equal(t, "", PlainText(""))
}

func TestLatin(t *testing.T) {
	assert.Equal(t, "Lukasz Zolc, zrodlo wapnia", latin("Łukasz Żółć, źródło wapnia"))
}

func TestParcelPDF(t *testing.T) {
	products := []models.LimingProduct{
		{Name: "Kreda nawozowa", CaOContent: 50, Description: "<p>Naturalna <strong>kreda</strong>.</p>"},
	}
	var buf bytes.Buffer
	require.NoError(t, ParcelPDF(&buf, sampleReport(), products, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)

	buf.Reset()
	require.NoError(t, ParcelPDF(&buf, &services.ParcelReport{}, nil, time.Now()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestParcelWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ParcelWorkbook(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetParcels, SheetAnalyses}, f.GetSheetList())

	rows, err := f.GetRows(SheetParcels)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Parcel", rows[0][0])
	assert.Equal(t, "Pole za stodołą", rows[1][0])
	assert.Equal(t, "4.5", rows[1][5])

	styleID, err := f.GetCellStyle(SheetParcels, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	rows, err = f.GetRows(SheetAnalyses)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Pole za stodołą", "2024-04-02", "4.8", "11.2"}, rows[1][:4])
}

func TestRequestWorkbook(t *testing.T) {
	parcel := "p1"
	dose := 3.2
	requests := []models.LimingRequest{
		{Base: models.Base{ID: "r1"}, UserID: "u1", ParcelID: &parcel, AreaHa: 7.5, DoseTHa: &dose, Status: models.RequestScheduled},
		{Base: models.Base{ID: "r2"}, UserID: "u2", AreaHa: 1, Status: models.RequestPending},
	}
	var buf bytes.Buffer
	require.NoError(t, RequestWorkbook(&buf, requests))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetRequests}, f.GetSheetList())

	rows, err := f.GetRows(SheetRequests)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "scheduled", rows[1][3])
	assert.Equal(t, "p1", rows[1][7])
}
