package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/agrolime/limeportal/internal/export"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(body)
}

func reportName(prefix, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, time.Now().UTC().Format("2006-01-02"), ext)
}

// ParcelsPDF handles GET /api/portal/reports/parcels.pdf
// @Summary Parcel report as PDF
// @Description Parcels with the latest soil pH, CaO need and the liming product range
// @Tags Reports
// @Produce application/pdf
// @Security CookieAuth
// @Success 200 {file} binary
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /portal/reports/parcels.pdf [get]
func (h *PortalHandler) ParcelsPDF(c *fiber.Ctx) error {
	db := dbFor(c, h.DB)
	report, err := services.BuildParcelReport(db, userID(c))
	if err != nil {
		return serviceError(c, err, "parcelsPDF")
	}
	products, err := services.ListCatalog[models.LimingProduct](db, true)
	if err != nil {
		return serviceError(c, err, "parcelsPDF")
	}

	var buf bytes.Buffer
	if err := export.ParcelPDF(&buf, report, products, time.Now()); err != nil {
		return serviceError(c, err, "parcelsPDF")
	}
	return sendAttachment(c, "application/pdf", reportName("parcels", "pdf"), buf.Bytes())
}

// ParcelsXLSX handles GET /api/portal/reports/parcels.xlsx
// @Summary Parcel report as Excel workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security CookieAuth
// @Success 200 {file} binary
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /portal/reports/parcels.xlsx [get]
func (h *PortalHandler) ParcelsXLSX(c *fiber.Ctx) error {
	report, err := services.BuildParcelReport(dbFor(c, h.DB), userID(c))
	if err != nil {
		return serviceError(c, err, "parcelsXLSX")
	}

	var buf bytes.Buffer
	if err := export.ParcelWorkbook(&buf, report); err != nil {
		return serviceError(c, err, "parcelsXLSX")
	}
	return sendAttachment(c, xlsxContentType, reportName("parcels", "xlsx"), buf.Bytes())
}

// RequestsXLSX handles GET /api/admin/reports/requests.xlsx
// @Summary Liming requests as Excel workbook
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security CookieAuth
// @Param status query string false "Request status filter"
// @Success 200 {file} binary
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/reports/requests.xlsx [get]
func (h *AdminHandler) RequestsXLSX(c *fiber.Ctx) error {
	requests, err := services.ListRequests(dbFor(c, h.DB), c.Query("status"))
	if err != nil {
		return serviceError(c, err, "requestsXLSX")
	}

	var buf bytes.Buffer
	if err := export.RequestWorkbook(&buf, requests); err != nil {
		return serviceError(c, err, "requestsXLSX")
	}
	return sendAttachment(c, xlsxContentType, reportName("requests", "xlsx"), buf.Bytes())
}
