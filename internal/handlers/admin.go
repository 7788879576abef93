// admin.go
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

package handlers

import (
	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/agrolime/limeportal/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Audited entities
const (
	entityLimingProducts        = "liming_products"
	entityFertilizationProducts = "fertilization_products"
	entityImages                = "portal_images"
	entityRequests              = "liming_requests"
	entityLeads                 = "leads"
	entityProfiles              = "profiles"
)

// AdminHandler handles the admin routes. AuthAdmin has already checked the role.
type AdminHandler struct {
	DB *gorm.DB
}

func (h *AdminHandler) audit(c *fiber.Ctx, action, entity, id string, details interface{}) {
	services.RecordAudit(dbFor(c, h.DB), userID(c), action, entity, id, details)
}

func listCatalog[T services.CatalogRow](h *AdminHandler, c *fiber.Ctx, op string) error {
	rows, err := services.ListCatalog[T](dbFor(c, h.DB), false)
	if err != nil {
		return serviceError(c, err, op)
	}
	return utils.ListResponse(c, rows)
}

func createCatalog[T services.CatalogRow](h *AdminHandler, c *fiber.Ctx, entity, op string) error {
	var row T
	if err := c.BodyParser(&row); err != nil {
		return invalidBody(c)
	}
	if err := services.CreateCatalog(dbFor(c, h.DB), &row); err != nil {
		return serviceError(c, err, op)
	}
	id := services.CatalogID(&row)
	h.audit(c, services.AuditCreate, entity, id, row)
	return utils.MutationSuccessResponse(c, fiber.StatusCreated, id, row)
}

func updateCatalog[T services.CatalogRow](h *AdminHandler, c *fiber.Ctx, entity, op string) error {
	var row T
	if err := c.BodyParser(&row); err != nil {
		return invalidBody(c)
	}
	id := c.Params("id")
	updated, err := services.UpdateCatalog(dbFor(c, h.DB), id, &row)
	if err != nil {
		return serviceError(c, err, op)
	}
	h.audit(c, services.AuditUpdate, entity, id, updated)
	return utils.MutationSuccessResponse(c, fiber.StatusOK, id, updated)
}

func deleteCatalog[T services.CatalogRow](h *AdminHandler, c *fiber.Ctx, entity, op string) error {
	id := c.Params("id")
	if err := services.DeleteCatalog[T](dbFor(c, h.DB), id); err != nil {
		return serviceError(c, err, op)
	}
	h.audit(c, services.AuditDelete, entity, id, nil)
	return utils.MutationSuccessResponse(c, fiber.StatusOK, id, nil)
}

// ListLimingProducts handles GET /api/admin/liming-products
// @Summary All liming products, including inactive
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Success 200 {object} utils.ListResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/liming-products [get]
func (h *AdminHandler) ListLimingProducts(c *fiber.Ctx) error {
	return listCatalog[models.LimingProduct](h, c, "listLimingProducts")
}

// CreateLimingProduct handles POST /api/admin/liming-products
// @Summary Create a liming product
// @Tags Admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param product body models.LimingProduct true "Product"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/liming-products [post]
func (h *AdminHandler) CreateLimingProduct(c *fiber.Ctx) error {
	return createCatalog[models.LimingProduct](h, c, entityLimingProducts, "createLimingProduct")
}

// UpdateLimingProduct handles PUT /api/admin/liming-products/:id
// @Summary Replace a liming product
// @Tags Admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Product ID"
// @Param product body models.LimingProduct true "Product"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/liming-products/{id} [put]
func (h *AdminHandler) UpdateLimingProduct(c *fiber.Ctx) error {
	return updateCatalog[models.LimingProduct](h, c, entityLimingProducts, "updateLimingProduct")
}

// DeleteLimingProduct handles DELETE /api/admin/liming-products/:id
// @Summary Delete a liming product
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Param id path string true "Product ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/liming-products/{id} [delete]
func (h *AdminHandler) DeleteLimingProduct(c *fiber.Ctx) error {
	return deleteCatalog[models.LimingProduct](h, c, entityLimingProducts, "deleteLimingProduct")
}

// ListFertilizationProducts handles GET /api/admin/fertilization-products
// @Summary All fertilization products, including inactive
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Success 200 {object} utils.ListResponseStruct
// @Router /admin/fertilization-products [get]
func (h *AdminHandler) ListFertilizationProducts(c *fiber.Ctx) error {
	return listCatalog[models.FertilizationProduct](h, c, "listFertilizationProducts")
}

// CreateFertilizationProduct handles POST /api/admin/fertilization-products
// @Summary Create a fertilization product
// @Tags Admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param product body models.FertilizationProduct true "Product"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/fertilization-products [post]
func (h *AdminHandler) CreateFertilizationProduct(c *fiber.Ctx) error {
	return createCatalog[models.FertilizationProduct](h, c, entityFertilizationProducts, "createFertilizationProduct")
}

// UpdateFertilizationProduct handles PUT /api/admin/fertilization-products/:id
// @Summary Replace a fertilization product
// @Tags Admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Product ID"
// @Param product body models.FertilizationProduct true "Product"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/fertilization-products/{id} [put]
func (h *AdminHandler) UpdateFertilizationProduct(c *fiber.Ctx) error {
	return updateCatalog[models.FertilizationProduct](h, c, entityFertilizationProducts, "updateFertilizationProduct")
}

// DeleteFertilizationProduct handles DELETE /api/admin/fertilization-products/:id
// @Summary Delete a fertilization product
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Param id path string true "Product ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/fertilization-products/{id} [delete]
func (h *AdminHandler) DeleteFertilizationProduct(c *fiber.Ctx) error {
	return deleteCatalog[models.FertilizationProduct](h, c, entityFertilizationProducts, "deleteFertilizationProduct")
}

// ListImages handles GET /api/admin/images
// @Summary All portal images, including inactive
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Param section query string false "Page section"
// @Success 200 {object} utils.ListResponseStruct
// @Router /admin/images [get]
func (h *AdminHandler) ListImages(c *fiber.Ctx) error {
	images, err := services.ListImages(dbFor(c, h.DB), c.Query("section"), false)
	if err != nil {
		return serviceError(c, err, "listImages")
	}
	return utils.ListResponse(c, images)
}

// CreateImage handles POST /api/admin/images
// @Summary Add a portal image
// @Tags Admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param image body models.PortalImage true "Image"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/images [post]
func (h *AdminHandler) CreateImage(c *fiber.Ctx) error {
	return createCatalog[models.PortalImage](h, c, entityImages, "createImage")
}

// UpdateImage handles PUT /api/admin/images/:id
// @Summary Replace a portal image
// @Tags Admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Image ID"
// @Param image body models.PortalImage true "Image"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/images/{id} [put]
func (h *AdminHandler) UpdateImage(c *fiber.Ctx) error {
	return updateCatalog[models.PortalImage](h, c, entityImages, "updateImage")
}

// DeleteImage handles DELETE /api/admin/images/:id
// @Summary Delete a portal image
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Param id path string true "Image ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/images/{id} [delete]
func (h *AdminHandler) DeleteImage(c *fiber.Ctx) error {
	return deleteCatalog[models.PortalImage](h, c, entityImages, "deleteImage")
}

// ListRequests handles GET /api/admin/requests?status=
// @Summary All liming requests
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Param status query string false "Status filter"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/requests [get]
func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	requests, err := services.ListRequests(dbFor(c, h.DB), c.Query("status"))
	if err != nil {
		return serviceError(c, err, "listRequests")
	}
	return utils.ListResponse(c, requests)
}

// UpdateRequestStatus handles PATCH /api/admin/requests/:id/status
// @Summary Move a liming request through its workflow
// @Description pending → in_review|cancelled, in_review → scheduled|pending|cancelled, scheduled → completed|cancelled
// @Tags Admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Request ID"
// @Param status body services.StatusInput true "New status"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/requests/{id}/status [patch]
func (h *AdminHandler) UpdateRequestStatus(c *fiber.Ctx) error {
	var input services.StatusInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	id := c.Params("id")
	change, err := services.UpdateRequestStatus(dbFor(c, h.DB), id, input)
	if err != nil {
		return serviceError(c, err, "updateRequestStatus")
	}
	h.audit(c, services.AuditStatus, entityRequests, id, fiber.Map{"from": change.OldStatus, "to": change.Request.Status})
	return utils.MutationSuccessResponse(c, fiber.StatusOK, id, change.Request)
}

// ListLeads handles GET /api/admin/leads
// @Summary Contact form leads
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Param status query string false "Lead status filter"
// @Success 200 {object} utils.ListResponseStruct
// @Router /admin/leads [get]
func (h *AdminHandler) ListLeads(c *fiber.Ctx) error {
	leads, err := services.ListLeads(dbFor(c, h.DB), c.Query("status"))
	if err != nil {
		return serviceError(c, err, "listLeads")
	}
	return utils.ListResponse(c, leads)
}

// LeadStatusInput is the body of a lead status change
type LeadStatusInput struct {
	Status string `json:"status"`
}

// UpdateLeadStatus handles PATCH /api/admin/leads/:id/status
// @Summary Set a lead's follow-up status
// @Tags Admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Lead ID"
// @Param status body LeadStatusInput true "new, contacted or closed"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/leads/{id}/status [patch]
func (h *AdminHandler) UpdateLeadStatus(c *fiber.Ctx) error {
	var input LeadStatusInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	id := c.Params("id")
	lead, err := services.UpdateLeadStatus(dbFor(c, h.DB), id, input.Status)
	if err != nil {
		return serviceError(c, err, "updateLeadStatus")
	}
	h.audit(c, services.AuditStatus, entityLeads, id, fiber.Map{"to": lead.Status})
	return utils.MutationSuccessResponse(c, fiber.StatusOK, id, lead)
}

// ListProfiles handles GET /api/admin/profiles
// @Summary All user profiles
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Success 200 {object} utils.ListResponseStruct
// @Router /admin/profiles [get]
func (h *AdminHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := services.ListProfiles(dbFor(c, h.DB))
	if err != nil {
		return serviceError(c, err, "listProfiles")
	}
	return utils.ListResponse(c, profiles)
}

// RoleInput is the body of a role change
type RoleInput struct {
	Role string `json:"role"`
}

// SetProfileRole handles PATCH /api/admin/profiles/:id/role
// @Summary Grant or revoke the admin role
// @Description An admin cannot remove their own admin role
// @Tags Admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Profile ID"
// @Param role body RoleInput true "user or admin"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/profiles/{id}/role [patch]
func (h *AdminHandler) SetProfileRole(c *fiber.Ctx) error {
	var input RoleInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	id := c.Params("id")
	profile, err := services.SetRole(dbFor(c, h.DB), userID(c), id, input.Role)
	if err != nil {
		return serviceError(c, err, "setProfileRole")
	}
	h.audit(c, services.AuditRole, entityProfiles, id, fiber.Map{"role": profile.Role})
	return utils.MutationSuccessResponse(c, fiber.StatusOK, id, profile)
}

// ListAuditLogs handles GET /api/admin/audit-logs?limit=
// @Summary Recent admin mutations
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Maximum rows (default 100, at most 1000)"
// @Success 200 {object} utils.ListResponseStruct
// @Router /admin/audit-logs [get]
func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	logs, err := services.ListAuditLogs(dbFor(c, h.DB), queryInt(c, "limit", 0))
	if err != nil {
		return serviceError(c, err, "listAuditLogs")
	}
	return utils.ListResponse(c, logs)
}

// CalculatorUsage handles GET /api/admin/calculator-usage
// @Summary Calculator runs per calculator
// @Tags Admin
// @Produce json
// @Security CookieAuth
// @Success 200 {object} utils.ListResponseStruct
// @Router /admin/calculator-usage [get]
func (h *AdminHandler) CalculatorUsage(c *fiber.Ctx) error {
	stats, err := services.UsageStats(dbFor(c, h.DB))
	if err != nil {
		return serviceError(c, err, "calculatorUsage")
	}
	return utils.ListResponse(c, stats)
}
