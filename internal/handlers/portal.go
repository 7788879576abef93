package handlers

import (
	"github.com/agrolime/limeportal/internal/middleware"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/agrolime/limeportal/internal/types"
	"github.com/agrolime/limeportal/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PortalHandler handles the signed-in customer routes. Every query is scoped to the caller.
type PortalHandler struct {
	DB *gorm.DB
}

// GetProfile handles GET /api/portal/profile
// @Summary Own profile
// @Tags Portal
// @Produce json
// @Security CookieAuth
// @Success 200 {object} models.Profile
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /portal/profile [get]
func (h *PortalHandler) GetProfile(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentProfile(c))
}

// UpdateProfile handles PUT /api/portal/profile
// @Summary Update own profile
// @Description Used by the onboarding wizard and the settings page
// @Tags Portal
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param profile body services.ProfileInput true "Profile"
// @Success 200 {object} models.Profile
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /portal/profile [put]
func (h *PortalHandler) UpdateProfile(c *fiber.Ctx) error {
	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	profile, err := services.UpdateProfile(dbFor(c, h.DB), userID(c), input)
	if err != nil {
		return serviceError(c, err, "updateProfile")
	}
	return c.JSON(profile)
}

// ListParcels handles GET /api/portal/parcels
// @Summary Own parcels
// @Tags Portal
// @Produce json
// @Security CookieAuth
// @Success 200 {object} utils.ListResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /portal/parcels [get]
func (h *PortalHandler) ListParcels(c *fiber.Ctx) error {
	parcels, err := services.ListParcels(dbFor(c, h.DB), userID(c))
	if err != nil {
		return serviceError(c, err, "listParcels")
	}
	return utils.ListResponse(c, parcels)
}

// GetParcel handles GET /api/portal/parcels/:id
// @Summary One own parcel
// @Tags Portal
// @Produce json
// @Security CookieAuth
// @Param id path string true "Parcel ID"
// @Success 200 {object} models.Parcel
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portal/parcels/{id} [get]
func (h *PortalHandler) GetParcel(c *fiber.Ctx) error {
	parcel, err := services.GetParcel(dbFor(c, h.DB), userID(c), c.Params("id"))
	if err != nil {
		return serviceError(c, err, "getParcel")
	}
	return c.JSON(parcel)
}

// CreateParcel handles POST /api/portal/parcels
// @Summary Add a parcel
// @Tags Portal
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param parcel body services.ParcelInput true "Parcel"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /portal/parcels [post]
func (h *PortalHandler) CreateParcel(c *fiber.Ctx) error {
	var input services.ParcelInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	parcel, err := services.CreateParcel(dbFor(c, h.DB), userID(c), input)
	if err != nil {
		return serviceError(c, err, "createParcel")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusCreated, parcel.ID, parcel)
}

// UpdateParcel handles PUT /api/portal/parcels/:id
// @Summary Update a parcel
// @Tags Portal
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Parcel ID"
// @Param parcel body services.ParcelInput true "Parcel"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portal/parcels/{id} [put]
func (h *PortalHandler) UpdateParcel(c *fiber.Ctx) error {
	var input services.ParcelInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	parcel, err := services.UpdateParcel(dbFor(c, h.DB), userID(c), c.Params("id"), input)
	if err != nil {
		return serviceError(c, err, "updateParcel")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, parcel.ID, parcel)
}

// DeleteParcel handles DELETE /api/portal/parcels/:id
// @Summary Delete a parcel and its soil analyses
// @Tags Portal
// @Produce json
// @Security CookieAuth
// @Param id path string true "Parcel ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portal/parcels/{id} [delete]
func (h *PortalHandler) DeleteParcel(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := services.DeleteParcel(dbFor(c, h.DB), userID(c), id); err != nil {
		return serviceError(c, err, "deleteParcel")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, id, nil)
}

// ListAnalyses handles GET /api/portal/parcels/:id/analyses
// @Summary Soil analyses of a parcel, newest first
// @Tags Portal
// @Produce json
// @Security CookieAuth
// @Param id path string true "Parcel ID"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portal/parcels/{id}/analyses [get]
func (h *PortalHandler) ListAnalyses(c *fiber.Ctx) error {
	analyses, err := services.ListAnalyses(dbFor(c, h.DB), userID(c), c.Params("id"))
	if err != nil {
		return serviceError(c, err, "listAnalyses")
	}
	return utils.ListResponse(c, analyses)
}

// CreateAnalyses handles POST /api/portal/parcels/:id/analyses
// @Summary Add soil analyses
// @Description Accepts one analysis object or an array of them (lab import)
// @Tags Portal
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Parcel ID"
// @Param analyses body []services.AnalysisInput true "Analyses"
// @Success 201 {object} utils.ListResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portal/parcels/{id}/analyses [post]
func (h *PortalHandler) CreateAnalyses(c *fiber.Ctx) error {
	var input types.FlexList[services.AnalysisInput]
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	rows, err := services.CreateAnalyses(dbFor(c, h.DB), userID(c), c.Params("id"), input)
	if err != nil {
		return serviceError(c, err, "createAnalyses")
	}
	c.Status(fiber.StatusCreated)
	return c.JSON(fiber.Map{"ok": true, "items": rows, "count": len(rows)})
}

// DeleteAnalysis handles DELETE /api/portal/analyses/:id
// @Summary Delete a soil analysis
// @Tags Portal
// @Produce json
// @Security CookieAuth
// @Param id path string true "Analysis ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portal/analyses/{id} [delete]
func (h *PortalHandler) DeleteAnalysis(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := services.DeleteAnalysis(dbFor(c, h.DB), userID(c), id); err != nil {
		return serviceError(c, err, "deleteAnalysis")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, id, nil)
}

// ListRequests handles GET /api/portal/requests
// @Summary Own liming requests
// @Tags Portal
// @Produce json
// @Security CookieAuth
// @Success 200 {object} utils.ListResponseStruct
// @Router /portal/requests [get]
func (h *PortalHandler) ListRequests(c *fiber.Ctx) error {
	requests, err := services.ListUserRequests(dbFor(c, h.DB), userID(c))
	if err != nil {
		return serviceError(c, err, "listRequests")
	}
	return utils.ListResponse(c, requests)
}

// CreateRequest handles POST /api/portal/requests
// @Summary Request a liming service
// @Tags Portal
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body services.RequestInput true "Request"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /portal/requests [post]
func (h *PortalHandler) CreateRequest(c *fiber.Ctx) error {
	var input services.RequestInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	req, err := services.CreateRequest(dbFor(c, h.DB), userID(c), input)
	if err != nil {
		return serviceError(c, err, "createRequest")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusCreated, req.ID, req)
}

// CancelRequest handles POST /api/portal/requests/:id/cancel
// @Summary Cancel an own liming request
// @Tags Portal
// @Produce json
// @Security CookieAuth
// @Param id path string true "Request ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portal/requests/{id}/cancel [post]
func (h *PortalHandler) CancelRequest(c *fiber.Ctx) error {
	req, err := services.CancelRequest(dbFor(c, h.DB), userID(c), c.Params("id"))
	if err != nil {
		return serviceError(c, err, "cancelRequest")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, req.ID, req)
}

// Sync handles GET /api/portal/sync
// @Summary Snapshot of everything the portal caches
// @Description Parts are fetched in parallel; a failing part is reported in errors and the rest is returned
// @Tags Portal
// @Produce json
// @Security CookieAuth
// @Success 200 {object} services.SyncSnapshot
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /portal/sync [get]
func (h *PortalHandler) Sync(c *fiber.Ctx) error {
	return c.JSON(services.BuildSyncSnapshot(c.UserContext(), h.DB, userID(c)))
}
