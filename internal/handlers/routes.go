package handlers

import (
	"errors"

	"github.com/agrolime/limeportal/internal/config"
	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/middleware"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/agrolime/limeportal/internal/types"
	"github.com/agrolime/limeportal/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the shared dependencies of all handlers
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Sessions services.SessionValidator
	// Bot is nil when bot protection is not configured
	Bot services.BotVerifier
}

// Setup registers the route table on app
func Setup(app *fiber.App, d Deps) {
	health := &HealthHandler{DB: d.DB, Config: d.Config}
	app.Get("/health", health.Health)

	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	public := &PublicHandler{DB: d.DB, Config: d.Config, Bot: d.Bot}
	api.Get("/config/public", public.GetPublicConfig)
	api.Get("/products/liming", public.GetLimingProducts)
	api.Get("/products/fertilization", public.GetFertilizationProducts)
	api.Get("/images", public.GetImages)
	api.Post("/leads", public.CreateLead)

	calc := &CalculatorHandler{DB: d.DB}
	calculators := api.Group("/calculators")
	calculators.Post("/convert", calc.Convert)
	calculators.Post("/liming", calc.Liming)
	calculators.Post("/economic-loss", calc.EconomicLoss)
	calculators.Post("/nutrient", calc.Nutrient)

	// Customer routes (session required)
	ph := &PortalHandler{DB: d.DB}
	portal := api.Group("/portal", middleware.AuthUser(d.Sessions, d.DB))
	portal.Get("/profile", ph.GetProfile)
	portal.Put("/profile", ph.UpdateProfile)
	portal.Get("/parcels", ph.ListParcels)
	portal.Post("/parcels", ph.CreateParcel)
	portal.Get("/parcels/:id", ph.GetParcel)
	portal.Put("/parcels/:id", ph.UpdateParcel)
	portal.Delete("/parcels/:id", ph.DeleteParcel)
	portal.Get("/parcels/:id/analyses", ph.ListAnalyses)
	portal.Post("/parcels/:id/analyses", ph.CreateAnalyses)
	portal.Delete("/analyses/:id", ph.DeleteAnalysis)
	portal.Get("/requests", ph.ListRequests)
	portal.Post("/requests", ph.CreateRequest)
	portal.Post("/requests/:id/cancel", ph.CancelRequest)
	portal.Get("/sync", ph.Sync)
	portal.Get("/reports/parcels.pdf", ph.ParcelsPDF)
	portal.Get("/reports/parcels.xlsx", ph.ParcelsXLSX)

	// Admin-only routes (session and admin role required)
	ah := &AdminHandler{DB: d.DB}
	admin := api.Group("/admin", middleware.AuthAdmin(d.Sessions, d.DB))
	admin.Get("/liming-products", ah.ListLimingProducts)
	admin.Post("/liming-products", ah.CreateLimingProduct)
	admin.Put("/liming-products/:id", ah.UpdateLimingProduct)
	admin.Delete("/liming-products/:id", ah.DeleteLimingProduct)
	admin.Get("/fertilization-products", ah.ListFertilizationProducts)
	admin.Post("/fertilization-products", ah.CreateFertilizationProduct)
	admin.Put("/fertilization-products/:id", ah.UpdateFertilizationProduct)
	admin.Delete("/fertilization-products/:id", ah.DeleteFertilizationProduct)
	admin.Get("/images", ah.ListImages)
	admin.Post("/images", ah.CreateImage)
	admin.Put("/images/:id", ah.UpdateImage)
	admin.Delete("/images/:id", ah.DeleteImage)
	admin.Get("/requests", ah.ListRequests)
	admin.Patch("/requests/:id/status", ah.UpdateRequestStatus)
	admin.Get("/leads", ah.ListLeads)
	admin.Patch("/leads/:id/status", ah.UpdateLeadStatus)
	admin.Get("/profiles", ah.ListProfiles)
	admin.Patch("/profiles/:id/role", ah.SetProfileRole)
	admin.Get("/audit-logs", ah.ListAuditLogs)
	admin.Get("/calculator-usage", ah.CalculatorUsage)
	admin.Get("/reports/requests.xlsx", ah.RequestsXLSX)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, utils.Message(c, utils.MsgNotFound))
	})
}

// ErrorHandler renders errors returned by middleware and handlers with the standard envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		errorType := "request"
		if fe.Code == fiber.StatusNotFound {
			errorType = types.ErrTypeNotFound
		}
		return utils.ErrorResponse(c, fe.Message, fe.Code, errorType)
	}

	logging.L().Error("unhandled error", zap.String("url", c.OriginalURL()), zap.Error(err))
	return utils.ErrorResponse(c, utils.Message(c, utils.MsgServerError), fiber.StatusInternalServerError, types.ErrTypeServer)
}
