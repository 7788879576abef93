package handlers

import (
	"errors"

	"github.com/agrolime/limeportal/internal/agronomy"
	"github.com/agrolime/limeportal/internal/config"
	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/agrolime/limeportal/internal/types"
	"github.com/agrolime/limeportal/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PublicHandler handles the unauthenticated marketing site routes
type PublicHandler struct {
	DB     *gorm.DB
	Config *config.Config
	// Bot is nil when no bot-protection secret is configured
	Bot services.BotVerifier
}

// PublicConfigResponse is the site configuration the frontend needs before login
type PublicConfigResponse struct {
	Ok             bool                    `json:"ok"`
	DefaultLocale  string                  `json:"defaultLocale"`
	BotProtection  BotProtectionConfig     `json:"botProtection"`
	SoilCategories []agronomy.SoilCategory `json:"soilCategories"`
	Conversions    [][2]agronomy.Compound  `json:"conversions"`
}

// BotProtectionConfig describes the contact form challenge
type BotProtectionConfig struct {
	Enabled bool   `json:"enabled"`
	SiteKey string `json:"siteKey"`
	Warning string `json:"warning,omitempty"`
}

// GetPublicConfig handles GET /api/config/public
// @Summary Public site configuration
// @Description Bot-protection site key, default locale and calculator options
// @Tags Public
// @Produce json
// @Success 200 {object} PublicConfigResponse
// @Router /config/public [get]
func (h *PublicHandler) GetPublicConfig(c *fiber.Ctx) error {
	bot := BotProtectionConfig{
		Enabled: h.Config.BotProtectionEnabled(),
		SiteKey: h.Config.TurnstileSiteKey,
	}
	switch {
	case bot.SiteKey == "" && !bot.Enabled:
		bot.Warning = "bot protection is not configured; the contact form is unprotected"
	case bot.SiteKey == "":
		bot.Warning = "bot protection site key is not configured; the contact form cannot be submitted"
	case !bot.Enabled:
		bot.Warning = "bot protection secret key is not configured; the contact form is unprotected"
	}

	return c.JSON(PublicConfigResponse{
		Ok:             true,
		DefaultLocale:  h.Config.DefaultLocale,
		BotProtection:  bot,
		SoilCategories: agronomy.SoilCategories,
		Conversions:    agronomy.Pairs(),
	})
}

// GetLimingProducts handles GET /api/products/liming
// @Summary Active liming products
// @Tags Public
// @Produce json
// @Success 200 {object} utils.ListResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /products/liming [get]
func (h *PublicHandler) GetLimingProducts(c *fiber.Ctx) error {
	products, err := services.ListCatalog[models.LimingProduct](dbFor(c, h.DB), true)
	if err != nil {
		return serviceError(c, err, "getLimingProducts")
	}
	return utils.ListResponse(c, products)
}

// GetFertilizationProducts handles GET /api/products/fertilization
// @Summary Active fertilization products
// @Tags Public
// @Produce json
// @Success 200 {object} utils.ListResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /products/fertilization [get]
func (h *PublicHandler) GetFertilizationProducts(c *fiber.Ctx) error {
	products, err := services.ListCatalog[models.FertilizationProduct](dbFor(c, h.DB), true)
	if err != nil {
		return serviceError(c, err, "getFertilizationProducts")
	}
	return utils.ListResponse(c, products)
}

// GetImages handles GET /api/images?section=
// @Summary Active portal images
// @Tags Public
// @Produce json
// @Param section query string false "Page section"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /images [get]
func (h *PublicHandler) GetImages(c *fiber.Ctx) error {
	images, err := services.ListImages(dbFor(c, h.DB), c.Query("section"), true)
	if err != nil {
		return serviceError(c, err, "getImages")
	}
	return utils.ListResponse(c, images)
}

// CreateLead handles POST /api/leads
// @Summary Submit the contact form
// @Description Stores a lead. The bot-protection token is verified when a secret is configured.
// @Tags Public
// @Accept json
// @Produce json
// @Param lead body services.LeadInput true "Contact form"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leads [post]
func (h *PublicHandler) CreateLead(c *fiber.Ctx) error {
	var input services.LeadInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	if h.Bot == nil {
		logging.L().Warn("bot protection secret not configured, accepting lead unverified", zap.String("ip", c.IP()))
	} else if err := h.Bot.Verify(input.TurnstileToken, c.IP()); err != nil {
		if !errors.Is(err, services.ErrValidation) {
			logging.L().Error("bot protection check failed", zap.Error(err))
		}
		return utils.ErrorResponse(c, utils.Message(c, utils.MsgBotFailed), fiber.StatusBadRequest, types.ErrTypeBot)
	}

	lead, err := services.CreateLead(dbFor(c, h.DB), input)
	if err != nil {
		return serviceError(c, err, "createLead")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusCreated, lead.ID, nil)
}
