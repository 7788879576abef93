package handlers

import (
	"fmt"

	"github.com/agrolime/limeportal/internal/agronomy"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/agrolime/limeportal/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Calculator names recorded in calculator_usage
const (
	CalcConvert      = "convert"
	CalcLiming       = "liming"
	CalcEconomicLoss = "economic-loss"
	CalcNutrient     = "nutrient"
)

// CalculatorHandler handles the public calculators
type CalculatorHandler struct {
	DB *gorm.DB
}

// ConvertInput converts a mass between nutrient forms
type ConvertInput struct {
	Value types.FlexFloat64 `json:"value"`
	From  string            `json:"from"`
	To    string            `json:"to"`
}

// ConvertResult is the conversion outcome; Rounded is for display
type ConvertResult struct {
	Value   float64           `json:"value"`
	From    agronomy.Compound `json:"from"`
	To      agronomy.Compound `json:"to"`
	Factor  float64           `json:"factor"`
	Result  float64           `json:"result"`
	Rounded float64           `json:"rounded"`
}

// LimingCalcInput is the liming calculator form. A productId fills contents and price from the catalog.
type LimingCalcInput struct {
	PH           types.FlexFloat64 `json:"ph"`
	SoilCategory string            `json:"soilCategory"`
	AreaHa       types.FlexFloat64 `json:"areaHa"`
	ProductID    string            `json:"productId"`
	CaOContent   types.FlexFloat64 `json:"caoContent"`
	MgOContent   types.FlexFloat64 `json:"mgoContent"`
	PricePerTon  types.FlexFloat64 `json:"pricePerTon"`
}

// LossCalcInput is the economic loss calculator form
type LossCalcInput struct {
	PH          types.FlexFloat64 `json:"ph"`
	YieldTHa    types.FlexFloat64 `json:"yieldTHa"`
	PricePerTon types.FlexFloat64 `json:"pricePerTon"`
	AreaHa      types.FlexFloat64 `json:"areaHa"`
}

// NutrientCalcInput is the nutrient dosage calculator form
type NutrientCalcInput struct {
	RequirementKgHa types.FlexFloat64 `json:"requirementKgHa"`
	Element         string            `json:"element"`
	OxideContent    types.FlexFloat64 `json:"oxideContent"`
}

// NutrientCalcResult is the nutrient dosage outcome
type NutrientCalcResult struct {
	ProductKgHa float64 `json:"productKgHa"`
	Rounded     float64 `json:"rounded"`
}

func required(name string, v types.FlexFloat64) error {
	if !v.Set {
		return fmt.Errorf("%w: %s is required", agronomy.ErrInvalidInput, name)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// respond records the run and answers with the result
func (h *CalculatorHandler) respond(c *fiber.Ctx, calculator string, input, result interface{}) error {
	services.RecordCalculatorUsage(dbFor(c, h.DB), calculator, input, result)
	return c.JSON(fiber.Map{"ok": true, "calculator": calculator, "result": result})
}

// Convert handles POST /api/calculators/convert
// @Summary Convert between nutrient forms
// @Description CaO/CaCO3, P2O5/P, K2O/K and MgO/Mg conversions by literature factors
// @Tags Calculators
// @Accept json
// @Produce json
// @Param input body ConvertInput true "Mass and forms"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /calculators/convert [post]
func (h *CalculatorHandler) Convert(c *fiber.Ctx) error {
	var in ConvertInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := required("value", in.Value); err != nil {
		return serviceError(c, err, "convert")
	}
	from, err := agronomy.ParseCompound(in.From)
	if err != nil {
		return serviceError(c, err, "convert")
	}
	to, err := agronomy.ParseCompound(in.To)
	if err != nil {
		return serviceError(c, err, "convert")
	}

	result, err := agronomy.Convert(in.Value.Value, from, to)
	if err != nil {
		return serviceError(c, err, "convert")
	}
	factor, _ := agronomy.Factor(from, to)

	return h.respond(c, CalcConvert, in, ConvertResult{
		Value:   in.Value.Value,
		From:    from,
		To:      to,
		Factor:  factor,
		Result:  result,
		Rounded: agronomy.Round(result, 2),
	})
}

// Liming handles POST /api/calculators/liming
// @Summary Liming dose for a parcel
// @Description CaO need from the advisory table, product dose, total tonnage and cost
// @Tags Calculators
// @Accept json
// @Produce json
// @Param input body LimingCalcInput true "Soil and product"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /calculators/liming [post]
func (h *CalculatorHandler) Liming(c *fiber.Ctx) error {
	var in LimingCalcInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := firstError(required("ph", in.PH), required("areaHa", in.AreaHa)); err != nil {
		return serviceError(c, err, "liming")
	}

	plan := agronomy.LimingInput{
		PH:          in.PH.Value,
		Category:    agronomy.SoilCategory(in.SoilCategory),
		AreaHa:      in.AreaHa.Value,
		CaOPct:      in.CaOContent.Value,
		MgOPct:      in.MgOContent.Value,
		PricePerTon: in.PricePerTon.Value,
	}
	if in.ProductID != "" {
		product, err := services.GetCatalog[models.LimingProduct](dbFor(c, h.DB), in.ProductID)
		if err != nil {
			return serviceError(c, err, "liming")
		}
		plan.CaOPct = product.CaOContent
		plan.MgOPct = product.MgOContent
		if !in.PricePerTon.Set {
			plan.PricePerTon = product.PricePerTon
		}
	}

	result, err := agronomy.PlanLiming(plan)
	if err != nil {
		return serviceError(c, err, "liming")
	}
	return h.respond(c, CalcLiming, in, result)
}

// EconomicLoss handles POST /api/calculators/economic-loss
// @Summary Yield and money lost to soil acidity
// @Tags Calculators
// @Accept json
// @Produce json
// @Param input body LossCalcInput true "pH, yield, price and area"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /calculators/economic-loss [post]
func (h *CalculatorHandler) EconomicLoss(c *fiber.Ctx) error {
	var in LossCalcInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	err := firstError(
		required("ph", in.PH),
		required("yieldTHa", in.YieldTHa),
		required("pricePerTon", in.PricePerTon),
		required("areaHa", in.AreaHa),
	)
	if err != nil {
		return serviceError(c, err, "economicLoss")
	}

	result, err := agronomy.EconomicLoss(agronomy.LossInput{
		PH:          in.PH.Value,
		YieldTHa:    in.YieldTHa.Value,
		PricePerTon: in.PricePerTon.Value,
		AreaHa:      in.AreaHa.Value,
	})
	if err != nil {
		return serviceError(c, err, "economicLoss")
	}
	return h.respond(c, CalcEconomicLoss, in, result)
}

// Nutrient handles POST /api/calculators/nutrient
// @Summary Product dose for a nutrient requirement
// @Description Converts an element requirement (kg P, K or Mg per ha) to kg of product per ha
// @Tags Calculators
// @Accept json
// @Produce json
// @Param input body NutrientCalcInput true "Requirement and product content"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /calculators/nutrient [post]
func (h *CalculatorHandler) Nutrient(c *fiber.Ctx) error {
	var in NutrientCalcInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := firstError(required("requirementKgHa", in.RequirementKgHa), required("oxideContent", in.OxideContent)); err != nil {
		return serviceError(c, err, "nutrient")
	}
	element, err := agronomy.ParseCompound(in.Element)
	if err != nil {
		return serviceError(c, err, "nutrient")
	}

	dose, err := agronomy.NutrientDose(in.RequirementKgHa.Value, element, in.OxideContent.Value)
	if err != nil {
		return serviceError(c, err, "nutrient")
	}
	return h.respond(c, CalcNutrient, in, NutrientCalcResult{ProductKgHa: dose, Rounded: agronomy.Round(dose, 1)})
}
