package controllers

import (
	"fiber-inventory/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

type ConsumptionController struct {
	Consumption *services.ConsumptionService
}

func NewConsumptionController(consumption *services.ConsumptionService) *ConsumptionController {
	return &ConsumptionController{Consumption: consumption}
}

// ConsumeMaterials mengeksekusi satu batch konsumsi material. Identitas
// teknisi diambil dari token, bukan dari body.
func (c *ConsumptionController) ConsumeMaterials(ctx *fiber.Ctx) error {
	var req struct {
		CustomerID string                     `json:"customer_id"`
		Location   string                     `json:"location"`
		DocNo      string                     `json:"doc_no"`
		Lines      []services.ConsumptionLine `json:"lines" validate:"required,min=1,dive"`
	}

	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	actor, _ := ctx.Locals("username").(string)

	cctx := services.ConsumptionContext{
		CustomerID: req.CustomerID,
		Location:   req.Location,
		DocNo:      req.DocNo,
		Actor:      actor,
	}

	success, errs := c.Consumption.ConsumeMaterials(req.Lines, cctx)
	if !success {
		// Semua error per baris dikembalikan sekaligus, stok tidak berubah.
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  errs,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
