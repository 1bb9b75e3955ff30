package controllers

import (
	"strconv"

	"fiber-inventory/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

type AvailabilityController struct {
	Availability *services.AvailabilityService
}

func NewAvailabilityController(availability *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Availability: availability}
}

// CheckAvailability: GET /availability/check?item_name=..&brand=..&qty=..&unit=..&exclude_demand=..
func (c *AvailabilityController) CheckAvailability(ctx *fiber.Ctx) error {
	itemName := ctx.Query("item_name")
	if itemName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "item_name is required",
		})
	}

	brand := ctx.Query("brand")
	unit := ctx.Query("unit")
	excludeDemand := ctx.Query("exclude_demand")

	qty := 0.0
	if qtyStr := ctx.Query("qty"); qtyStr != "" {
		parsed, err := strconv.ParseFloat(qtyStr, 64)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "qty must be numeric",
			})
		}
		qty = parsed
	}

	report := c.Availability.CheckAvailability(itemName, brand, qty, unit, excludeDemand)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": report})
}

// ValidateDemand memvalidasi sekumpulan baris kebutuhan terhadap ATP.
func (c *AvailabilityController) ValidateDemand(ctx *fiber.Ctx) error {
	var req struct {
		ExcludeDemandNo string                       `json:"exclude_demand_no"`
		Lines           []services.DemandRequirement `json:"lines" validate:"required,dive"`
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

	valid, errs := c.Availability.ValidateDemand(req.Lines, req.ExcludeDemandNo)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"valid":  valid,
			"errors": errs,
		},
	})
}
