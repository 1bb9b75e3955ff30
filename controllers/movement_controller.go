package controllers

import (
	"fmt"
	"net/http"

	"fiber-inventory/models"
	"fiber-inventory/services"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type MovementController struct {
	Movements *services.MovementService
}

func NewMovementController(movements *services.MovementService) *MovementController {
	return &MovementController{Movements: movements}
}

// RecordMovement menambahkan satu entry ledger manual (mis. adjustment).
func (c *MovementController) RecordMovement(ctx *fiber.Ctx) error {
	var entry models.MovementEntry
	if err := ctx.BodyParser(&entry); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if actor, ok := ctx.Locals("username").(string); ok && entry.Actor == "" {
		entry.Actor = actor
	}

	if err := c.Movements.RecordMovement(&entry); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"entry": entry}})
}

// GetStockHistory: ledger satu (item,brand), terbaru dulu.
func (c *MovementController) GetStockHistory(ctx *fiber.Ctx) error {
	itemName := ctx.Query("item_name")
	if itemName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "item_name is required",
		})
	}

	entries, err := c.Movements.GetStockHistory(itemName, ctx.Query("brand"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"history": entries}})
}

// Handler untuk generate dan kirim file Excel history movement
func (c *MovementController) ExportExcel(ctx *fiber.Ctx) error {
	itemName := ctx.Query("item_name")
	if itemName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "item_name is required",
		})
	}

	entries, err := c.Movements.GetStockHistory(itemName, ctx.Query("brand"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Moved At")
	f.SetCellValue(sheet, "B1", "Item Name")
	f.SetCellValue(sheet, "C1", "Brand")
	f.SetCellValue(sheet, "D1", "Movement Type")
	f.SetCellValue(sheet, "E1", "Quantity")
	f.SetCellValue(sheet, "F1", "Unit")
	f.SetCellValue(sheet, "G1", "Reference No")
	f.SetCellValue(sheet, "H1", "Actor")
	f.SetCellValue(sheet, "I1", "Balance After")

	for i, entry := range entries {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), entry.MovedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), entry.ItemName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), entry.Brand)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), entry.MovementType)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), entry.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), entry.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), entry.ReferenceNo)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", i+2), entry.Actor)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", i+2), entry.BalanceAfter)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="movement_history.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
