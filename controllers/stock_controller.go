package controllers

import (
	"fmt"
	"net/http"

	"fiber-inventory/repositories"
	"fiber-inventory/services"
	"fiber-inventory/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type StockController struct {
	DB    *gorm.DB
	Stock *services.StockService
}

func NewStockController(DB *gorm.DB, stock *services.StockService) *StockController {
	return &StockController{DB: DB, Stock: stock}
}

func (c *StockController) GetStockSummary(ctx *fiber.Ctx) error {

	stock_repo := repositories.NewStockRepository(c.DB)
	summaries, err := stock_repo.GetStockSummary()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"stock": summaries}})
}

func (c *StockController) GetStockRecords(ctx *fiber.Ctx) error {

	stock_repo := repositories.NewStockRepository(c.DB)
	records, err := stock_repo.ListByItem(ctx.Query("item_name"), ctx.Query("brand"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"records": records}})
}

func (c *StockController) ReceiveStock(ctx *fiber.Ctx) error {
	var req services.ReceiptRequest
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

	if actor, ok := ctx.Locals("username").(string); ok {
		req.Actor = actor
	}

	records, err := c.Stock.ReceiveStock(req)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"records": records}})
}

// TransferToCustody: penarikan stok ke pegangan teknisi. Penarikan sebagian
// dari container bulk men-split record.
func (c *StockController) TransferToCustody(ctx *fiber.Ctx) error {
	var req struct {
		RecordID   types.SnowflakeID `json:"record_id"`
		Quantity   float64           `json:"quantity"`
		Technician string            `json:"technician"`
	}

	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	actor, _ := ctx.Locals("username").(string)
	technician := req.Technician
	if technician == "" {
		technician = actor
	}

	record, err := c.Stock.TransferToCustody(req.RecordID, req.Quantity, technician, actor)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"record": record}})
}

func (c *StockController) ReturnToStorage(ctx *fiber.Ctx) error {
	var req struct {
		RecordID types.SnowflakeID `json:"record_id"`
		Location string            `json:"location"`
	}

	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	actor, _ := ctx.Locals("username").(string)

	if err := c.Stock.ReturnToStorage(req.RecordID, req.Location, actor); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (c *StockController) UpdateStatusBatch(ctx *fiber.Ctx) error {
	var req struct {
		RecordIDs []types.SnowflakeID `json:"record_ids"`
		Status    string              `json:"status"`
		Holder    string              `json:"holder"`
	}

	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := c.Stock.UpdateStatusBatch(req.RecordIDs, req.Status, req.Holder); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// Handler untuk generate dan kirim file Excel
func (c *StockController) ExportExcel(ctx *fiber.Ctx) error {

	stock_repo := repositories.NewStockRepository(c.DB)
	summaries, err := stock_repo.GetStockSummary()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Buat file Excel baru
	f := excelize.NewFile()
	sheet := "Sheet1"

	// Buat header
	f.SetCellValue(sheet, "A1", "Item Name")
	f.SetCellValue(sheet, "B1", "Brand")
	f.SetCellValue(sheet, "C1", "Unit")
	f.SetCellValue(sheet, "D1", "Status")
	f.SetCellValue(sheet, "E1", "Record Count")
	f.SetCellValue(sheet, "F1", "Total Qty")

	// Isi data ke dalam sheet
	for i, item := range summaries {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), item.ItemName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), item.Brand)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), item.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), item.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), item.RecordCount)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), item.TotalQty)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="stock_report.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
