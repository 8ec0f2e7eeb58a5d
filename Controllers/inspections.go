package Controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"PreStart/Storage"
)

// InspectionController serves the archived inspection history.
type InspectionController struct {
	Store Storage.InspectionStore
}

func NewInspectionController(store Storage.InspectionStore) *InspectionController {
	return &InspectionController{Store: store}
}

// GetInspections retrieves the archive, newest first.
func (ic *InspectionController) GetInspections(c *fiber.Ctx) error {
	records, err := ic.Store.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to load inspections, please try again"})
	}
	return c.JSON(records)
}

// DeleteInspection removes one archived record.
func (ic *InspectionController) DeleteInspection(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ic.Store.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, Storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inspection not found"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to delete inspection, please try again"})
	}
	return c.JSON(fiber.Map{"message": "Inspection deleted"})
}

// ExportInspections streams the archive as a styled Excel workbook.
func (ic *InspectionController) ExportInspections(c *fiber.Ctx) error {
	records, err := ic.Store.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to load inspections, please try again"})
	}

	f := excelize.NewFile()
	sheet := "Inspections"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build export"})
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Driver", "Rego", "Result", "Issues", "Critical Issues", "Failed Items", "Workshops", "Created At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C00000"}, Pattern: 1},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)
	}

	for row, record := range records {
		result := "PASS"
		if record.HasDamages {
			result = "DAMAGES REPORTED"
		}
		failedItems := make([]string, 0, len(record.ReportSummary.FailedItems))
		for _, fi := range record.ReportSummary.FailedItems {
			failedItems = append(failedItems, fi.Category)
		}
		critical := 0
		for _, fi := range record.ReportSummary.FailedItems {
			if fi.Critical {
				critical++
			}
		}
		values := []interface{}{
			record.Date,
			record.Driver,
			record.TruckNumber,
			result,
			len(record.ReportSummary.FailedItems),
			critical,
			strings.Join(failedItems, ", "),
			record.ReportSummary.WorkshopNames,
			record.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build export"})
	}

	filename := "inspections.xlsx"
	if len(records) > 0 {
		filename = fmt.Sprintf("inspections-%s.xlsx", records[0].Date)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
