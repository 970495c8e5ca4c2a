package documents

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// RenderFinancialReportXLSX writes the report as a single-sheet workbook.
func RenderFinancialReportXLSX(w io.Writer, report FinancialReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1E40AF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create bold style: %w", err)
	}

	f.SetCellValue(sheet, "A1", report.WorkshopName)
	f.SetCellStyle(sheet, "A1", "A1", boldStyle)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Financial Report %s - %s",
		report.PeriodStart.Format(dateLayout), report.PeriodEnd.Format(dateLayout)))

	row := 4
	summary := [][2]any{
		{"Revenue", report.Revenue.InexactFloat64()},
		{"Expenses", report.TotalExpenses.InexactFloat64()},
		{"Profit", report.Profit.InexactFloat64()},
		{"Completed Jobs", report.JobCount},
		{"Expense Entries", report.ExpenseCount},
	}
	for _, entry := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry[1])
		row++
	}
	row++

	if len(report.Categories) > 0 {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Category")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Amount")
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
		row++
		for _, cat := range report.Categories {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), cat.Category)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), cat.Amount.InexactFloat64())
			row++
		}
		row++
	}

	headers := []string{"Date", "Category", "Description", "Source", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, h)
	}
	start, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(len(headers), row)
	f.SetCellStyle(sheet, start, end, headerStyle)
	row++

	for _, line := range report.Lines {
		values := []any{
			line.Date.Format(dateLayout),
			line.Category,
			line.Description,
			line.Source,
			line.Amount.InexactFloat64(),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	if report.TruncatedCount > 0 {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("+%d more entries not shown", report.TruncatedCount))
	}

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "C", "C", 42)
	f.SetColWidth(sheet, "D", "E", 16)

	return f.Write(w)
}
