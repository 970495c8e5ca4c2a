package documents

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const dateLayout = "2006-01-02"

// RenderFinancialReportPDF writes a paginated financial report document.
func RenderFinancialReportPDF(w io.Writer, report FinancialReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s Financial Report", report.WorkshopName), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, report.WorkshopName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Financial Report  %s - %s",
		report.PeriodStart.Format(dateLayout), report.PeriodEnd.Format(dateLayout)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	summary := [][2]string{
		{"Revenue", money(report.CurrencyCode, report.Revenue.StringFixed(2))},
		{"Expenses", money(report.CurrencyCode, report.TotalExpenses.StringFixed(2))},
		{"Profit", money(report.CurrencyCode, report.Profit.StringFixed(2))},
		{"Completed Jobs", fmt.Sprintf("%d", report.JobCount)},
		{"Expense Entries", fmt.Sprintf("%d", report.ExpenseCount)},
	}
	for _, row := range summary {
		pdf.CellFormat(60, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if len(report.Categories) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Expenses by Category", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, cat := range report.Categories {
			pdf.CellFormat(60, 7, cat.Category, "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, money(report.CurrencyCode, cat.Amount.StringFixed(2)), "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Expense Detail", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(25, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Category", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Source", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range report.Lines {
		pdf.CellFormat(25, 7, line.Date.Format(dateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, line.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, truncate(line.Description, 42), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, truncate(line.Source, 18), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, line.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	if report.TruncatedCount > 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 7, fmt.Sprintf("+%d more entries not shown", report.TruncatedCount), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}

// RenderInvoicePDF writes a single invoice document.
func RenderInvoicePDF(w io.Writer, inv InvoiceDocument) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", inv.InvoiceID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, inv.WorkshopName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Invoice %s  (%s)", inv.InvoiceID, inv.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Issued %s", inv.IssuedAt.Format(dateLayout)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Customer: %s    Vehicle: %s", inv.CustomerName, inv.VehiclePlate), "", 1, "L", false, 0, "")
	if inv.Description != "" {
		pdf.CellFormat(0, 7, truncate(inv.Description, 90), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeSection := func(title string, lines []InvoiceLine) {
		if len(lines) == 0 {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range lines {
			pdf.CellFormat(110, 7, truncate(line.Description, 64), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, line.Quantity, "1", 0, "C", false, 0, "")
			pdf.CellFormat(0, 7, line.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}
	writeSection("Parts", inv.Parts)
	writeSection("Labor", inv.Labor)

	pdf.SetFont("Helvetica", "", 11)
	totals := [][2]string{
		{"Subtotal", money(inv.CurrencyCode, inv.Subtotal.StringFixed(2))},
		{"Tax", money(inv.CurrencyCode, inv.Tax.StringFixed(2))},
		{"Discount", money(inv.CurrencyCode, inv.Discount.StringFixed(2))},
	}
	for _, row := range totals {
		pdf.CellFormat(140, 7, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(140, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(0, 8, money(inv.CurrencyCode, inv.Total.StringFixed(2)), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func money(currency, amount string) string {
	if currency == "" {
		return amount
	}
	return currency + " " + amount
}

func truncate(value string, max int) string {
	if max <= 3 || len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}
