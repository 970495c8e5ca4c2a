package documents

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialReport is the structured input the document renderers accept.
// Line items are already bounded by the caller; TruncatedCount carries
// how many rows were cut so renderers can show a "+N more" notice
// instead of growing without bound.
type FinancialReport struct {
	WorkshopName   string
	CurrencyCode   string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Revenue        decimal.Decimal
	TotalExpenses  decimal.Decimal
	Profit         decimal.Decimal
	JobCount       int
	ExpenseCount   int
	Categories     []CategoryTotal
	Lines          []ReportLine
	TruncatedCount int
}

// CategoryTotal is one row of the category breakdown.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// ReportLine is one expense row in the report body.
type ReportLine struct {
	Date        time.Time
	Category    string
	Description string
	Source      string
	Amount      decimal.Decimal
}

// InvoiceDocument is the structured input for invoice rendering.
type InvoiceDocument struct {
	WorkshopName string
	CurrencyCode string
	InvoiceID    string
	CustomerName string
	VehiclePlate string
	Description  string
	Status       string
	IssuedAt     time.Time
	Parts        []InvoiceLine
	Labor        []InvoiceLine
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
}

// InvoiceLine is one billed row on an invoice.
type InvoiceLine struct {
	Description string
	Quantity    string
	Amount      decimal.Decimal
}
