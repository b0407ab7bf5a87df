package reports

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

func buildStatementPDF(st *statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Finwise Monthly Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Finwise Monthly Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Statement Month: %s", st.Month))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Income: $%s", st.Totals.Income.StringFixed(2)))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Expenses: $%s", st.Totals.Expenses.StringFixed(2)))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Net: $%s", st.Totals.Net.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Expenses by Category")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(90, 7, "Category")
	pdf.Cell(50, 7, "Amount")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range st.Categories {
		pdf.Cell(90, 7, line.Category)
		pdf.Cell(50, 7, "$"+line.Amount.StringFixed(2))
		pdf.Ln(7)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Investment Portfolio")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(30, 7, "Symbol")
	pdf.Cell(25, 7, "Shares")
	pdf.Cell(40, 7, "Cost")
	pdf.Cell(40, 7, "Value")
	pdf.Cell(40, 7, "Gain")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, h := range st.Holdings {
		pdf.Cell(30, 7, h.Symbol)
		pdf.Cell(25, 7, fmt.Sprintf("%d", h.Shares))
		pdf.Cell(40, 7, "$"+h.Cost().StringFixed(2))
		pdf.Cell(40, 7, "$"+h.Value().StringFixed(2))
		pdf.Cell(40, 7, "$"+h.Gain().StringFixed(2))
		pdf.Ln(7)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(55, 7, "Total")
	pdf.Cell(40, 7, "$"+st.Valuation.TotalCost.StringFixed(2))
	pdf.Cell(40, 7, "$"+st.Valuation.TotalValue.StringFixed(2))
	pdf.Cell(40, 7, "$"+st.Valuation.TotalGain.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
