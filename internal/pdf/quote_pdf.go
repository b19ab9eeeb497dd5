package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"sportstravel/internal/models"
)

// Generator renders a quote as a downloadable PDF.
type Generator interface {
	GenerateQuote(data QuoteData) ([]byte, error)
}

type QuoteGenerator struct {
	companyName string
}

type QuoteData struct {
	Lead    *models.Lead
	Quote   *models.Quote
	Event   *models.Event
	Package *models.Package
}

func NewQuoteGenerator(companyName string) *QuoteGenerator {
	if companyName == "" {
		companyName = "Sports Travel"
	}
	return &QuoteGenerator{companyName: companyName}
}

func (g *QuoteGenerator) GenerateQuote(data QuoteData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Quote #%d", data.Quote.ID), false)
	pdf.SetAuthor(g.companyName, false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "TRAVEL QUOTE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("No. ST-%06d  of  %s", data.Quote.ID, data.Quote.CreatedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Customer")
	g.kvLine(pdf, "Name", data.Lead.Name)
	g.kvLine(pdf, "Email", data.Lead.Email)
	g.kvLine(pdf, "Travelers", fmt.Sprintf("%d", data.Quote.NumberOfTravelers))
	g.kvLine(pdf, "Travel date", data.Quote.TravelDate.Format("02.01.2006"))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Trip")
	g.kvLine(pdf, "Event", data.Event.Name)
	g.kvLine(pdf, "Location", data.Event.Location)
	g.kvLine(pdf, "Event dates", fmt.Sprintf("%s - %s",
		data.Event.StartDate.Format("02.01.2006"), data.Event.EndDate.Format("02.01.2006")))
	g.kvLine(pdf, "Package", fmt.Sprintf("%s (%s)", data.Package.Name, data.Package.Tier))
	g.kvLine(pdf, "Duration", fmt.Sprintf("%d days", data.Package.Duration))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Price breakdown")
	g.moneyLine(pdf, "Base price", data.Quote.BasePrice, 0)
	adj := data.Quote.Adjustments
	g.moneyLine(pdf, "Seasonal multiplier", adj.SeasonalMultiplier.Value, adj.SeasonalMultiplier.Percentage)
	g.moneyLine(pdf, "Early bird discount", adj.EarlyBirdDiscount.Value, adj.EarlyBirdDiscount.Percentage)
	g.moneyLine(pdf, "Last minute surcharge", adj.LastMinuteSurcharge.Value, adj.LastMinuteSurcharge.Percentage)
	g.moneyLine(pdf, "Group discount", adj.GroupDiscount.Value, adj.GroupDiscount.Percentage)
	g.moneyLine(pdf, "Weekend surcharge", adj.WeekendSurcharge.Value, adj.WeekendSurcharge.Percentage)
	pdf.Ln(1)
	g.hr(pdf)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 8, "Final price", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("$%.2f", data.Quote.FinalPrice), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5,
		fmt.Sprintf("This quote is valid until %s. Prices are fixed at generation time and are not recalculated.",
			data.Quote.ValidUntil.Format("02.01.2006")),
		"", "L", false)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("%s, %s", g.companyName, time.Now().Format("02.01.2006")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *QuoteGenerator) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (g *QuoteGenerator) kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(50, 6, key, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *QuoteGenerator) moneyLine(pdf *gofpdf.Fpdf, label string, value, percentage float64) {
	pdf.SetFont("Helvetica", "", 11)
	text := fmt.Sprintf("$%.2f", value)
	if percentage != 0 {
		text = fmt.Sprintf("$%.2f (%.0f%%)", value, percentage)
	}
	pdf.CellFormat(120, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, text, "", 1, "R", false, 0, "")
}

func (g *QuoteGenerator) hr(pdf *gofpdf.Fpdf) {
	x, y := pdf.GetXY()
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.Line(left, y, pageW-right, y)
	pdf.SetXY(x, y+1)
}
