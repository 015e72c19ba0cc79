package services

import (
	"bytes"
	"fmt"
	"time"

	"dreamhouse/internal/domain/models"
	"dreamhouse/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable booking detail sheet.
type DocsService struct {
	Repo      BookingRepository
	RequestID string
}

// BookingPDF renders the detail sheet for one reservation and returns the
// bytes plus the suggested download name.
func (s DocsService) BookingPDF(id int64) ([]byte, string, error) {
	booking, err := s.Repo.GetBooking(id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "booking_pdf", fmt.Sprintf("booking_id=%d", id))
	return buildBookingPDF(booking)
}

func buildBookingPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Reserva DH-%d", b.ID), false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Reserva DH-%d", b.ID)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.Cell(0, 6, tr("Detalles completos de la reserva"))
	pdf.SetTextColor(15, 23, 42)
	pdf.Ln(12)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
	}
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 116, 139)
		pdf.Cell(55, 6, tr(label))
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(15, 23, 42)
		pdf.Cell(0, 6, tr(value))
		pdf.Ln(7)
	}

	section("Información del Huésped")
	line("Nombre", b.GuestName)
	guests := fmt.Sprintf("%d personas", b.GuestCount)
	if b.GuestCount == 1 {
		guests = "1 persona"
	}
	line("Cantidad de Huéspedes", guests)
	if b.GuestPhone != "" {
		line("Teléfono", b.GuestPhone)
	}
	pdf.Ln(4)

	section("Detalles de la Estadía")
	line("Check-in", utils.FormatDate(b.CheckIn))
	line("Check-out", utils.FormatDate(b.CheckOut))
	line("Noches", fmt.Sprintf("%d noches", b.Nights))
	line("Canal", b.ChannelName)
	line("Estado", b.Status)
	if b.HalfDay {
		line("Medio día", "Sí")
	}
	pdf.Ln(4)

	section("Detalles de Precio")
	cur := string(b.Pricing.Currency)
	line(fmt.Sprintf("Estadía (%d noches)", b.Nights), amountLine(b.Pricing.Total(), cur))
	if paid := b.Pricing.Paid(); paid > 0 {
		line("Pagado", amountLine(paid, cur))
		line("Falta pagar", amountLine(b.Pricing.Owed(), cur))
	}
	if b.Pricing.CommissionUSD != nil && *b.Pricing.CommissionUSD > 0 {
		line("Comisión canal", amountLine(*b.Pricing.CommissionUSD, "USD"))
	}

	pdf.Ln(6)
	pdf.SetDrawColor(15, 23, 42)
	pdf.Line(pdf.GetX(), pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(55, 9, "Total")
	pdf.Cell(0, 9, tr(amountLine(b.Pricing.Total(), cur)))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Generado el %s", time.Now().Format("2006-01-02 15:04"))), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("booking_DH-%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func amountLine(v float64, currency string) string {
	return fmt.Sprintf("%s %s", utils.FormatAmount(v), currency)
}
