package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"hostel/internal/domain"
)

type invoiceData struct {
	Booking  *domain.Booking
	Payments []domain.Payment
	IssuedAt time.Time
}

func buildInvoicePDF(d invoiceData) ([]byte, error) {
	b := d.Booking

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Invoice No : INV-%06d", b.ID),
		"Issued     : " + d.IssuedAt.Format("2006-01-02 15:04"),
	}
	if b.Hostel != nil {
		lines = append(lines, "Hostel     : "+b.Hostel.Name)
	}
	if b.User != nil {
		lines = append(lines, "Guest      : "+safe(b.User.Name, b.User.Email))
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Stay")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	room := "-"
	if b.Room != nil {
		room = b.Room.RoomNumber
	}
	pdf.Cell(0, 6, fmt.Sprintf("Room %s, %s, %s to %s (%d %s)",
		room, b.BookingType,
		b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
		b.Duration, unit(b.BookingType)))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Status: "+string(b.Status))
	pdf.Ln(10)

	if len(d.Payments) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Payments")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range d.Payments {
			pdf.Cell(0, 6, fmt.Sprintf("#%d  %s  %s  %s  %s",
				p.ID, p.CreatedAt.Format("2006-01-02"), p.Method, p.ApprovalStatus, money(p.Amount)))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	paid := paidTotal(d.Payments)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total   : "+money(b.Price))
	pdf.Ln(8)
	pdf.Cell(0, 8, "Paid    : "+money(paid))
	pdf.Ln(8)
	pdf.Cell(0, 8, "Balance : "+money(b.Price-paid))
	pdf.Ln(8)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func invoiceFilename(b *domain.Booking) string {
	return fmt.Sprintf("INVOICE_%d_%s.pdf", b.ID, b.CheckIn.Format("20060102"))
}

func unit(t domain.BookingType) string {
	if t == domain.BookingMonthly {
		return "month(s)"
	}
	return "night(s)"
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func safe(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
