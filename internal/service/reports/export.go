package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	FormatJSON = "json"
	FormatPDF  = "pdf"
)

// ExportDocument is the full booking report. Guest and Agent are null when the
// booking points at a record that no longer exists.
type ExportDocument struct {
	GeneratedDate     domain.Date     `json:"generated_date"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalBookings     int             `json:"total_bookings"`
	TotalGuests       int             `json:"total_guests"`
	TotalAgents       int             `json:"total_agents"`
	ConfirmedBookings int             `json:"confirmed_bookings"`
	PendingBookings   int             `json:"pending_bookings"`
	Bookings          []ExportBooking `json:"bookings"`
}

type ExportBooking struct {
	domain.Booking
	Guest *domain.Guest `json:"guest"`
	Agent *domain.Agent `json:"agent"`
}

// Export is a rendered report ready to be downloaded.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

func (s *ReportService) Document(_ context.Context) ExportDocument {
	bookings := s.store.Bookings.List()
	doc := ExportDocument{
		GeneratedDate:     domain.DateOf(s.now()),
		TotalRevenue:      s.store.TotalRevenue(),
		TotalBookings:     len(bookings),
		TotalGuests:       s.store.Guests.Len(),
		TotalAgents:       s.store.Agents.Len(),
		ConfirmedBookings: s.store.ConfirmedBookings(),
		PendingBookings:   s.store.PendingBookings(),
		Bookings:          make([]ExportBooking, 0, len(bookings)),
	}
	for _, b := range bookings {
		row := ExportBooking{Booking: b}
		if g, ok := s.store.Guests.Get(b.GuestID); ok {
			row.Guest = &g
		}
		if a, ok := s.store.Agents.Get(b.AgentID); ok {
			row.Agent = &a
		}
		doc.Bookings = append(doc.Bookings, row)
	}
	return doc
}

func (s *ReportService) Export(ctx context.Context, format string) (*Export, error) {
	doc := s.Document(ctx)
	base := fmt.Sprintf("booking_report_%d", s.now().UnixMilli())

	var (
		out *Export
		err error
	)
	switch strings.ToLower(format) {
	case "", FormatJSON:
		out, err = exportJSON(doc, base)
	case FormatPDF:
		out, err = exportPDF(doc, base)
	default:
		return nil, domain.ValidationError{Field: "format", Msg: "must be json or pdf"}
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[REPORTS] action=export file=%s bytes=%d", out.Filename, len(out.Body))
	return out, nil
}

func exportJSON(doc ExportDocument, base string) (*Export, error) {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return &Export{Filename: base + ".json", ContentType: "application/json", Body: body}, nil
}

func exportPDF(doc ExportDocument, base string) (*Export, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	var buf bytes.Buffer
	if err := renderPDF(pdf, doc, &buf); err != nil {
		return nil, err
	}
	return &Export{Filename: base + ".pdf", ContentType: "application/pdf", Body: buf.Bytes()}, nil
}

// renderPDF writes doc with the core Helvetica font. Cell text is converted from
// UTF-8 to cp1252, the encoding core fonts use.
func renderPDF(pdf *gofpdf.Fpdf, doc ExportDocument, w io.Writer) error {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Booking Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		"Generated      : " + doc.GeneratedDate.String(),
		"Total revenue  : $" + doc.TotalRevenue.StringFixed(2),
		fmt.Sprintf("Bookings       : %d (confirmed %d, pending %d)", doc.TotalBookings, doc.ConfirmedBookings, doc.PendingBookings),
		fmt.Sprintf("Guests / agents: %d / %d", doc.TotalGuests, doc.TotalAgents),
	} {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	widths := []float64{28, 60, 50, 30, 20, 32, 30, 27}
	header := []string{"Booking #", "Guest", "Agent", "Tour date", "Guests", "Total", "Status", "Payment"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, b := range doc.Bookings {
		guest, agent := "N/A", "N/A"
		if b.Guest != nil {
			guest = b.Guest.FullName()
		}
		if b.Agent != nil {
			agent = b.Agent.Name
		}
		row := []string{
			b.BookingNumber,
			guest,
			agent,
			b.TourDate.String(),
			fmt.Sprintf("%d", b.NumberOfGuests),
			"$" + b.TotalPrice.StringFixed(2),
			string(b.Status),
			string(b.PaymentStatus),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
