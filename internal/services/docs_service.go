package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"tripplanbuddy/internal/domain"
	"tripplanbuddy/internal/utils"
)

const exportBaseName = "tripplanbuddy-itinerary"

var dayHeading = regexp.MustCompile(`^(?i)day\s+\d+\b`)

// DocsService renders itinerary text into downloadable documents.
type DocsService struct {
	RequestID string
	Now       func() time.Time
}

type itineraryDocData struct {
	Destination string
	Text        string
	GeneratedAt time.Time
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s DocsService) prepare(destination, itinerary string) (itineraryDocData, error) {
	text := utils.NormalizeItinerary(itinerary)
	if text == "" {
		return itineraryDocData{}, domain.ValidationError{Field: "itinerary", Msg: "is empty"}
	}
	return itineraryDocData{
		Destination: strings.TrimSpace(destination),
		Text:        text,
		GeneratedAt: s.now(),
	}, nil
}

// GenerateItineraryPDF returns an A4 PDF of the itinerary and its file name.
func (s DocsService) GenerateItineraryPDF(destination, itinerary string) ([]byte, string, error) {
	data, err := s.prepare(destination, itinerary)
	if err != nil {
		return nil, "", err
	}

	pdf := renderItineraryPDF(data)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "export_pdf", "itinerary pdf generated",
		"pages", pdf.PageCount(), "bytes", buf.Len())
	return buf.Bytes(), exportFilename(data.Destination, "pdf"), nil
}

// GenerateItineraryText returns the normalized itinerary as a .txt attachment.
func (s DocsService) GenerateItineraryText(destination, itinerary string) ([]byte, string, error) {
	data, err := s.prepare(destination, itinerary)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "export_txt", "itinerary text generated", "bytes", len(data.Text))
	return []byte(data.Text + "\n"), exportFilename(data.Destination, "txt"), nil
}

func renderItineraryPDF(d itineraryDocData) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("TripPlanBuddy Itinerary", true)
	pdf.SetCreator("TripPlanBuddy", true)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Your itinerary")
	pdf.Ln(10)

	if d.Destination != "" {
		pdf.SetFont("Helvetica", "", 13)
		pdf.MultiCell(0, 7, tr(d.Destination), "", "L", false)
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Generated "+utils.FormatDateTime(d.GeneratedAt)+" by TripPlanBuddy")
	pdf.Ln(10)

	for _, line := range strings.Split(d.Text, "\n") {
		switch {
		case line == "":
			pdf.Ln(3)
		case dayHeading.MatchString(line):
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 6.5, tr(line), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 5.5, tr(line), "", "L", false)
		}
	}
	return pdf
}

func exportFilename(destination, ext string) string {
	if part := utils.SafeFilenamePart(destination); part != "" {
		return exportBaseName + "-" + part + "." + ext
	}
	return exportBaseName + "." + ext
}
