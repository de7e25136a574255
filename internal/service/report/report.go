// Package report renders logged communications as downloadable documents.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/octobees/commtrack/api/internal/entity"
)

// Format is a supported report encoding.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// Placeholder replaces missing company, method or notes values.
const Placeholder = "N/A"

const dateLayout = "1/2/2006"

// ErrInvalidFormat is returned for formats other than pdf and csv.
var ErrInvalidFormat = errors.New("invalid report format")

var csvHeader = []string{"Company", "Communication Type", "Date", "Notes"}

// ParseFormat validates a format flag.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatPDF, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// Filename returns the attachment name for the format.
func (f Format) Filename() string {
	return "communication-report." + string(f)
}

// Meta describes the report header.
type Meta struct {
	GeneratedAt time.Time
	Period      string
}

// Render writes entries to w in the requested format.
func Render(w io.Writer, format Format, meta Meta, entries []entity.Communication) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatPDF:
		return writePDF(w, meta, entries, true)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

// WriteCSV writes one row per communication below a fixed header.
func WriteCSV(w io.Writer, entries []entity.Communication) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(fields(e)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WritePDF writes a paginated document with one block per communication.
func WritePDF(w io.Writer, meta Meta, entries []entity.Communication) error {
	return writePDF(w, meta, entries, true)
}

func writePDF(w io.Writer, meta Meta, entries []entity.Communication, compress bool) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetTitle("Communication Report", true)
	if !meta.GeneratedAt.IsZero() {
		pdf.SetCreationDate(meta.GeneratedAt)
	}
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 20)
	pdf.CellFormat(0, 12, "Communication Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, "Generated on: "+meta.GeneratedAt.Format(dateLayout), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, tr("Time Period: "+meta.Period), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	for i, e := range entries {
		row := fields(e)
		pdf.SetFont("Helvetica", "U", 14)
		pdf.CellFormat(0, 8, fmt.Sprintf("Communication #%d", i+1), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, tr("Company: "+row[0]), "", "L", false)
		pdf.MultiCell(0, 6, tr("Type: "+row[1]), "", "L", false)
		pdf.MultiCell(0, 6, "Date: "+row[2], "", "L", false)
		pdf.MultiCell(0, 6, tr("Notes: "+row[3]), "", "L", false)
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func fields(e entity.Communication) []string {
	return []string{
		orPlaceholder(e.CompanyName),
		orPlaceholder(e.MethodName),
		e.Date.UTC().Format(dateLayout),
		orPlaceholder(e.Notes),
	}
}

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return Placeholder
	}
	return v
}
