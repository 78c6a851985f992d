package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"runsheet/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns is the ownership header row.
var Columns = []string{
	"Owner",
	"Also Known As",
	"Surface %",
	"Mineral %",
	"Net Surface Acres",
	"Net Mineral Acres",
	"Lease Status",
	"Acquisition Document",
}

// Writer wraps csv.Writer for exporting an ownership ledger as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteOwners writes one row per owner.
func (w *Writer) WriteOwners(owners []domain.Owner) error {
	for i := range owners {
		if err := w.csv.Write(OwnerRow(&owners[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteTotals writes the closing totals row.
func (w *Writer) WriteTotals(surface, mineral, totalAcres float64) error {
	row := make([]string, len(Columns))
	row[0] = "TOTAL"
	row[2] = FormatPercent(surface)
	row[3] = FormatPercent(mineral)
	row[4] = FormatAcres(surface / 100 * totalAcres)
	row[5] = FormatAcres(mineral / 100 * totalAcres)
	return w.csv.Write(row)
}

// WriteSummary writes the header, every owner and the totals row.
func (w *Writer) WriteSummary(summary *domain.OwnershipSummary) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteOwners(summary.Owners); err != nil {
		return err
	}
	return w.WriteTotals(summary.TotalSurfacePercentage, summary.TotalMineralPercentage, summary.TotalAcres)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// OwnerRow converts a single owner to a row matching Columns.
func OwnerRow(o *domain.Owner) []string {
	return []string{
		o.Name,
		strings.Join(otherNames(o), "; "),
		FormatPercent(o.SurfacePercentage),
		FormatPercent(o.MineralPercentage),
		FormatAcres(o.NetSurfaceAcres),
		FormatAcres(o.NetMineralAcres),
		string(o.CurrentLeaseStatus),
		o.AcquisitionDocument,
	}
}

// otherNames returns aliases that differ from the display name.
func otherNames(o *domain.Owner) []string {
	out := make([]string, 0, len(o.Aliases))
	for _, a := range o.Aliases {
		if a != o.Name {
			out = append(out, a)
		}
	}
	return out
}

func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func FormatAcres(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a prospect name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "runsheet"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_prospect}_{YYYY-MM-DD}.{ext}
func BuildFilename(prospect, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(prospect), now.Format("2006-01-02"), ext)
}
