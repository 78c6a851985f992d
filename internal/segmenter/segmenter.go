// Package segmenter splits raw runsheet text into ordered, cleaned document rows.
package segmenter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"runsheet/internal/domain"
)

// rowNamespace seeds deterministic row IDs so the same text always yields the same rows.
var rowNamespace = uuid.MustParse("6f1c2a0e-5d7b-4c4e-9a55-1f4b8e2d7c31")

var (
	escapedNewline = strings.NewReplacer(`\r\n`, "\n", `\n`, "\n", `\r`, "\n", "\r\n", "\n", "\r", "\n")
	whitespaceRun  = regexp.MustCompile(`[ \t\f\v]+`)
)

// Segment splits text into rows. Blank lines are discarded, whitespace is collapsed and
// pipe-delimited lines are reformatted into one bullet per field.
func Segment(text string) []domain.DocumentRow {
	normalized := escapedNewline.Replace(text)

	rows := make([]domain.DocumentRow, 0)
	for _, line := range strings.Split(normalized, "\n") {
		content := CleanLine(line)
		if content == "" {
			continue
		}
		number := len(rows) + 1
		rows = append(rows, domain.DocumentRow{
			ID:        RowID(number, content),
			RowNumber: number,
			Content:   content,
			Status:    domain.RowStatusPending,
		})
	}
	return rows
}

// CleanLine collapses whitespace and reformats pipe-delimited fields. It returns "" for blank lines.
func CleanLine(line string) string {
	line = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}
	if !strings.Contains(line, "|") {
		return line
	}

	var fields []string
	for _, f := range strings.Split(line, "|") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, "• "+f)
		}
	}
	return strings.Join(fields, "\n")
}

// RowID derives the stable identifier of a row from its position and content.
func RowID(rowNumber int, content string) uuid.UUID {
	return uuid.NewSHA1(rowNamespace, []byte(strconv.Itoa(rowNumber)+"\x00"+content))
}
