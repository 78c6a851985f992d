package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runsheet/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 8)
	assert.Equal(t, "Owner", row[0])
	assert.Equal(t, "Acquisition Document", row[7])
}

func TestWriteSummary(t *testing.T) {
	summary := &domain.OwnershipSummary{
		SessionID:  uuid.New(),
		TotalAcres: 80,
		Owners: []domain.Owner{
			{
				Name:                "William Johnson AKA Bill Johnson",
				Aliases:             []string{"William Johnson", "Bill Johnson"},
				SurfacePercentage:   100,
				MineralPercentage:   62.5,
				NetSurfaceAcres:     80,
				NetMineralAcres:     50,
				CurrentLeaseStatus:  domain.OwnerLeaseLeased,
				AcquisitionDocument: "WD-12 (Book 4, Page 7)",
			},
			{
				Name:               "Acme, Inc.",
				Aliases:            []string{"Acme, Inc."},
				MineralPercentage:  37.5,
				NetMineralAcres:    30,
				CurrentLeaseStatus: domain.OwnerLeaseOpen,
			},
		},
		TotalSurfacePercentage: 100,
		TotalMineralPercentage: 100,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteSummary(summary))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{
		"William Johnson AKA Bill Johnson", "William Johnson; Bill Johnson", "100.0000", "62.5000",
		"80.0000", "50.0000", "leased", "WD-12 (Book 4, Page 7)",
	}, rows[1])
	assert.Equal(t, "Acme, Inc.", rows[2][0])
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, []string{"TOTAL", "", "100.0000", "100.0000", "80.0000", "80.0000", "", ""}, rows[3])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"North Tract", "North_Tract"},
		{"Sec. 12 / T4N-R3W", "Sec_12_T4N-R3W"},
		{"  __weird__  ", "weird"},
		{"", "runsheet"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "North_Tract_2025-06-01.csv", BuildFilename("North Tract", "csv", now))
	assert.Equal(t, "runsheet_2025-06-01.xlsx", BuildFilename("", "xlsx", now))
}
