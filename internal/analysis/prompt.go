package analysis

import (
	"fmt"
	"strings"

	"runsheet/internal/port"
)

// BuildRunsheetPrompt returns the extraction prompt for one runsheet row. The current
// owners are listed so the model can spell grantor names the way the ledger already does.
func BuildRunsheetPrompt(req port.AnalysisRequest) string {
	var owners strings.Builder
	if len(req.CurrentOwnership.Owners) == 0 {
		owners.WriteString("  (none yet)\n")
	}
	for _, o := range req.CurrentOwnership.Owners {
		fmt.Fprintf(&owners, "  - %s: surface %.4f%%, mineral %.4f%%\n", o.Name, o.SurfacePercentage, o.MineralPercentage)
	}

	return `You are a land title analyst reading one entry of an oil and gas runsheet (chain of title).
Prospect: ` + req.Prospect + `
Total tract acres: ` + fmt.Sprintf("%.4f", req.TotalAcres) + `
Row number: ` + fmt.Sprintf("%d", req.RowNumber) + `

Current owners of record:
` + owners.String() + `
Runsheet entry:
"""
` + req.RowContent + `
"""

IMPORTANT INSTRUCTIONS:
- Identify the instrument type. Use "Patent" for original government grants, "MD" for mineral deeds, "WD" for warranty deeds, and the abbreviation printed on the entry otherwise (e.g. "QCD", "OGL", "AFF").
- List every grantor and grantee as written, one person or entity per array element. Do not merge co-grantees.
- Set ownership_change to true only when the instrument conveys surface or mineral title. Leases, releases, affidavits and assignments of lease are not ownership changes.
- Copy any reservation or exception language verbatim into description (e.g. "reserving 1/2 of the mineral interest").
- lease_status is "active" for an oil and gas lease in force, "expired" for a released or expired lease, otherwise "none".
- percentage_change is the share of the whole tract each grantee receives, only when the entry states one explicitly; otherwise omit it.
- Dates use YYYY-MM-DD.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, just the raw JSON object:
{
  "document_type": "",
  "document_number": "",
  "recording_reference": "",
  "grantors": [],
  "grantees": [],
  "ownership_change": false,
  "lease_status": "none",
  "lease_details": {
    "lessee": "", "lessor": "", "effective_date": "",
    "term": "", "royalty": "", "recording_reference": "", "notes": ""
  },
  "description": "",
  "effective_date": "",
  "acreage": 0
}

If a field is not present in the entry, use empty string for text, 0 for numbers, an empty array for lists and null for lease_details.`
}
