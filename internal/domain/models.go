package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeaseDetails holds structured lease terms as reported by the analysis provider.
type LeaseDetails struct {
	Lessee             string `json:"lessee,omitempty" yaml:"lessee"`
	Lessor             string `json:"lessor,omitempty" yaml:"lessor"`
	EffectiveDate      string `json:"effective_date,omitempty" yaml:"effective_date"`
	Term               string `json:"term,omitempty" yaml:"term"`
	Royalty            string `json:"royalty,omitempty" yaml:"royalty"`
	RecordingReference string `json:"recording_reference,omitempty" yaml:"recording_reference"`
	Notes              string `json:"notes,omitempty" yaml:"notes"`
}

// Analysis is the structured reading of one runsheet row produced by the analysis provider.
type Analysis struct {
	DocumentType       DocumentType  `json:"document_type" yaml:"document_type"`
	DocumentNumber     string        `json:"document_number" yaml:"document_number"`
	RecordingReference string        `json:"recording_reference" yaml:"recording_reference"`
	Grantors           []string      `json:"grantors" yaml:"grantors" validate:"dive,required"`
	Grantees           []string      `json:"grantees" yaml:"grantees" validate:"dive,required"`
	OwnershipChange    bool          `json:"ownership_change" yaml:"ownership_change"`
	LeaseStatus        LeaseStatus   `json:"lease_status" yaml:"lease_status" validate:"omitempty,oneof=active expired none"`
	LeaseDetails       *LeaseDetails `json:"lease_details,omitempty" yaml:"lease_details"`
	Description        string        `json:"description" yaml:"description"`
	EffectiveDate      string        `json:"effective_date" yaml:"effective_date"`
	Acreage            float64       `json:"acreage" yaml:"acreage" validate:"gte=0"`
	PercentageChange   *float64      `json:"percentage_change,omitempty" yaml:"percentage_change" validate:"omitempty,gte=0,lte=100"`
}

// DocumentReference returns the identifier used to tag owners touched by this document.
func (a *Analysis) DocumentReference() string {
	switch {
	case a.DocumentNumber != "" && a.RecordingReference != "":
		return a.DocumentNumber + " (" + a.RecordingReference + ")"
	case a.DocumentNumber != "":
		return a.DocumentNumber
	default:
		return a.RecordingReference
	}
}

// Clone returns a deep copy of the analysis.
func (a *Analysis) Clone() *Analysis {
	if a == nil {
		return nil
	}
	c := *a
	c.Grantors = append([]string(nil), a.Grantors...)
	c.Grantees = append([]string(nil), a.Grantees...)
	if a.LeaseDetails != nil {
		ld := *a.LeaseDetails
		c.LeaseDetails = &ld
	}
	if a.PercentageChange != nil {
		pc := *a.PercentageChange
		c.PercentageChange = &pc
	}
	return &c
}

// DocumentRow is one cleaned line of runsheet text and its review state.
type DocumentRow struct {
	ID        uuid.UUID `json:"id"`
	RowNumber int       `json:"row_number"`
	Content   string    `json:"content"`
	Analysis  *Analysis `json:"analysis,omitempty"`
	Status    RowStatus `json:"status"`
	Error     string    `json:"error,omitempty"`
}

// Owner is one holder of surface and/or mineral interest in the tract.
type Owner struct {
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name"`
	Aliases             []string         `json:"aliases,omitempty"`
	SurfacePercentage   float64          `json:"surface_percentage"`
	MineralPercentage   float64          `json:"mineral_percentage"`
	NetSurfaceAcres     float64          `json:"net_surface_acres"`
	NetMineralAcres     float64          `json:"net_mineral_acres"`
	AcquisitionDocument string           `json:"acquisition_document"`
	CurrentLeaseStatus  OwnerLeaseStatus `json:"current_lease_status"`
	LeaseDetails        *LeaseDetails    `json:"lease_details,omitempty"`
}

// PendingTransfer is a recorded conveyance whose grantor is not yet an owner.
// Percentages are percentage points of the grantor's interest to move once it appears.
type PendingTransfer struct {
	ID                        uuid.UUID    `json:"id"`
	GrantorName               string       `json:"grantor_name"`
	GranteeName               string       `json:"grantee_name"`
	SurfacePercentage         float64      `json:"surface_percentage"`
	MineralPercentage         float64      `json:"mineral_percentage"`
	DocumentReference         string       `json:"document_reference"`
	RowIndex                  int          `json:"row_index"`
	TransferType              TransferType `json:"transfer_type"`
	ReservedMineralPercentage float64      `json:"reserved_mineral_percentage,omitempty"`
	// PercentageChange carries the deed's explicit per-grantee points, applied on resolution.
	PercentageChange          *float64     `json:"percentage_change,omitempty"`
}

// OngoingOwnership is the ownership ledger after a given row.
type OngoingOwnership struct {
	Owners                 []Owner           `json:"owners"`
	PendingTransfers       []PendingTransfer `json:"pending_transfers"`
	TotalSurfacePercentage float64           `json:"total_surface_percentage"`
	TotalMineralPercentage float64           `json:"total_mineral_percentage"`
	TotalAcres             float64           `json:"total_acres"`
	LastUpdatedRow         int               `json:"last_updated_row"`
	AppliedRows            []string          `json:"applied_rows,omitempty"`
}

// NewOngoingOwnership returns an empty ledger for a tract of the given size.
func NewOngoingOwnership(totalAcres float64) OngoingOwnership {
	return OngoingOwnership{
		Owners:           []Owner{},
		PendingTransfers: []PendingTransfer{},
		TotalAcres:       totalAcres,
	}
}

// Clone returns a deep copy that shares no slices or pointers with o.
func (o OngoingOwnership) Clone() OngoingOwnership {
	c := o
	c.Owners = make([]Owner, len(o.Owners))
	for i := range o.Owners {
		c.Owners[i] = o.Owners[i]
		c.Owners[i].Aliases = append([]string(nil), o.Owners[i].Aliases...)
		if o.Owners[i].LeaseDetails != nil {
			ld := *o.Owners[i].LeaseDetails
			c.Owners[i].LeaseDetails = &ld
		}
	}
	c.PendingTransfers = append([]PendingTransfer{}, o.PendingTransfers...)
	for i := range c.PendingTransfers {
		if pc := c.PendingTransfers[i].PercentageChange; pc != nil {
			v := *pc
			c.PendingTransfers[i].PercentageChange = &v
		}
	}
	c.AppliedRows = append([]string(nil), o.AppliedRows...)
	return c
}

// NameMatch is a candidate identity match between a grantee and an existing owner.
type NameMatch struct {
	OwnerID    uuid.UUID       `json:"owner_id"`
	OwnerName  string          `json:"owner_name"`
	Confidence MatchConfidence `json:"confidence"`
	Reason     string          `json:"reason"`
}

// GranteeMatches groups the candidate matches found for one grantee of a row.
type GranteeMatches struct {
	GranteeName string      `json:"grantee_name"`
	Matches     []NameMatch `json:"matches"`
}

// MatchConfirmation is the caller's answer to a set of candidate matches.
// Matches maps grantee name to the chosen owner name. A non-nil confirmation with
// no matches means every unmatched grantee is a new owner.
type MatchConfirmation struct {
	Matches map[string]string `json:"matches"`
}

// Session is an explicit runsheet analysis session.
type Session struct {
	ID              uuid.UUID        `json:"id"`
	Prospect        string           `json:"prospect"`
	TotalAcres      float64          `json:"total_acres"`
	Rows            []DocumentRow    `json:"rows"`
	CurrentRowIndex int              `json:"current_row_index"`
	Ownership       OngoingOwnership `json:"ongoing_ownership"`
	SnapshotRows    []int            `json:"snapshot_rows"`
	Status          SessionStatus    `json:"status"`
	PendingMatches  []GranteeMatches `json:"pending_matches,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.Rows = make([]DocumentRow, len(s.Rows))
	for i := range s.Rows {
		c.Rows[i] = s.Rows[i]
		c.Rows[i].Analysis = s.Rows[i].Analysis.Clone()
	}
	c.Ownership = s.Ownership.Clone()
	c.SnapshotRows = append([]int(nil), s.SnapshotRows...)
	if s.PendingMatches != nil {
		c.PendingMatches = make([]GranteeMatches, len(s.PendingMatches))
		for i, gm := range s.PendingMatches {
			c.PendingMatches[i] = GranteeMatches{
				GranteeName: gm.GranteeName,
				Matches:     append([]NameMatch(nil), gm.Matches...),
			}
		}
	}
	return &c
}

// Checkpoint is the persisted shape of a session.
type Checkpoint struct {
	SessionID        uuid.UUID                `json:"session_id"`
	Prospect         string                   `json:"prospect"`
	TotalAcres       float64                  `json:"total_acres"`
	Status           SessionStatus            `json:"status"`
	Rows             []DocumentRow            `json:"rows"`
	CurrentRowIndex  int                      `json:"current_row_index"`
	OngoingOwnership OngoingOwnership         `json:"ongoing_ownership"`
	OwnershipHistory map[int]OngoingOwnership `json:"ownership_history"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// OwnershipSummary is the final report of a session.
type OwnershipSummary struct {
	SessionID              uuid.UUID         `json:"session_id"`
	Prospect               string            `json:"prospect"`
	TotalAcres             float64           `json:"total_acres"`
	Owners                 []Owner           `json:"owners"`
	UnresolvedTransfers    []PendingTransfer `json:"unresolved_transfers"`
	TotalSurfacePercentage float64           `json:"total_surface_percentage"`
	TotalMineralPercentage float64           `json:"total_mineral_percentage"`
	ApprovedRows           int               `json:"approved_rows"`
	TotalRows              int               `json:"total_rows"`
	Completed              bool              `json:"completed"`
}
