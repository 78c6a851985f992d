package domain

import "strings"

// RowStatus represents the review lifecycle of a runsheet row.
type RowStatus string

const (
	RowStatusPending   RowStatus = "pending"
	RowStatusAnalyzing RowStatus = "analyzing"
	RowStatusAnalyzed  RowStatus = "analyzed"
	RowStatusCorrected RowStatus = "corrected"
	RowStatusApproved  RowStatus = "approved"
)

// HasAnalysis reports whether a row in this status carries an analysis that can be approved.
func (s RowStatus) HasAnalysis() bool {
	return s == RowStatusAnalyzed || s == RowStatusCorrected || s == RowStatusApproved
}

// SessionStatus represents the lifecycle of an analysis session.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

// DocumentType is the instrument type reported by the analysis provider.
// Values other than the known constants are carried verbatim.
type DocumentType string

const (
	DocumentTypePatent       DocumentType = "Patent"
	DocumentTypeMineralDeed  DocumentType = "MD"
	DocumentTypeWarrantyDeed DocumentType = "WD"
)

// IsPatent reports whether the document is an original government grant.
func (t DocumentType) IsPatent() bool {
	return strings.EqualFold(strings.TrimSpace(string(t)), string(DocumentTypePatent))
}

// IsMineralDeed reports whether the document conveys only mineral rights.
func (t DocumentType) IsMineralDeed() bool {
	v := strings.ToLower(strings.TrimSpace(string(t)))
	return v == "md" || v == "mineral deed" || v == "mineral_deed"
}

// IsKnown reports whether the type is one the classifier recognises by name.
func (t DocumentType) IsKnown() bool {
	v := strings.ToLower(strings.TrimSpace(string(t)))
	switch v {
	case "patent", "md", "mineral deed", "mineral_deed", "wd", "warranty deed", "warranty_deed",
		"qcd", "quitclaim deed", "deed":
		return true
	}
	return false
}

// LeaseStatus is the lease state reported by the analysis provider for a row.
type LeaseStatus string

const (
	LeaseStatusActive  LeaseStatus = "active"
	LeaseStatusExpired LeaseStatus = "expired"
	LeaseStatusNone    LeaseStatus = "none"
)

// OwnerLeaseStatus is the lease state tracked on an owner record.
type OwnerLeaseStatus string

const (
	OwnerLeaseLeased     OwnerLeaseStatus = "leased"
	OwnerLeaseOpen       OwnerLeaseStatus = "open"
	OwnerLeaseExpiredHBP OwnerLeaseStatus = "expired_hbp"
	OwnerLeaseUnknown    OwnerLeaseStatus = "unknown"
)

// OwnerLeaseStatusFor maps a row-level lease status to the owner-level status.
func OwnerLeaseStatusFor(s LeaseStatus) OwnerLeaseStatus {
	switch s {
	case LeaseStatusActive:
		return OwnerLeaseLeased
	case LeaseStatusExpired:
		return OwnerLeaseExpiredHBP
	default:
		return OwnerLeaseOpen
	}
}

// TransferType describes which estates a pending transfer moves.
type TransferType string

const (
	TransferFull        TransferType = "full"
	TransferSurfaceOnly TransferType = "surface_only"
	TransferMineralOnly TransferType = "mineral_only"
)

// MatchConfidence grades a potential identity match between a grantee and an owner.
type MatchConfidence string

const (
	MatchConfidenceHigh   MatchConfidence = "high"
	MatchConfidenceMedium MatchConfidence = "medium"
)
