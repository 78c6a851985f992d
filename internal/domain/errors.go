package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidInput         = errors.New("invalid input")
	ErrSessionNotFound      = errors.New("session not found")
	ErrRowNotFound          = errors.New("row not found")
	ErrEmptyDocument        = errors.New("document text contains no rows")
	ErrInvalidRowState      = errors.New("row is not in a valid state for this action")
	ErrAnalysisInProgress   = errors.New("another row is already being analyzed")
	ErrAnalysisFailed       = errors.New("analysis failed for this row")
	ErrInvalidAnalysis      = errors.New("analysis does not match expected format")
	ErrConfirmationRequired = errors.New("grantee name matches require confirmation")
	ErrRowAlreadyApplied    = errors.New("row has already been applied to the ledger")
	ErrSessionCompleted     = errors.New("session is already completed")
	ErrCheckpointNotFound   = errors.New("checkpoint not found")
)
