package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"runsheet/internal/analysis"
	"runsheet/internal/domain"
	"runsheet/internal/history"
	"runsheet/internal/ledger"
	"runsheet/internal/metrics"
	"runsheet/internal/port"
	"runsheet/internal/segmenter"
)

// CreateSessionInput is the DTO for starting a session from raw runsheet text.
type CreateSessionInput struct {
	Text       string
	Prospect   string
	TotalAcres float64
}

// ApproveInput carries the caller's answer to candidate name matches, if any.
type ApproveInput struct {
	Matches       map[string]string // grantee name -> chosen owner name or ID
	TreatAllAsNew bool
}

// ApproveResult is the outcome of approving a row.
type ApproveResult struct {
	Session   *domain.Session
	Warnings  []string
	Duplicate bool
	Completed bool
}

// ConfirmationRequiredError is returned by ApproveRow when grantees may already be owners.
// It unwraps to domain.ErrConfirmationRequired.
type ConfirmationRequiredError struct {
	Candidates []domain.GranteeMatches
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("%s (%d grantees)", domain.ErrConfirmationRequired, len(e.Candidates))
}

func (e *ConfirmationRequiredError) Unwrap() error {
	return domain.ErrConfirmationRequired
}

// SessionService defines the runsheet session contract.
type SessionService interface {
	Create(ctx context.Context, input *CreateSessionInput) (*domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	List(ctx context.Context) ([]uuid.UUID, error)
	AnalyzeRow(ctx context.Context, id uuid.UUID, row int) (*domain.DocumentRow, error)
	CorrectRow(ctx context.Context, id uuid.UUID, row int, a *domain.Analysis) (*domain.DocumentRow, error)
	ApproveRow(ctx context.Context, id uuid.UUID, row int, input *ApproveInput) (*ApproveResult, error)
	Navigate(ctx context.Context, id uuid.UUID, row int) (*domain.Session, error)
	OwnershipAt(ctx context.Context, id uuid.UUID, row int) (*domain.OngoingOwnership, error)
	StartFresh(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Summary(ctx context.Context, id uuid.UUID) (*domain.OwnershipSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// sessionState is the in-memory form of one session. mu guards every field.
type sessionState struct {
	mu            sync.Mutex
	session       *domain.Session
	history       *history.Tracker
	analyzing     int // row number being analyzed, 0 when idle
	analyzingPrev domain.RowStatus
	deleted       bool
}

type sessionService struct {
	ledger    *ledger.Ledger
	provider  port.AnalysisProvider
	store     port.CheckpointStore
	notifier  port.CompletionNotifier // optional
	confirmer port.MatchConfirmer     // optional

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionState
	now      func() time.Time
}

// NewSessionService creates a new SessionService implementation. notifier and confirmer may be nil:
// without a confirmer ApproveRow returns a ConfirmationRequiredError for the caller to answer.
func NewSessionService(
	l *ledger.Ledger,
	provider port.AnalysisProvider,
	store port.CheckpointStore,
	notifier port.CompletionNotifier,
	confirmer port.MatchConfirmer,
) SessionService {
	return &sessionService{
		ledger:    l,
		provider:  provider,
		store:     store,
		notifier:  notifier,
		confirmer: confirmer,
		sessions:  make(map[uuid.UUID]*sessionState),
		now:       time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context, input *CreateSessionInput) (*domain.Session, error) {
	if input.TotalAcres < 0 || math.IsNaN(input.TotalAcres) {
		return nil, fmt.Errorf("service.Create: %w: total acres must not be negative", domain.ErrInvalidInput)
	}
	rows := segmenter.Segment(input.Text)
	if len(rows) == 0 {
		return nil, fmt.Errorf("service.Create: %w", domain.ErrEmptyDocument)
	}

	now := s.now().UTC()
	sess := &domain.Session{
		ID:              uuid.New(),
		Prospect:        input.Prospect,
		TotalAcres:      input.TotalAcres,
		Rows:            rows,
		CurrentRowIndex: 1,
		Ownership:       domain.NewOngoingOwnership(input.TotalAcres),
		SnapshotRows:    []int{},
		Status:          domain.SessionStatusInProgress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	st := &sessionState{session: sess, history: history.New()}

	if err := s.save(ctx, st); err != nil {
		return nil, fmt.Errorf("service.Create: %w", err)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = st
	s.mu.Unlock()
	metrics.ActiveSessions.Inc()

	log.Printf("service.Create: session %s created with %d rows (prospect %q, %.2f acres)",
		sess.ID, len(rows), input.Prospect, input.TotalAcres)
	return sess.Clone(), nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	st, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.Get: %w", err)
	}
	defer st.mu.Unlock()
	return st.session.Clone(), nil
}

func (s *sessionService) List(ctx context.Context) ([]uuid.UUID, error) {
	keys, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.List: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(keys))
	for _, k := range keys {
		id, err := uuid.Parse(k)
		if err != nil {
			log.Printf("service.List: skipping checkpoint key %q: %v", k, err)
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// AnalyzeRow sends one row to the analysis provider. The provider call runs without holding
// the session lock; the row is marked analyzing in memory only and any failure restores it.
func (s *sessionService) AnalyzeRow(ctx context.Context, id uuid.UUID, rowNumber int) (*domain.DocumentRow, error) {
	st, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.AnalyzeRow: %w", err)
	}
	if st.session.Status == domain.SessionStatusCompleted {
		st.mu.Unlock()
		return nil, fmt.Errorf("service.AnalyzeRow: %w", domain.ErrSessionCompleted)
	}
	row, err := st.row(rowNumber)
	if err != nil {
		st.mu.Unlock()
		return nil, fmt.Errorf("service.AnalyzeRow: %w", err)
	}
	if st.analyzing != 0 {
		st.mu.Unlock()
		return nil, fmt.Errorf("service.AnalyzeRow: row %d: %w", st.analyzing, domain.ErrAnalysisInProgress)
	}

	prev := row.Status
	row.Status = domain.RowStatusAnalyzing
	st.analyzing = rowNumber
	st.analyzingPrev = prev
	req := port.AnalysisRequest{
		RowContent:       row.Content,
		RowNumber:        rowNumber,
		Prospect:         st.session.Prospect,
		TotalAcres:       st.session.TotalAcres,
		CurrentOwnership: st.history.Before(rowNumber, st.session.TotalAcres),
	}
	st.mu.Unlock()

	start := time.Now()
	out, err := s.provider.Analyze(ctx, req)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		if out == nil || out.Analysis == nil {
			err = fmt.Errorf("%w: provider returned no analysis", domain.ErrInvalidAnalysis)
		} else {
			err = analysis.Validate(out.Analysis)
		}
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.analyzing = 0
	row, _ = st.row(rowNumber)

	if err != nil {
		row.Status = prev
		if _, ok := st.history.At(rowNumber); prev == domain.RowStatusApproved && !ok {
			row.Status = domain.RowStatusAnalyzed
		}
		if ctx.Err() != nil {
			metrics.RowsAnalyzed.WithLabelValues("cancelled").Inc()
			return nil, fmt.Errorf("service.AnalyzeRow: row %d: %w", rowNumber, ctx.Err())
		}
		metrics.RowsAnalyzed.WithLabelValues("failure").Inc()
		row.Error = err.Error()
		log.Printf("service.AnalyzeRow: session %s row %d failed: %v", id, rowNumber, err)
		return nil, fmt.Errorf("service.AnalyzeRow: row %d: %w: %w", rowNumber, domain.ErrAnalysisFailed, err)
	}
	if st.deleted {
		return nil, fmt.Errorf("service.AnalyzeRow: %w", domain.ErrSessionNotFound)
	}

	if prev == domain.RowStatusApproved {
		st.invalidateFrom(rowNumber)
	}
	row.Analysis = out.Analysis
	row.Status = domain.RowStatusAnalyzed
	row.Error = ""
	st.session.CurrentRowIndex = rowNumber
	metrics.RowsAnalyzed.WithLabelValues("success").Inc()
	log.Printf("service.AnalyzeRow: session %s row %d analyzed by %s", id, rowNumber, out.ModelUsed)

	if err := s.save(ctx, st); err != nil {
		return nil, fmt.Errorf("service.AnalyzeRow: %w", err)
	}
	result := *row
	result.Analysis = row.Analysis.Clone()
	return &result, nil
}

// CorrectRow replaces a row's analysis with a human-edited one.
func (s *sessionService) CorrectRow(ctx context.Context, id uuid.UUID, rowNumber int, a *domain.Analysis) (*domain.DocumentRow, error) {
	if a == nil {
		return nil, fmt.Errorf("service.CorrectRow: %w: missing analysis", domain.ErrInvalidAnalysis)
	}
	corrected := a.Clone()
	if err := analysis.Validate(corrected); err != nil {
		return nil, fmt.Errorf("service.CorrectRow: %w", err)
	}

	st, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.CorrectRow: %w", err)
	}
	defer st.mu.Unlock()

	if st.session.Status == domain.SessionStatusCompleted {
		return nil, fmt.Errorf("service.CorrectRow: %w", domain.ErrSessionCompleted)
	}
	row, err := st.row(rowNumber)
	if err != nil {
		return nil, fmt.Errorf("service.CorrectRow: %w", err)
	}
	if st.analyzing != 0 {
		return nil, fmt.Errorf("service.CorrectRow: row %d: %w", st.analyzing, domain.ErrAnalysisInProgress)
	}
	if !row.Status.HasAnalysis() {
		return nil, fmt.Errorf("service.CorrectRow: row %d is %s: %w", rowNumber, row.Status, domain.ErrInvalidRowState)
	}

	if row.Status == domain.RowStatusApproved {
		st.invalidateFrom(rowNumber)
	}
	row.Analysis = corrected
	row.Status = domain.RowStatusCorrected
	row.Error = ""
	st.session.CurrentRowIndex = rowNumber

	if err := s.save(ctx, st); err != nil {
		return nil, fmt.Errorf("service.CorrectRow: %w", err)
	}
	result := *row
	result.Analysis = row.Analysis.Clone()
	return &result, nil
}

// ApproveRow applies a row's analysis to the ledger state before it, replacing any
// snapshots at or after the row.
func (s *sessionService) ApproveRow(ctx context.Context, id uuid.UUID, rowNumber int, input *ApproveInput) (*ApproveResult, error) {
	st, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ApproveRow: %w", err)
	}
	defer st.mu.Unlock()

	if st.session.Status == domain.SessionStatusCompleted {
		return nil, fmt.Errorf("service.ApproveRow: %w", domain.ErrSessionCompleted)
	}
	row, err := st.row(rowNumber)
	if err != nil {
		return nil, fmt.Errorf("service.ApproveRow: %w", err)
	}
	if st.analyzing != 0 {
		return nil, fmt.Errorf("service.ApproveRow: row %d: %w", st.analyzing, domain.ErrAnalysisInProgress)
	}
	if !row.Status.HasAnalysis() || row.Analysis == nil {
		return nil, fmt.Errorf("service.ApproveRow: row %d is %s: %w", rowNumber, row.Status, domain.ErrInvalidRowState)
	}

	prior := st.history.Before(rowNumber, st.session.TotalAcres)
	in := ledger.ApplyInput{
		Analysis:     row.Analysis,
		RowNumber:    rowNumber,
		TotalAcres:   st.session.TotalAcres,
		Key:          row.ID.String(),
		Confirmation: confirmationFrom(input),
	}
	res, err := s.ledger.Apply(prior, in)
	if err != nil {
		return nil, fmt.Errorf("service.ApproveRow: %w", err)
	}

	if res.NeedsConfirmation && s.confirmer != nil {
		conf, err := s.confirmer.Confirm(ctx, res.Candidates)
		if err != nil {
			return nil, fmt.Errorf("service.ApproveRow: confirming matches: %w", err)
		}
		if conf == nil {
			conf = &domain.MatchConfirmation{}
		}
		in.Confirmation = conf
		if res, err = s.ledger.Apply(prior, in); err != nil {
			return nil, fmt.Errorf("service.ApproveRow: %w", err)
		}
	}

	if res.NeedsConfirmation {
		st.session.PendingMatches = res.Candidates
		metrics.RowsApproved.WithLabelValues("confirmation_required").Inc()
		if err := s.save(ctx, st); err != nil {
			return nil, fmt.Errorf("service.ApproveRow: %w", err)
		}
		return nil, fmt.Errorf("service.ApproveRow: row %d: %w", rowNumber,
			&ConfirmationRequiredError{Candidates: res.Candidates})
	}

	if res.Duplicate {
		metrics.RowsApproved.WithLabelValues("duplicate").Inc()
		log.Printf("service.ApproveRow: session %s row %d: %v", id, rowNumber, domain.ErrRowAlreadyApplied)
		return &ApproveResult{Session: st.session.Clone(), Duplicate: true}, nil
	}

	st.history.Truncate(rowNumber)
	st.history.Record(rowNumber, res.State)
	st.demoteAfter(rowNumber)
	st.session.Ownership = res.State.Clone()
	st.session.PendingMatches = nil
	row.Status = domain.RowStatusApproved
	row.Error = ""

	completed := rowNumber == len(st.session.Rows)
	if completed {
		st.session.Status = domain.SessionStatusCompleted
		st.session.CurrentRowIndex = rowNumber
	} else {
		st.session.CurrentRowIndex = rowNumber + 1
	}

	if err := s.save(ctx, st); err != nil {
		return nil, fmt.Errorf("service.ApproveRow: %w", err)
	}
	metrics.RowsApproved.WithLabelValues("applied").Inc()
	metrics.PendingTransfers.Observe(float64(len(res.State.PendingTransfers)))

	if completed {
		metrics.SessionsCompleted.Inc()
		log.Printf("service.ApproveRow: session %s completed", id)
		if s.notifier != nil {
			if err := s.notifier.OnComplete(ctx, st.summary()); err != nil {
				log.Printf("service.ApproveRow: completion notification for session %s failed: %v", id, err)
			}
		}
	}

	return &ApproveResult{
		Session:   st.session.Clone(),
		Warnings:  res.Warnings,
		Completed: completed,
	}, nil
}

// Navigate moves the session cursor to a row and shows the ledger as of that row.
func (s *sessionService) Navigate(ctx context.Context, id uuid.UUID, rowNumber int) (*domain.Session, error) {
	st, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.Navigate: %w", err)
	}
	defer st.mu.Unlock()

	if _, err := st.row(rowNumber); err != nil {
		return nil, fmt.Errorf("service.Navigate: %w", err)
	}
	if st.analyzing != 0 {
		return nil, fmt.Errorf("service.Navigate: row %d: %w", st.analyzing, domain.ErrAnalysisInProgress)
	}
	st.session.CurrentRowIndex = rowNumber
	st.session.Ownership = st.history.Before(rowNumber+1, st.session.TotalAcres)

	if err := s.save(ctx, st); err != nil {
		return nil, fmt.Errorf("service.Navigate: %w", err)
	}
	return st.session.Clone(), nil
}

// OwnershipAt returns the ledger after row, or after the nearest approved row before it.
// Row 0 returns the latest state.
func (s *sessionService) OwnershipAt(ctx context.Context, id uuid.UUID, rowNumber int) (*domain.OngoingOwnership, error) {
	st, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.OwnershipAt: %w", err)
	}
	defer st.mu.Unlock()

	if rowNumber == 0 {
		latest := st.latest()
		return &latest, nil
	}
	if _, err := st.row(rowNumber); err != nil {
		return nil, fmt.Errorf("service.OwnershipAt: %w", err)
	}
	state := st.history.Before(rowNumber+1, st.session.TotalAcres)
	return &state, nil
}

// StartFresh discards every analysis and snapshot and returns the session to its first row.
func (s *sessionService) StartFresh(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	st, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.StartFresh: %w", err)
	}
	defer st.mu.Unlock()

	if st.analyzing != 0 {
		return nil, fmt.Errorf("service.StartFresh: %w", domain.ErrAnalysisInProgress)
	}
	for i := range st.session.Rows {
		st.session.Rows[i].Status = domain.RowStatusPending
		st.session.Rows[i].Analysis = nil
		st.session.Rows[i].Error = ""
	}
	st.history.Reset()
	st.session.Ownership = domain.NewOngoingOwnership(st.session.TotalAcres)
	st.session.CurrentRowIndex = 1
	st.session.Status = domain.SessionStatusInProgress
	st.session.PendingMatches = nil

	if err := s.save(ctx, st); err != nil {
		return nil, fmt.Errorf("service.StartFresh: %w", err)
	}
	log.Printf("service.StartFresh: session %s reset", id)
	return st.session.Clone(), nil
}

func (s *sessionService) Summary(ctx context.Context, id uuid.UUID) (*domain.OwnershipSummary, error) {
	st, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.Summary: %w", err)
	}
	defer st.mu.Unlock()
	return st.summary(), nil
}

func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	st, err := s.lock(ctx, id)
	if err != nil {
		return fmt.Errorf("service.Delete: %w", err)
	}
	defer st.mu.Unlock()

	if err := s.store.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("service.Delete: %w", err)
	}
	st.deleted = true

	s.mu.Lock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		metrics.ActiveSessions.Dec()
	}
	s.mu.Unlock()

	log.Printf("service.Delete: session %s deleted", id)
	return nil
}

// lock returns the session's state with its mutex held, loading the checkpoint on a cache miss.
func (s *sessionService) lock(ctx context.Context, id uuid.UUID) (*sessionState, error) {
	st, err := s.state(ctx, id)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	if st.deleted {
		st.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return st, nil
}

func (s *sessionService) state(ctx context.Context, id uuid.UUID) (*sessionState, error) {
	s.mu.Lock()
	st, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		return st, nil
	}

	cp, err := s.store.Load(ctx, id.String())
	if err != nil {
		if errors.Is(err, domain.ErrCheckpointNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading checkpoint: %w", err)
	}
	loaded := fromCheckpoint(cp)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		return existing, nil
	}
	s.sessions[id] = loaded
	metrics.ActiveSessions.Inc()
	log.Printf("service.state: session %s restored from checkpoint", id)
	return loaded, nil
}

// save persists the session. Callers hold st.mu.
func (s *sessionService) save(ctx context.Context, st *sessionState) error {
	st.session.UpdatedAt = s.now().UTC()
	st.session.SnapshotRows = st.history.Rows()
	cp := st.checkpoint()
	if err := s.store.Save(ctx, cp.SessionID.String(), cp); err != nil {
		return fmt.Errorf("saving checkpoint: %w", err)
	}
	return nil
}

func (st *sessionState) row(n int) (*domain.DocumentRow, error) {
	if n < 1 || n > len(st.session.Rows) {
		return nil, fmt.Errorf("row %d: %w", n, domain.ErrRowNotFound)
	}
	return &st.session.Rows[n-1], nil
}

func (st *sessionState) latest() domain.OngoingOwnership {
	return st.history.Before(math.MaxInt, st.session.TotalAcres)
}

// demoteAfter returns approved rows after n to analyzed; their snapshots are gone.
func (st *sessionState) demoteAfter(n int) {
	for i := n; i < len(st.session.Rows); i++ {
		if st.session.Rows[i].Status == domain.RowStatusApproved {
			st.session.Rows[i].Status = domain.RowStatusAnalyzed
		}
	}
}

// invalidateFrom drops the snapshots at and after row n once its analysis changes.
func (st *sessionState) invalidateFrom(n int) {
	st.history.Truncate(n)
	st.demoteAfter(n)
	st.session.Ownership = st.history.Before(n, st.session.TotalAcres)
}

func (st *sessionState) summary() *domain.OwnershipSummary {
	latest := st.latest()
	approved := 0
	for _, r := range st.session.Rows {
		if r.Status == domain.RowStatusApproved {
			approved++
		}
	}
	return &domain.OwnershipSummary{
		SessionID:              st.session.ID,
		Prospect:               st.session.Prospect,
		TotalAcres:             st.session.TotalAcres,
		Owners:                 latest.Owners,
		UnresolvedTransfers:    latest.PendingTransfers,
		TotalSurfacePercentage: latest.TotalSurfacePercentage,
		TotalMineralPercentage: latest.TotalMineralPercentage,
		ApprovedRows:           approved,
		TotalRows:              len(st.session.Rows),
		Completed:              st.session.Status == domain.SessionStatusCompleted,
	}
}

// checkpoint captures the persisted shape. A row being analyzed is stored with its previous status.
func (st *sessionState) checkpoint() *domain.Checkpoint {
	sess := st.session.Clone()
	if st.analyzing != 0 {
		sess.Rows[st.analyzing-1].Status = st.analyzingPrev
	}
	return &domain.Checkpoint{
		SessionID:        sess.ID,
		Prospect:         sess.Prospect,
		TotalAcres:       sess.TotalAcres,
		Status:           sess.Status,
		Rows:             sess.Rows,
		CurrentRowIndex:  sess.CurrentRowIndex,
		OngoingOwnership: sess.Ownership,
		OwnershipHistory: st.history.Snapshots(),
		CreatedAt:        sess.CreatedAt,
		UpdatedAt:        sess.UpdatedAt,
	}
}

func fromCheckpoint(cp *domain.Checkpoint) *sessionState {
	h := history.FromSnapshots(cp.OwnershipHistory)
	sess := &domain.Session{
		ID:              cp.SessionID,
		Prospect:        cp.Prospect,
		TotalAcres:      cp.TotalAcres,
		Rows:            cp.Rows,
		CurrentRowIndex: cp.CurrentRowIndex,
		Ownership:       cp.OngoingOwnership.Clone(),
		SnapshotRows:    h.Rows(),
		Status:          cp.Status,
		CreatedAt:       cp.CreatedAt,
		UpdatedAt:       cp.UpdatedAt,
	}
	for i := range sess.Rows {
		if sess.Rows[i].Status == domain.RowStatusAnalyzing {
			sess.Rows[i].Status = domain.RowStatusPending
		}
	}
	if sess.Status == "" {
		sess.Status = domain.SessionStatusInProgress
	}
	return &sessionState{session: sess, history: h}
}

func confirmationFrom(input *ApproveInput) *domain.MatchConfirmation {
	switch {
	case input == nil:
		return nil
	case input.TreatAllAsNew:
		return &domain.MatchConfirmation{}
	case len(input.Matches) > 0:
		return &domain.MatchConfirmation{Matches: input.Matches}
	default:
		return nil
	}
}
