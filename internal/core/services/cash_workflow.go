package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/hearthview/opsdash/internal/apperrors"
	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/core/ports/opsapi"
	"github.com/hearthview/opsdash/internal/dto"
)

// cashState is one venue's board: the full snapshot list and, when a week
// is selected, that week's current snapshot and its append-only history.
type cashState struct {
	seq          uint64
	week         string
	snapshots    []domain.CashSnapshot
	weekSnapshot *domain.CashSnapshot
	history      []domain.CashSnapshot
	submitting   bool
}

// CashWorkflow holds the cash page state, keyed per venue so operators on
// different venues never share a board and a write always targets the
// venue of the page it was submitted from. Corrections never mutate prior
// records; a successful correction is prepended to both lists.
type CashWorkflow struct {
	tenantID string
	api      opsapi.CashAPI

	mu     sync.Mutex
	states map[string]*cashState
}

// NewCashWorkflow creates the cash snapshot workflow.
func NewCashWorkflow(tenantID string, api opsapi.CashAPI) *CashWorkflow {
	return &CashWorkflow{tenantID: tenantID, api: api, states: make(map[string]*cashState)}
}

// stateLocked returns the venue's state, creating it on first use.
// Callers hold w.mu.
func (w *CashWorkflow) stateLocked(venueID string) *cashState {
	s, ok := w.states[venueID]
	if !ok {
		s = &cashState{}
		w.states[venueID] = s
	}
	return s
}

// Load replaces the venue's page state for a week.
func (w *CashWorkflow) Load(ctx context.Context, venueID, weekStartDate string) (*dto.CashBoard, error) {
	w.mu.Lock()
	s := w.stateLocked(venueID)
	s.seq++
	seq := s.seq
	s.week = weekStartDate
	w.mu.Unlock()

	snapshots, err := w.api.ListSnapshots(ctx, w.tenantID, venueID)
	if err != nil {
		return nil, err
	}
	var weekSnapshot *domain.CashSnapshot
	var history []domain.CashSnapshot
	if weekStartDate != "" {
		weekSnapshot, err = w.api.GetWeekSnapshot(ctx, w.tenantID, venueID, weekStartDate)
		if err != nil {
			return nil, err
		}
		history, err = w.api.GetWeekHistory(ctx, w.tenantID, venueID, weekStartDate)
		if err != nil {
			return nil, err
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != s.seq {
		return w.boardLocked(venueID, s), nil
	}
	s.snapshots = snapshots
	s.weekSnapshot = weekSnapshot
	s.history = history
	return w.boardLocked(venueID, s), nil
}

// Create records a new snapshot for the venue and prepends the returned
// record to the in-memory list without a re-fetch.
func (w *CashWorkflow) Create(ctx context.Context, venueID string, form dto.CashCreateForm, actor string) (*dto.CashBoard, error) {
	w.mu.Lock()
	s := w.stateLocked(venueID)
	if s.submitting {
		w.mu.Unlock()
		return nil, apperrors.ErrSubmitInFlight
	}
	s.submitting = true
	seq := s.seq
	w.mu.Unlock()
	defer w.clearSubmitting(s)

	payload := domain.CashPayload{Revenue: form.Revenue, Costs: form.Costs, Notes: form.Notes}
	created, err := w.api.CreateSnapshot(ctx, w.tenantID, venueID, form.WeekStartDate, payload, actor)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq == s.seq {
		applyNewSnapshotLocked(s, *created)
	}
	return w.boardLocked(venueID, s), nil
}

// Correct appends a correction to an existing snapshot. An empty or
// whitespace-only reason is refused locally: the request is never issued
// and prior state is untouched.
func (w *CashWorkflow) Correct(ctx context.Context, venueID string, form dto.CashCorrectForm, actor string) (*dto.CashBoard, error) {
	if strings.TrimSpace(form.Reason) == "" {
		return nil, fmt.Errorf("%w: a correction reason is required", apperrors.ErrValidation)
	}

	w.mu.Lock()
	s := w.stateLocked(venueID)
	if s.submitting {
		w.mu.Unlock()
		return nil, apperrors.ErrSubmitInFlight
	}
	s.submitting = true
	seq := s.seq
	w.mu.Unlock()
	defer w.clearSubmitting(s)

	payload := domain.CashPayload{Revenue: form.Revenue, Costs: form.Costs, Notes: form.Notes}
	correction, err := w.api.CorrectSnapshot(ctx, w.tenantID, form.SnapshotID, payload, form.Reason, actor)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq == s.seq {
		applyNewSnapshotLocked(s, *correction)
	}
	return w.boardLocked(venueID, s), nil
}

// applyNewSnapshotLocked reconciles one returned record into the venue's
// full list and, when it belongs to the selected week, into the week
// history.
func applyNewSnapshotLocked(s *cashState, snapshot domain.CashSnapshot) {
	s.snapshots = upsertByID(s.snapshots, snapshot, snapshotID)
	if s.week != "" && snapshot.WeekStartDate == s.week {
		s.history = upsertByID(s.history, snapshot, snapshotID)
		s.weekSnapshot = &snapshot
	}
}

// Board copies the venue's current state without issuing any request.
func (w *CashWorkflow) Board(venueID string) *dto.CashBoard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.boardLocked(venueID, w.stateLocked(venueID))
}

func (w *CashWorkflow) clearSubmitting(s *cashState) {
	w.mu.Lock()
	s.submitting = false
	w.mu.Unlock()
}

func (w *CashWorkflow) boardLocked(venueID string, s *cashState) *dto.CashBoard {
	board := &dto.CashBoard{
		VenueID:    venueID,
		Week:       s.week,
		Snapshots:  slices.Clone(s.snapshots),
		History:    slices.Clone(s.history),
		Submitting: s.submitting,
	}
	if s.weekSnapshot != nil {
		snapshot := *s.weekSnapshot
		board.WeekSnapshot = &snapshot
	}
	return board
}

func snapshotID(s domain.CashSnapshot) string { return s.SnapshotID }
