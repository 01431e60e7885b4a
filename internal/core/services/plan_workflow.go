package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/hearthview/opsdash/internal/apperrors"
	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/core/ports/opsapi"
	"github.com/hearthview/opsdash/internal/dto"
)

// planState is one venue's board: the filtered list, the selection with
// its version history, and the confirmed plan.
type planState struct {
	seq        uint64
	status     domain.PlanStatus
	plans      []domain.Plan
	selected   *domain.Plan
	versions   []domain.PlanVersion
	confirmed  *domain.Plan
	submitting bool
}

// PlanWorkflow holds the budget or labour page state, keyed per venue so
// operators on different venues never share a board and a write always
// targets the venue of the page it was submitted from. One instance
// serves one kind.
//
// State is a read cache reconciled against the backend, which stays the
// sole source of truth: creates prepend the returned record, confirms
// trigger a full re-fetch because siblings may have been superseded.
//
// Every load carries a per-venue sequence number; a response whose
// sequence is no longer current is discarded, so the state always
// reflects the most recent request rather than the slowest response.
type PlanWorkflow struct {
	kind     domain.PlanKind
	tenantID string
	api      opsapi.PlanAPI

	mu     sync.Mutex
	states map[string]*planState
}

// NewPlanWorkflow creates the workflow for one plan kind.
func NewPlanWorkflow(kind domain.PlanKind, tenantID string, api opsapi.PlanAPI) *PlanWorkflow {
	return &PlanWorkflow{kind: kind, tenantID: tenantID, api: api, states: make(map[string]*planState)}
}

// stateLocked returns the venue's state, creating it on first use.
// Callers hold w.mu.
func (w *PlanWorkflow) stateLocked(venueID string) *planState {
	s, ok := w.states[venueID]
	if !ok {
		s = &planState{}
		w.states[venueID] = s
	}
	return s
}

// Load replaces the venue's page state for a status filter. Changing the
// filter triggers a full re-fetch and clears the selection.
func (w *PlanWorkflow) Load(ctx context.Context, venueID string, status domain.PlanStatus) (*dto.PlanBoard, error) {
	w.mu.Lock()
	s := w.stateLocked(venueID)
	s.seq++
	seq := s.seq
	s.status = status
	w.mu.Unlock()

	plans, err := w.api.ListPlans(ctx, w.tenantID, venueID, status)
	if err != nil {
		return nil, err
	}
	confirmed, err := w.api.GetConfirmedPlan(ctx, w.tenantID, venueID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != s.seq {
		// A newer load superseded this one while it was in flight.
		return w.boardLocked(venueID, s), nil
	}
	s.plans = plans
	s.confirmed = confirmed
	s.selected = nil
	s.versions = nil
	return w.boardLocked(venueID, s), nil
}

// Select loads the version history of one plan and makes it the venue's
// current selection.
func (w *PlanWorkflow) Select(ctx context.Context, venueID, planID string) (*dto.PlanBoard, error) {
	w.mu.Lock()
	s := w.stateLocked(venueID)
	seq := s.seq
	var plan *domain.Plan
	for i := range s.plans {
		if s.plans[i].PlanID == planID {
			p := s.plans[i]
			plan = &p
			break
		}
	}
	w.mu.Unlock()

	if plan == nil {
		fetched, err := w.api.GetPlan(ctx, w.tenantID, planID)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			return nil, fmt.Errorf("%w: plan %s", apperrors.ErrNotFound, planID)
		}
		plan = fetched
	}

	versions, err := w.api.ListPlanVersions(ctx, w.tenantID, planID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != s.seq {
		return w.boardLocked(venueID, s), nil
	}
	s.selected = plan
	s.versions = versions
	return w.boardLocked(venueID, s), nil
}

// Create submits a free-form payload as a new draft for the venue. The
// backend is the sole validator of required fields; on success the
// returned record is prepended to the in-memory list without a re-fetch.
func (w *PlanWorkflow) Create(ctx context.Context, venueID, payloadJSON, actor string) (*dto.PlanBoard, error) {
	payload, err := parsePayloadObject(payloadJSON)
	if err != nil {
		return nil, err
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

	created, err := w.api.CreatePlan(ctx, w.tenantID, venueID, payload, actor)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq == s.seq {
		s.plans = upsertByID(s.plans, *created, planID)
	}
	return w.boardLocked(venueID, s), nil
}

// Confirm submits the venue's currently selected plan's full payload as
// the confirmation input. With no selection it is a no-op: no request is
// issued. On success the list is re-fetched, since confirmation may
// supersede siblings, and the returned record becomes the selection.
func (w *PlanWorkflow) Confirm(ctx context.Context, venueID, actor string) (*dto.PlanBoard, error) {
	w.mu.Lock()
	s := w.stateLocked(venueID)
	if s.selected == nil {
		defer w.mu.Unlock()
		return w.boardLocked(venueID, s), nil
	}
	if s.submitting {
		w.mu.Unlock()
		return nil, apperrors.ErrSubmitInFlight
	}
	s.submitting = true
	seq := s.seq
	selected := *s.selected
	status := s.status
	w.mu.Unlock()
	defer w.clearSubmitting(s)

	confirmed, err := w.api.ConfirmPlan(ctx, w.tenantID, selected.PlanID, selected.Payload, actor)
	if err != nil {
		return nil, err
	}
	plans, err := w.api.ListPlans(ctx, w.tenantID, venueID, status)
	if err != nil {
		return nil, err
	}
	versions, err := w.api.ListPlanVersions(ctx, w.tenantID, confirmed.PlanID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq == s.seq {
		s.plans = plans
		s.selected = confirmed
		s.versions = versions
		s.confirmed = confirmed
	}
	return w.boardLocked(venueID, s), nil
}

// Board copies the venue's current state without issuing any request.
func (w *PlanWorkflow) Board(venueID string) *dto.PlanBoard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.boardLocked(venueID, w.stateLocked(venueID))
}

func (w *PlanWorkflow) clearSubmitting(s *planState) {
	w.mu.Lock()
	s.submitting = false
	w.mu.Unlock()
}

// boardLocked copies one venue's state into a board. Callers hold w.mu.
func (w *PlanWorkflow) boardLocked(venueID string, s *planState) *dto.PlanBoard {
	board := &dto.PlanBoard{
		Kind:         w.kind,
		VenueID:      venueID,
		StatusFilter: s.status,
		Plans:        slices.Clone(s.plans),
		Versions:     slices.Clone(s.versions),
		Submitting:   s.submitting,
	}
	if s.selected != nil {
		selected := *s.selected
		board.Selected = &selected
		if w.kind == domain.PlanKindLabour {
			if payload, err := selected.DecodeLabourPayload(); err == nil {
				board.LabourDetail = payload
			}
		}
	}
	if s.confirmed != nil {
		confirmed := *s.confirmed
		board.Confirmed = &confirmed
	}
	return board
}

func planID(p domain.Plan) string { return p.PlanID }

// parsePayloadObject checks that operator input is a JSON object before it
// is forwarded; everything beyond that is the backend's to validate.
func parsePayloadObject(input string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(input)
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, fmt.Errorf("%w: payload must be a JSON object", apperrors.ErrValidation)
	}
	return json.RawMessage(trimmed), nil
}
