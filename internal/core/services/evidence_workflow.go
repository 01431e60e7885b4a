package services

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/hearthview/opsdash/internal/apperrors"
	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/core/ports/opsapi"
	"github.com/hearthview/opsdash/internal/dto"
)

// evidenceState is one venue's board: uploaded documents with a source
// filter, the selected document's extraction candidates, and the
// tenant-wide pending review queue.
type evidenceState struct {
	seq        uint64
	source     domain.EvidenceSource
	items      []domain.Evidence
	selected   *domain.Evidence
	candidates []domain.EvidenceCandidate
	pending    []domain.EvidenceCandidate
	submitting bool
}

// EvidenceWorkflow holds the evidence page state, keyed per venue so
// operators on different venues never share a board and an upload always
// targets the venue of the page it was submitted from.
//
// The next-action indicator is advisory only, recomputed from fetched
// counts on every board copy: no evidence prompts an upload, a pending
// candidate anywhere prompts review, otherwise extraction.
type EvidenceWorkflow struct {
	tenantID string
	api      opsapi.EvidenceAPI

	mu     sync.Mutex
	states map[string]*evidenceState
}

// NewEvidenceWorkflow creates the evidence/candidate workflow.
func NewEvidenceWorkflow(tenantID string, api opsapi.EvidenceAPI) *EvidenceWorkflow {
	return &EvidenceWorkflow{tenantID: tenantID, api: api, states: make(map[string]*evidenceState)}
}

// stateLocked returns the venue's state, creating it on first use.
// Callers hold w.mu.
func (w *EvidenceWorkflow) stateLocked(venueID string) *evidenceState {
	s, ok := w.states[venueID]
	if !ok {
		s = &evidenceState{}
		w.states[venueID] = s
	}
	return s
}

// Load replaces the venue's page state for a source filter.
func (w *EvidenceWorkflow) Load(ctx context.Context, venueID string, source domain.EvidenceSource) (*dto.EvidenceBoard, error) {
	w.mu.Lock()
	s := w.stateLocked(venueID)
	s.seq++
	seq := s.seq
	s.source = source
	w.mu.Unlock()

	items, err := w.api.ListEvidence(ctx, w.tenantID, venueID, source)
	if err != nil {
		return nil, err
	}
	pending, err := w.api.ListPendingCandidates(ctx, w.tenantID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != s.seq {
		return w.boardLocked(venueID, s), nil
	}
	s.items = items
	s.pending = pending
	s.selected = nil
	s.candidates = nil
	return w.boardLocked(venueID, s), nil
}

// Select loads the candidates extracted from one document.
func (w *EvidenceWorkflow) Select(ctx context.Context, venueID, evidenceID string) (*dto.EvidenceBoard, error) {
	w.mu.Lock()
	s := w.stateLocked(venueID)
	seq := s.seq
	var item *domain.Evidence
	for i := range s.items {
		if s.items[i].EvidenceID == evidenceID {
			e := s.items[i]
			item = &e
			break
		}
	}
	w.mu.Unlock()

	if item == nil {
		fetched, err := w.api.GetEvidence(ctx, w.tenantID, evidenceID)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			return nil, fmt.Errorf("%w: evidence %s", apperrors.ErrNotFound, evidenceID)
		}
		item = fetched
	}

	candidates, err := w.api.ListCandidates(ctx, w.tenantID, evidenceID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != s.seq {
		return w.boardLocked(venueID, s), nil
	}
	s.selected = item
	s.candidates = candidates
	return w.boardLocked(venueID, s), nil
}

// Upload sends a document for the venue and prepends the returned record
// to the in-memory list without a re-fetch.
func (w *EvidenceWorkflow) Upload(ctx context.Context, venueID string, file io.Reader, fileName string, source domain.EvidenceSource, actor string) (*dto.EvidenceBoard, error) {
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

	uploaded, err := w.api.UploadEvidence(ctx, w.tenantID, venueID, file, fileName, source, actor)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq == s.seq {
		s.items = upsertByID(s.items, *uploaded, evidenceID)
	}
	return w.boardLocked(venueID, s), nil
}

// Extract asks the backend to derive candidates from a document. The
// returned candidates become the document's list; the pending queue is a
// status-filtered list, so it is re-fetched rather than patched.
func (w *EvidenceWorkflow) Extract(ctx context.Context, venueID, extractID, actor string) (*dto.EvidenceBoard, error) {
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

	candidates, err := w.api.ExtractFromEvidence(ctx, w.tenantID, extractID, actor)
	if err != nil {
		return nil, err
	}
	pending, err := w.api.ListPendingCandidates(ctx, w.tenantID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq == s.seq {
		s.pending = pending
		if s.selected != nil && s.selected.EvidenceID == extractID {
			s.candidates = candidates
		}
	}
	return w.boardLocked(venueID, s), nil
}

// ConfirmCandidate is one of the two permitted candidate mutations.
func (w *EvidenceWorkflow) ConfirmCandidate(ctx context.Context, venueID, candidateID, actor string) (*dto.EvidenceBoard, error) {
	return w.review(ctx, venueID, candidateID, "", actor, false)
}

// RejectCandidate requires a free-text reason; without one the request is
// never issued and prior state is untouched.
func (w *EvidenceWorkflow) RejectCandidate(ctx context.Context, venueID, candidateID, reason, actor string) (*dto.EvidenceBoard, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}
	return w.review(ctx, venueID, candidateID, reason, actor, true)
}

func (w *EvidenceWorkflow) review(ctx context.Context, venueID, candidateID, reason, actor string, reject bool) (*dto.EvidenceBoard, error) {
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

	var reviewed *domain.EvidenceCandidate
	var err error
	if reject {
		reviewed, err = w.api.RejectCandidate(ctx, w.tenantID, candidateID, reason, actor)
	} else {
		reviewed, err = w.api.ConfirmCandidate(ctx, w.tenantID, candidateID, actor)
	}
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq == s.seq {
		s.candidates = upsertByID(s.candidates, *reviewed, candidateKey)
		// The candidate left pending exactly once; it never reappears.
		s.pending = removeByID(s.pending, reviewed.CandidateID, candidateKey)
	}
	return w.boardLocked(venueID, s), nil
}

// Board copies the venue's current state without issuing any request.
func (w *EvidenceWorkflow) Board(venueID string) *dto.EvidenceBoard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.boardLocked(venueID, w.stateLocked(venueID))
}

func (w *EvidenceWorkflow) clearSubmitting(s *evidenceState) {
	w.mu.Lock()
	s.submitting = false
	w.mu.Unlock()
}

func (w *EvidenceWorkflow) boardLocked(venueID string, s *evidenceState) *dto.EvidenceBoard {
	board := &dto.EvidenceBoard{
		VenueID:      venueID,
		SourceFilter: s.source,
		Items:        slices.Clone(s.items),
		Candidates:   slices.Clone(s.candidates),
		Pending:      slices.Clone(s.pending),
		Submitting:   s.submitting,
	}
	if s.selected != nil {
		selected := *s.selected
		board.Selected = &selected
	}
	switch {
	case len(s.items) == 0:
		board.NextAction = dto.NextActionUpload
	case len(s.pending) > 0:
		board.NextAction = dto.NextActionReview
	default:
		board.NextAction = dto.NextActionExtract
	}
	return board
}

func evidenceID(e domain.Evidence) string { return e.EvidenceID }

func candidateKey(c domain.EvidenceCandidate) string { return c.CandidateID }
