package dto

import (
	"github.com/hearthview/opsdash/internal/core/domain"
)

// BriefView is the Monday brief page model: the decoded payload of the
// selected week plus the venue's recent briefs.
type BriefView struct {
	Brief   *domain.MondayBrief
	Payload *domain.BriefPayload
	// PayloadErr carries a payload decode failure so the page can show a
	// diagnostic instead of blank cells.
	PayloadErr string
	Recent     []domain.MondayBrief
}

// VarianceCard pairs a variance record with its decoded payload; exactly
// one of Budget/Labour is set, or DecodeErr when the payload is malformed.
type VarianceCard struct {
	Record    domain.Variance
	Budget    *domain.BudgetVsActualPayload
	Labour    *domain.LabourVsActualPayload
	DecodeErr string
}

// VarianceView groups variances by type for display sectioning only; the
// grouping has no effect on stored data.
type VarianceView struct {
	Budget []VarianceCard
	Labour []VarianceCard
}

// FindingCard pairs a finding with its decoded payload.
type FindingCard struct {
	Record    domain.GuardianFinding
	Payload   *domain.FindingPayload
	DecodeErr string
}

// FindingGroup is one severity section of the findings page.
type FindingGroup struct {
	Severity domain.Severity
	Findings []FindingCard
}

// FindingsView groups findings by severity, most urgent first, and carries
// the tenant-wide per-type summary.
type FindingsView struct {
	Groups  []FindingGroup
	Summary domain.FindingSummary
}

// PlanBoard is the budget/labour workflow page model: the filtered list,
// the current selection with its version history, and the confirmed plan.
type PlanBoard struct {
	Kind         domain.PlanKind
	VenueID      string
	StatusFilter domain.PlanStatus
	Plans        []domain.Plan
	Selected     *domain.Plan
	// LabourDetail is the decoded role table of a selected labour plan;
	// nil for budgets or when the payload does not parse, in which case
	// the page falls back to the raw payload.
	LabourDetail *domain.LabourPlanPayload
	Versions     []domain.PlanVersion
	Confirmed    *domain.Plan
	Submitting   bool
}

// CashBoard is the cash workflow page model.
type CashBoard struct {
	VenueID      string
	Week         string
	Snapshots    []domain.CashSnapshot
	WeekSnapshot *domain.CashSnapshot
	History      []domain.CashSnapshot
	Submitting   bool
}

// NextAction is the advisory evidence-workflow indicator, recomputed from
// already-fetched counts and never stored.
type NextAction string

const (
	NextActionUpload  NextAction = "upload"
	NextActionReview  NextAction = "review"
	NextActionExtract NextAction = "extract"
)

// EvidenceBoard is the evidence workflow page model.
type EvidenceBoard struct {
	VenueID      string
	SourceFilter domain.EvidenceSource
	Items        []domain.Evidence
	Selected     *domain.Evidence
	Candidates   []domain.EvidenceCandidate
	Pending      []domain.EvidenceCandidate
	NextAction   NextAction
	Submitting   bool
}
