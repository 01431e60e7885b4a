package dto

import "github.com/hearthview/opsdash/internal/core/domain"

// SignInForm is the name-only operator sign-in. The name becomes the actor
// identifier forwarded on every write.
type SignInForm struct {
	Name string `form:"name" binding:"required"`
}

// PlanCreateForm carries a free-form JSON payload for a new budget or
// labour plan; the backend is the sole validator of its required fields.
type PlanCreateForm struct {
	Payload string `form:"payload" binding:"required"`
}

// PlanSelectForm selects a plan whose version history should load.
type PlanSelectForm struct {
	PlanID string `form:"planId" binding:"required"`
}

// CashCreateForm is the new-snapshot entry form. Revenue and Costs are
// excluded from binding: Gin coerces an empty number input to zero, which
// would erase the distinction between "not entered" and "£0". Handlers
// fill them from the raw form values instead.
type CashCreateForm struct {
	WeekStartDate string   `form:"weekStartDate" binding:"required"`
	Revenue       *float64 `form:"-"`
	Costs         *float64 `form:"-"`
	Notes         string   `form:"notes"`
}

// CashCorrectForm appends a correction to an existing snapshot. Reason is
// deliberately unvalidated by binding: the workflow applies the
// non-empty-reason gate itself so no request is ever issued without one.
type CashCorrectForm struct {
	SnapshotID string   `form:"snapshotId" binding:"required"`
	Revenue    *float64 `form:"-"`
	Costs      *float64 `form:"-"`
	Notes      string   `form:"notes"`
	Reason     string   `form:"reason"`
}

// EvidenceUploadForm tags an uploaded document; the file itself arrives as
// the multipart "file" field.
type EvidenceUploadForm struct {
	Source domain.EvidenceSource `form:"source" binding:"required,oneof=rota pos payroll other"`
}

// CandidateReviewForm confirms or rejects an extraction candidate. Reason
// is required for rejection and gated in the workflow, not by binding.
type CandidateReviewForm struct {
	CandidateID string `form:"candidateId" binding:"required"`
	Reason      string `form:"reason"`
}
