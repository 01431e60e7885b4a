package services

import (
	"github.com/hearthview/opsdash/internal/adapters/opsbackend"
	"github.com/hearthview/opsdash/internal/core/domain"
	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
)

var (
	_ portssvc.VenueSvcFacade    = (*VenueService)(nil)
	_ portssvc.BriefSvcFacade    = (*BriefService)(nil)
	_ portssvc.VarianceSvcFacade = (*VarianceService)(nil)
	_ portssvc.FindingSvcFacade  = (*FindingService)(nil)
	_ portssvc.PlanSvcFacade     = (*PlanWorkflow)(nil)
	_ portssvc.CashSvcFacade     = (*CashWorkflow)(nil)
	_ portssvc.EvidenceSvcFacade = (*EvidenceWorkflow)(nil)
)

// NewContainer wires every page service over one backend client.
func NewContainer(tenantID string, client *opsbackend.Client) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Venue:    NewVenueService(tenantID, client),
		Brief:    NewBriefService(tenantID, client),
		Variance: NewVarianceService(tenantID, client),
		Finding:  NewFindingService(tenantID, client),
		Budget:   NewPlanWorkflow(domain.PlanKindBudget, tenantID, opsbackend.NewBudgetAPI(client)),
		Labour:   NewPlanWorkflow(domain.PlanKindLabour, tenantID, opsbackend.NewLabourAPI(client)),
		Cash:     NewCashWorkflow(tenantID, client),
		Evidence: NewEvidenceWorkflow(tenantID, client),
	}
}
