package usecase

import (
	"context"
)

// DeleteLeadUseCase remove o lead e recalcula as métricas da campanha que
// ele deixou para trás.
type DeleteLeadUseCase struct {
	Leads   LeadStore
	Metrics *RecomputeCampaignMetricsUseCase
}

func NewDeleteLeadUseCase(leads LeadStore, metrics *RecomputeCampaignMetricsUseCase) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Leads: leads, Metrics: metrics}
}

func (uc *DeleteLeadUseCase) Execute(ctx context.Context, id int) (*MutateLeadOutput, error) {
	lead, err := uc.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}
	if lead == nil {
		return nil, &DomainError{Code: CodeLeadNotFound, Message: "Lead not found"}
	}

	formerCampaign := lead.CampaignAssignment

	if err := uc.Leads.Delete(ctx, id); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to delete lead: " + err.Error()}
	}

	if formerCampaign != nil {
		if _, err := uc.Metrics.Execute(ctx, *formerCampaign); err != nil {
			return nil, err
		}
	}

	return &MutateLeadOutput{Message: "Lead deleted and campaign analytics updated successfully"}, nil
}
