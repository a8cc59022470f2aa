package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kanak0604/market-campaigns/internal/entity"
)

// UpdateLeadUseCase sobrescreve o lead em place e reclassifica o segmento a
// partir dos dados novos. Se a atribuição de campanha mudou de A pra B,
// as duas campanhas têm métricas recalculadas.
type UpdateLeadUseCase struct {
	Leads      LeadStore
	Classifier *SegmentClassifier
	Metrics    *RecomputeCampaignMetricsUseCase
}

func NewUpdateLeadUseCase(leads LeadStore, classifier *SegmentClassifier, metrics *RecomputeCampaignMetricsUseCase) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Leads: leads, Classifier: classifier, Metrics: metrics}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, id int, input LeadInput) (*MutateLeadOutput, error) {
	lead, err := uc.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}
	if lead == nil {
		return nil, &DomainError{Code: CodeLeadNotFound, Message: "Lead not found"}
	}

	validationErrors := ValidateLeadInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: joinValidationErrors(validationErrors),
		}
	}

	previousCampaign := lead.CampaignAssignment

	lead.Name = strings.TrimSpace(input.Name)
	lead.Email = strings.TrimSpace(input.Email)
	lead.PhoneNumber = input.PhoneNumber
	lead.CampaignAssignment = input.CampaignAssignment
	lead.HasOpenedEmail = input.HasOpenedEmail
	lead.HasConverted = input.HasConverted
	lead.Segment = uc.Classifier.Classify(ctx, lead.CampaignAssignment, lead.Email, lead.PhoneNumber)

	if err := uc.Leads.Update(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{
				Code:    CodeDuplicateEmail,
				Message: "Lead with this email already exists.",
			}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update lead: " + err.Error()}
	}

	for _, campaignID := range changedCampaigns(previousCampaign, lead.CampaignAssignment) {
		if _, err := uc.Metrics.Execute(ctx, campaignID); err != nil {
			return nil, err
		}
	}

	return &MutateLeadOutput{Message: "Lead updated successfully"}, nil
}

// changedCampaigns devolve o conjunto de campanhas a recalcular após uma
// mutação: a antiga, a nova, ou ambas quando a atribuição mudou.
func changedCampaigns(before, after *int) []int {
	var ids []int
	if before != nil {
		ids = append(ids, *before)
	}
	if after != nil && (before == nil || *after != *before) {
		ids = append(ids, *after)
	}
	return ids
}
