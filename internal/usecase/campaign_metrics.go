package usecase

import (
	"context"

	"github.com/kanak0604/market-campaigns/internal/entity"
)

// RecomputeCampaignMetricsUseCase deriva as quatro métricas de uma campanha
// a partir da população atual de leads e persiste no Campaign Store.
//
// Idempotente: duas chamadas sem mutação de lead no meio produzem números
// idênticos. Leitura e escrita são dois statements separados, sem lock:
// recomputes concorrentes da mesma campanha podem perder uma atualização.
// Janela aceita; o refresh periódico (infra/worker) corrige sozinho.
type RecomputeCampaignMetricsUseCase struct {
	Leads     LeadCounter
	Campaigns CampaignMetricsWriter
}

func NewRecomputeCampaignMetricsUseCase(leads LeadCounter, campaigns CampaignMetricsWriter) *RecomputeCampaignMetricsUseCase {
	return &RecomputeCampaignMetricsUseCase{Leads: leads, Campaigns: campaigns}
}

// Compute calcula as métricas sem persistir.
func (uc *RecomputeCampaignMetricsUseCase) Compute(ctx context.Context, campaignID int) (*entity.CampaignMetrics, error) {
	total, err := uc.Leads.CountByCampaign(ctx, campaignID, entity.AnyLead)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to count leads: " + err.Error()}
	}
	opened, err := uc.Leads.CountByCampaign(ctx, campaignID, entity.OpenedEmailOnly)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to count opened leads: " + err.Error()}
	}
	converted, err := uc.Leads.CountByCampaign(ctx, campaignID, entity.ConvertedOnly)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to count converted leads: " + err.Error()}
	}

	metrics := entity.DeriveMetrics(total, opened, converted)
	return &metrics, nil
}

// Execute recalcula e grava. Campanha inexistente é no-op silencioso:
// campaign_assignment é referência fraca e pode estar pendurada.
func (uc *RecomputeCampaignMetricsUseCase) Execute(ctx context.Context, campaignID int) (*entity.CampaignMetrics, error) {
	campaign, err := uc.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load campaign: " + err.Error()}
	}
	if campaign == nil {
		return nil, nil
	}

	metrics, err := uc.Compute(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if err := uc.Campaigns.UpdateMetrics(ctx, campaignID, *metrics); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to persist campaign metrics: " + err.Error()}
	}

	return metrics, nil
}
