package usecase

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/kanak0604/market-campaigns/internal/entity"
)

// MaxBulkBatchSize limita um lote de reconciliação. Lote maior é rejeitado
// inteiro, sem processamento parcial.
const MaxBulkBatchSize = 1000

// BulkReconcileUseCase funde um lote de candidatos no Lead Store:
// inserido, atualizado ou rejeitado, um destino por registro. Duplicidade de
// email aqui vira update, nunca conflito — diferença intencional em relação
// ao add individual.
//
// O processamento é sequencial na ordem de entrada: o mesmo email duas vezes
// no lote insere na primeira ocorrência e atualiza o recém-inserido na
// segunda.
type BulkReconcileUseCase struct {
	Leads      LeadStore
	Classifier *SegmentClassifier
	Metrics    *RecomputeCampaignMetricsUseCase
}

func NewBulkReconcileUseCase(leads LeadStore, classifier *SegmentClassifier, metrics *RecomputeCampaignMetricsUseCase) *BulkReconcileUseCase {
	return &BulkReconcileUseCase{Leads: leads, Classifier: classifier, Metrics: metrics}
}

func (uc *BulkReconcileUseCase) Execute(ctx context.Context, batch []LeadInput) (*BulkReconcileOutput, error) {
	if len(batch) == 0 {
		return nil, &DomainError{Code: CodeValidation, Message: "No leads provided"}
	}
	if len(batch) > MaxBulkBatchSize {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: "Too many leads in one batch (max 1000).",
		}
	}

	batchID := uuid.New().String()

	processed := []string{}
	updated := []string{}
	rejected := []string{}
	touchedCampaigns := map[int]struct{}{}

	for _, candidate := range batch {
		// Rejeição não consulta o store: campo obrigatório em branco
		// derruba o registro antes de qualquer I/O.
		if strings.TrimSpace(candidate.Name) == "" || strings.TrimSpace(candidate.Email) == "" {
			email := candidate.Email
			if strings.TrimSpace(email) == "" {
				email = "(missing email)"
			}
			rejected = append(rejected, email)
			continue
		}

		// Classifica com os dados do próprio candidato, nunca com o que
		// está guardado.
		segment := uc.Classifier.Classify(ctx, candidate.CampaignAssignment, candidate.Email, candidate.PhoneNumber)

		existing, err := uc.Leads.FindByEmail(ctx, candidate.Email)
		if err != nil {
			return nil, &TechnicalError{Code: CodeDatabase, Message: err.Error()}
		}

		if existing != nil {
			if existing.CampaignAssignment != nil {
				touchedCampaigns[*existing.CampaignAssignment] = struct{}{}
			}

			existing.Name = candidate.Name
			existing.PhoneNumber = candidate.PhoneNumber
			existing.CampaignAssignment = candidate.CampaignAssignment
			existing.Segment = segment
			existing.HasOpenedEmail = candidate.HasOpenedEmail
			existing.HasConverted = candidate.HasConverted

			if err := uc.Leads.Update(ctx, existing); err != nil {
				return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update lead: " + err.Error()}
			}
			updated = append(updated, candidate.Email)
		} else {
			lead := &entity.Lead{
				Name:               candidate.Name,
				Email:              candidate.Email,
				PhoneNumber:        candidate.PhoneNumber,
				CampaignAssignment: candidate.CampaignAssignment,
				Segment:            segment,
				HasOpenedEmail:     candidate.HasOpenedEmail,
				HasConverted:       candidate.HasConverted,
			}
			if err := uc.Leads.Insert(ctx, lead); err != nil {
				return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to insert lead: " + err.Error()}
			}
			processed = append(processed, candidate.Email)
		}

		if candidate.CampaignAssignment != nil {
			touchedCampaigns[*candidate.CampaignAssignment] = struct{}{}
		}
	}

	// Cada campanha tocada é recalculada uma vez só, depois do lote inteiro.
	recomputed := make([]int, 0, len(touchedCampaigns))
	for campaignID := range touchedCampaigns {
		recomputed = append(recomputed, campaignID)
	}
	sort.Ints(recomputed)

	for _, campaignID := range recomputed {
		if _, err := uc.Metrics.Execute(ctx, campaignID); err != nil {
			return nil, err
		}
	}

	log.Printf("📦 [BULK %s] processados=%d atualizados=%d rejeitados=%d campanhas=%d",
		batchID, len(processed), len(updated), len(rejected), len(recomputed))

	return &BulkReconcileOutput{
		BatchID: batchID,
		Message: "Bulk upload completed successfully.",
		Summary: BulkReconcileSummary{
			Processed: len(processed),
			Updated:   len(updated),
			Rejected:  len(rejected),
			Total:     len(batch),
		},
		Details: BulkReconcileDetails{
			Processed: processed,
			Updated:   updated,
			Rejected:  rejected,
		},
		RecomputedCampaigns: recomputed,
	}, nil
}
