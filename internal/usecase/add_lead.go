package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/kanak0604/market-campaigns/internal/entity"
	"github.com/kanak0604/market-campaigns/internal/infra/queue"
)

// AddLeadUseCase é o caminho de cadastro individual. Ao contrário do bulk,
// aqui duplicidade (de ID ou de email) é conflito, não update. Assimetria
// intencional entre os dois endpoints.
type AddLeadUseCase struct {
	Leads      LeadStore
	Campaigns  CampaignFinder
	Classifier *SegmentClassifier
	Metrics    *RecomputeCampaignMetricsUseCase
	Queue      QueueProducerInterface
}

func NewAddLeadUseCase(
	leads LeadStore,
	campaigns CampaignFinder,
	classifier *SegmentClassifier,
	metrics *RecomputeCampaignMetricsUseCase,
	producer QueueProducerInterface,
) *AddLeadUseCase {
	return &AddLeadUseCase{
		Leads:      leads,
		Campaigns:  campaigns,
		Classifier: classifier,
		Metrics:    metrics,
		Queue:      producer,
	}
}

func (uc *AddLeadUseCase) Execute(ctx context.Context, input LeadInput) (*AddLeadOutput, error) {
	validationErrors := ValidateLeadInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: joinValidationErrors(validationErrors),
		}
	}

	// Colisão de ID só é checada quando o chamador manda um ID próprio.
	if input.LeadID > 0 {
		existing, err := uc.Leads.FindByID(ctx, input.LeadID)
		if err != nil {
			return nil, &TechnicalError{Code: CodeDatabase, Message: err.Error()}
		}
		if existing != nil {
			return nil, &DomainError{
				Code:    CodeDuplicateLeadID,
				Message: "Duplicate Lead ID not allowed. Please use a unique ID.",
			}
		}
	}

	existing, err := uc.Leads.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}
	if existing != nil {
		return nil, &DomainError{
			Code:    CodeDuplicateEmail,
			Message: "Lead with this email already exists.",
		}
	}

	segment := uc.Classifier.Classify(ctx, input.CampaignAssignment, input.Email, input.PhoneNumber)

	lead := &entity.Lead{
		ID:                 input.LeadID,
		Name:               strings.TrimSpace(input.Name),
		Email:              strings.TrimSpace(input.Email),
		PhoneNumber:        input.PhoneNumber,
		CampaignAssignment: input.CampaignAssignment,
		Segment:            segment,
		HasOpenedEmail:     input.HasOpenedEmail,
		HasConverted:       input.HasConverted,
	}

	txn := NewTransaction()

	txn.AddOperation("insert_lead", func(ctx context.Context) error {
		return uc.Leads.Insert(ctx, lead)
	})
	txn.AddCompensation("delete_lead", func(ctx context.Context) error {
		return uc.Leads.Delete(ctx, lead.ID)
	})

	if lead.CampaignAssignment != nil {
		campaignID := *lead.CampaignAssignment
		txn.AddOperation("recompute_campaign_metrics", func(ctx context.Context) error {
			_, err := uc.Metrics.Execute(ctx, campaignID)
			return err
		})
	}

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{
				Code:    CodeDuplicateEmail,
				Message: "Lead with this email already exists.",
			}
		}
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	// Boas-vindas fora do caminho da resposta: a fila absorve a latência.
	if uc.Queue != nil {
		go func() {
			payload := queue.LeadWelcomePayload{
				EventID: uuid.New().String(),
				LeadID:  lead.ID,
				Name:    lead.Name,
				Email:   lead.Email,
				Segment: lead.Segment,
			}
			if err := uc.Queue.PublishLeadWelcome(context.Background(), payload); err != nil {
				log.Printf("⚠️ Falha ao publicar boas-vindas do lead %d: %v", lead.ID, err)
			}
		}()
	}

	return &AddLeadOutput{Lead: lead, Message: "Lead added successfully!"}, nil
}
