package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kanak0604/market-campaigns/internal/entity"
	"github.com/kanak0604/market-campaigns/internal/usecase"
)

func newAddUseCase(leadStore *fakeLeadStore, campaignStore *fakeCampaignStore, producer usecase.QueueProducerInterface) *usecase.AddLeadUseCase {
	classifier := usecase.NewSegmentClassifier(campaignStore)
	metrics := usecase.NewRecomputeCampaignMetricsUseCase(leadStore, campaignStore)
	return usecase.NewAddLeadUseCase(leadStore, campaignStore, classifier, metrics, producer)
}

func TestAddLeadSuccess(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	campaignStore := newFakeCampaignStore(entity.Campaign{ID: 1, Name: "Summer Sale"})
	uc := newAddUseCase(leadStore, campaignStore, nil)

	out, err := uc.Execute(ctx, usecase.LeadInput{
		Name:               "  Ana  ",
		Email:              "ana@x.com",
		CampaignAssignment: intPtr(1),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Lead added successfully!", out.Message)
	assert.Equal(t, "Ana", out.Lead.Name)
	assert.Equal(t, usecase.SegmentSeasonal, out.Lead.Segment)
	assert.NotZero(t, out.Lead.ID)

	// Cadastro dispara recompute da campanha atribuída
	writes := campaignStore.writes(1)
	assert.Len(t, writes, 1)
	assert.Equal(t, 1, writes[0].TotalLeads)
}

func TestAddLeadCallerSuppliedID(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	uc := newAddUseCase(leadStore, newFakeCampaignStore(), nil)

	out, err := uc.Execute(ctx, usecase.LeadInput{LeadID: 77, Name: "Ana", Email: "ana@x.com"})
	assert.NoError(t, err)
	assert.Equal(t, 77, out.Lead.ID)
}

func TestAddLeadDuplicateID(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	seedLeads(t, leadStore, entity.Lead{ID: 77, Name: "Ana", Email: "ana@x.com"})
	uc := newAddUseCase(leadStore, newFakeCampaignStore(), nil)

	out, err := uc.Execute(ctx, usecase.LeadInput{LeadID: 77, Name: "Beto", Email: "beto@x.com"})
	assert.Nil(t, out)

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeDuplicateLeadID, domainErr.Code)
	assert.Equal(t, 1, leadStore.len())
}

func TestAddLeadDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	seedLeads(t, leadStore, entity.Lead{Name: "Ana", Email: "ana@x.com"})
	uc := newAddUseCase(leadStore, newFakeCampaignStore(), nil)

	// Caixa diferente, mesmo email: conflito mesmo assim
	out, err := uc.Execute(ctx, usecase.LeadInput{Name: "Ana 2", Email: "ANA@X.COM"})
	assert.Nil(t, out)

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeDuplicateEmail, domainErr.Code)
}

func TestAddLeadValidation(t *testing.T) {
	uc := newAddUseCase(newFakeLeadStore(), newFakeCampaignStore(), nil)

	tests := []struct {
		label string
		input usecase.LeadInput
	}{
		{"sem nome", usecase.LeadInput{Email: "a@x.com"}},
		{"sem email", usecase.LeadInput{Name: "Ana"}},
		{"email inválido", usecase.LeadInput{Name: "Ana", Email: "not-an-email"}},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), tc.input)
			assert.Nil(t, out)

			var domainErr *usecase.DomainError
			assert.ErrorAs(t, err, &domainErr)
			assert.Equal(t, usecase.CodeValidation, domainErr.Code)
		})
	}
}

func TestAddLeadPublishesWelcome(t *testing.T) {
	ctx := context.Background()
	producer := &fakeProducer{}
	uc := newAddUseCase(newFakeLeadStore(), newFakeCampaignStore(), producer)

	out, err := uc.Execute(ctx, usecase.LeadInput{Name: "Ana", Email: "ana@gmail.com"})
	assert.NoError(t, err)

	// A publicação sai numa goroutine, fora do caminho da resposta
	assert.Eventually(t, func() bool {
		producer.mu.Lock()
		defer producer.mu.Unlock()
		return len(producer.events) == 1
	}, time.Second, 10*time.Millisecond)

	producer.mu.Lock()
	event := producer.events[0]
	producer.mu.Unlock()
	assert.Equal(t, out.Lead.ID, event.LeadID)
	assert.Equal(t, "ana@gmail.com", event.Email)
	assert.Equal(t, usecase.SegmentGeneralPublic, event.Segment)
	assert.NotEmpty(t, event.EventID)
}

func TestAddLeadDanglingCampaignStillPersists(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	uc := newAddUseCase(leadStore, newFakeCampaignStore(), nil)

	// Campanha 99 não existe: o recompute é no-op, o lead entra assim mesmo
	out, err := uc.Execute(ctx, usecase.LeadInput{
		Name:               "Ana",
		Email:              "ana@x.com",
		CampaignAssignment: intPtr(99),
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, leadStore.len())
	assert.Equal(t, 99, *out.Lead.CampaignAssignment)
}
