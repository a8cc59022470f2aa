package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kanak0604/market-campaigns/internal/entity"
	"github.com/kanak0604/market-campaigns/internal/usecase"
)

func newUpdateUseCase(leadStore *fakeLeadStore, campaignStore *fakeCampaignStore) *usecase.UpdateLeadUseCase {
	classifier := usecase.NewSegmentClassifier(campaignStore)
	metrics := usecase.NewRecomputeCampaignMetricsUseCase(leadStore, campaignStore)
	return usecase.NewUpdateLeadUseCase(leadStore, classifier, metrics)
}

func TestUpdateLeadReclassifies(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	campaignStore := newFakeCampaignStore(entity.Campaign{ID: 1, Name: "Summer Sale"})
	seedLeads(t, leadStore,
		entity.Lead{ID: 1, Name: "Ana", Email: "ana@x.com", Segment: usecase.SegmentGeneral},
	)
	uc := newUpdateUseCase(leadStore, campaignStore)

	out, err := uc.Execute(ctx, 1, usecase.LeadInput{
		Name:               "Ana",
		Email:              "ana@company.com",
		CampaignAssignment: intPtr(1),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Lead updated successfully", out.Message)

	stored, _ := leadStore.FindByID(ctx, 1)
	// Email corporativo sobrepõe a regra de nome da campanha
	assert.Equal(t, usecase.SegmentCorporateLeads, stored.Segment)
}

func TestUpdateLeadRecomputesBothCampaignsOnMove(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	campaignStore := newFakeCampaignStore(
		entity.Campaign{ID: 1, Name: "Spring Push"},
		entity.Campaign{ID: 2, Name: "Summer Sale"},
	)
	seedLeads(t, leadStore,
		entity.Lead{ID: 1, Name: "Ana", Email: "ana@x.com", CampaignAssignment: intPtr(1)},
	)
	uc := newUpdateUseCase(leadStore, campaignStore)

	_, err := uc.Execute(ctx, 1, usecase.LeadInput{
		Name:               "Ana",
		Email:              "ana@x.com",
		CampaignAssignment: intPtr(2),
	})
	assert.NoError(t, err)

	// A campanha que perdeu o lead zera, a que ganhou conta um
	one := campaignStore.writes(1)
	assert.Len(t, one, 1)
	assert.Equal(t, 0, one[0].TotalLeads)
	two := campaignStore.writes(2)
	assert.Len(t, two, 1)
	assert.Equal(t, 1, two[0].TotalLeads)
}

func TestUpdateLeadSameCampaignRecomputesOnce(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	campaignStore := newFakeCampaignStore(entity.Campaign{ID: 1, Name: "Spring Push"})
	seedLeads(t, leadStore,
		entity.Lead{ID: 1, Name: "Ana", Email: "ana@x.com", CampaignAssignment: intPtr(1)},
	)
	uc := newUpdateUseCase(leadStore, campaignStore)

	_, err := uc.Execute(ctx, 1, usecase.LeadInput{
		Name:               "Ana",
		Email:              "ana@x.com",
		CampaignAssignment: intPtr(1),
		HasOpenedEmail:     true,
	})
	assert.NoError(t, err)
	assert.Len(t, campaignStore.writes(1), 1)
}

func TestUpdateLeadNotFound(t *testing.T) {
	uc := newUpdateUseCase(newFakeLeadStore(), newFakeCampaignStore())

	out, err := uc.Execute(context.Background(), 99, usecase.LeadInput{Name: "Ana", Email: "ana@x.com"})
	assert.Nil(t, out)

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeLeadNotFound, domainErr.Code)
}

func TestUpdateLeadValidation(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	seedLeads(t, leadStore, entity.Lead{ID: 1, Name: "Ana", Email: "ana@x.com"})
	uc := newUpdateUseCase(leadStore, newFakeCampaignStore())

	out, err := uc.Execute(ctx, 1, usecase.LeadInput{Name: "", Email: "ana@x.com"})
	assert.Nil(t, out)

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeValidation, domainErr.Code)

	// Nada mudou no store
	stored, _ := leadStore.FindByID(ctx, 1)
	assert.Equal(t, "Ana", stored.Name)
}
