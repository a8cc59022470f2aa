package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kanak0604/market-campaigns/internal/entity"
	"github.com/kanak0604/market-campaigns/internal/usecase"
)

func TestSearchLeadsPartition(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	seedLeads(t, leadStore,
		entity.Lead{ID: 42, Name: "Ana", Email: "ana@x.com"},
		entity.Lead{ID: 7, Name: "Beto", Email: "a@b.com"},
	)
	uc := usecase.NewSearchLeadsUseCase(leadStore)

	out, err := uc.Execute(ctx, []string{"42", "notanemail@", "a@b.com", "999"})
	assert.NoError(t, err)

	assert.Equal(t, 4, out.Summary.TotalRequested)
	assert.Equal(t, 2, out.Summary.FoundCount)
	assert.Equal(t, 1, out.Summary.NotFoundCount)
	assert.Equal(t, 1, out.Summary.InvalidInputs)

	foundIDs := []int{}
	for _, row := range out.Found {
		foundIDs = append(foundIDs, row.LeadID)
	}
	assert.ElementsMatch(t, []int{42, 7}, foundIDs)

	// Token inválido fica só em invalidInputs, nunca vaza pra notFound.
	assert.Equal(t, []string{"999"}, out.NotFound)
	assert.Equal(t, []string{"notanemail@"}, out.InvalidInputs)
}

func TestSearchLeadsNormalizesAndDedupes(t *testing.T) {
	ctx := context.Background()
	leadStore := newFakeLeadStore()
	seedLeads(t, leadStore,
		entity.Lead{ID: 1, Name: "Ana", Email: "Ana@X.com"},
	)
	uc := usecase.NewSearchLeadsUseCase(leadStore)

	// Espaços, caixa alta e repetição colapsam num token só.
	out, err := uc.Execute(ctx, []string{"  ANA@x.COM ", "ana@x.com", "", "   "})
	assert.NoError(t, err)

	assert.Equal(t, 1, out.Summary.TotalRequested)
	assert.Equal(t, 1, out.Summary.FoundCount)
	assert.Empty(t, out.NotFound)
	assert.Empty(t, out.InvalidInputs)
}

func TestSearchLeadsTooManyTerms(t *testing.T) {
	uc := usecase.NewSearchLeadsUseCase(newFakeLeadStore())

	terms := make([]string, usecase.MaxSearchTerms+1)
	for i := range terms {
		terms[i] = fmt.Sprintf("lead%d@x.com", i)
	}

	out, err := uc.Execute(context.Background(), terms)
	assert.Nil(t, out)

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeValidation, domainErr.Code)
}

func TestSearchLeadsDuplicatesDontBustTheCap(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSearchLeadsUseCase(newFakeLeadStore())

	// 600 tokens crus, mas só 2 distintos: passa no teto pós-dedup.
	terms := make([]string, 0, 600)
	for i := 0; i < 300; i++ {
		terms = append(terms, "a@x.com", "b@x.com")
	}

	out, err := uc.Execute(ctx, terms)
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Summary.TotalRequested)
}

func TestSearchLeadsNoTerms(t *testing.T) {
	uc := usecase.NewSearchLeadsUseCase(newFakeLeadStore())

	out, err := uc.Execute(context.Background(), []string{"  ", ""})
	assert.Nil(t, out)

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
}

func TestSearchLeadsOpaqueTokenGoesToNotFound(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSearchLeadsUseCase(newFakeLeadStore())

	// Nem email nem número: não consulta o store e cai em notFound.
	out, err := uc.Execute(ctx, []string{"abc-def"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"abc-def"}, out.NotFound)
	assert.Empty(t, out.InvalidInputs)
}
