package usecase

import (
	"context"
	"strconv"
	"strings"
)

// MaxSearchTerms limita os tokens distintos de uma busca. Acima disso a
// requisição inteira é rejeitada, sem resultado parcial.
const MaxSearchTerms = 500

// SearchLeadsUseCase resolve um lote de tokens crus (id numérico ou email)
// contra o Lead Store e particiona em found / notFound / invalidInputs.
// Todo token normalizado cai em exatamente uma das três partições.
type SearchLeadsUseCase struct {
	Leads LeadSearcher
}

func NewSearchLeadsUseCase(leads LeadSearcher) *SearchLeadsUseCase {
	return &SearchLeadsUseCase{Leads: leads}
}

func (uc *SearchLeadsUseCase) Execute(ctx context.Context, rawTerms []string) (*SearchLeadsOutput, error) {
	normalized := normalizeTerms(rawTerms)

	if len(normalized) == 0 {
		return nil, &DomainError{Code: CodeValidation, Message: "No search terms provided."}
	}
	if len(normalized) > MaxSearchTerms {
		return nil, &DomainError{Code: CodeValidation, Message: "Too many search terms (max 500)."}
	}

	var emails []string
	var ids []int
	for _, term := range normalized {
		if strings.Contains(term, "@") {
			emails = append(emails, term)
		} else if id, err := strconv.Atoi(term); err == nil {
			ids = append(ids, id)
		}
		// Token sem cara de email nem de ID fica de fora das duas buscas
		// e vai aparecer em notFound.
	}

	invalidInputs := []string{}
	var validEmails []string
	for _, email := range emails {
		if isValidEmail(email) {
			validEmails = append(validEmails, email)
		} else {
			invalidInputs = append(invalidInputs, email)
		}
	}

	found, err := uc.Leads.SearchByKeys(ctx, validEmails, ids)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to search leads: " + err.Error()}
	}

	foundKeys := make(map[string]struct{}, len(found)*2)
	for _, row := range found {
		foundKeys[strings.ToLower(row.Email)] = struct{}{}
		foundKeys[strconv.Itoa(row.LeadID)] = struct{}{}
	}

	invalidSet := make(map[string]struct{}, len(invalidInputs))
	for _, term := range invalidInputs {
		invalidSet[term] = struct{}{}
	}

	notFound := []string{}
	for _, term := range normalized {
		if _, bad := invalidSet[term]; bad {
			continue
		}
		if _, ok := foundKeys[term]; !ok {
			notFound = append(notFound, term)
		}
	}

	return &SearchLeadsOutput{
		Summary: SearchLeadsSummary{
			TotalRequested: len(normalized),
			FoundCount:     len(found),
			NotFoundCount:  len(notFound),
			InvalidInputs:  len(invalidInputs),
		},
		Found:         found,
		NotFound:      notFound,
		InvalidInputs: invalidInputs,
	}, nil
}

// normalizeTerms apara, descarta brancos, baixa a caixa e dedup.
func normalizeTerms(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var terms []string
	for _, term := range raw {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}
