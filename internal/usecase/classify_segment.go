package usecase

import (
	"context"
	"strings"
)

// Rótulos possíveis do classificador. Total: sempre devolve um deles.
const (
	SegmentSeasonal        = "Seasonal"
	SegmentCorporate       = "Corporate"
	SegmentEarlyAdopters   = "Early Adopters"
	SegmentCorporateLeads  = "Corporate Leads"
	SegmentStudentAcademic = "Student/Academic"
	SegmentGeneralPublic   = "General Public"
	SegmentUSLeads         = "US Leads"
	SegmentIndiaLeads      = "India Leads"
	SegmentGeneral         = "General"
)

// SegmentClassifier resolve a campanha e aplica as regras de segmentação.
// Campanha inexistente não é erro: as regras de nome só não se aplicam.
type SegmentClassifier struct {
	Campaigns CampaignFinder
}

func NewSegmentClassifier(campaigns CampaignFinder) *SegmentClassifier {
	return &SegmentClassifier{Campaigns: campaigns}
}

func (c *SegmentClassifier) Classify(ctx context.Context, campaignID *int, email, phone string) string {
	var campaignName string
	if campaignID != nil && c.Campaigns != nil {
		campaign, err := c.Campaigns.FindByID(ctx, *campaignID)
		if err == nil && campaign != nil {
			campaignName = campaign.Name
		}
	}
	return SegmentFor(campaignName, email, phone)
}

// SegmentFor aplica as regras em ordem de precedência crescente:
// nome da campanha < domínio do email < prefixo do telefone.
// Cada grupo que casa sobrescreve o resultado do grupo anterior.
// Sem email não há classificação nenhuma, nem por telefone: volta General.
func SegmentFor(campaignName, email, phone string) string {
	if strings.TrimSpace(email) == "" {
		return SegmentGeneral
	}

	segment := SegmentGeneral

	name := strings.ToLower(campaignName)
	switch {
	case strings.Contains(name, "summer sale"):
		segment = SegmentSeasonal
	case strings.Contains(name, "corporate"):
		segment = SegmentCorporate
	case strings.Contains(name, "launch"):
		segment = SegmentEarlyAdopters
	}

	lowered := strings.ToLower(email)
	switch {
	case strings.HasSuffix(lowered, "@company.com"):
		segment = SegmentCorporateLeads
	case strings.HasSuffix(lowered, "@edu.org"):
		segment = SegmentStudentAcademic
	case strings.HasSuffix(lowered, "@gmail.com"), strings.HasSuffix(lowered, "@yahoo.com"):
		segment = SegmentGeneralPublic
	}

	if strings.HasPrefix(phone, "+1") {
		segment = SegmentUSLeads
	} else if strings.HasPrefix(phone, "+91") {
		segment = SegmentIndiaLeads
	}

	return segment
}
