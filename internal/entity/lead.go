package entity

import (
	"context"
	"errors"
)

var (
	ErrLeadNotFound        = errors.New("lead não encontrado")
	ErrEmailAlreadyExists  = errors.New("já existe um lead com este email")
	ErrLeadIDAlreadyExists = errors.New("já existe um lead com este ID")
)

type Lead struct {
	ID                 int    `json:"lead_id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phone_number,omitempty"`
	CampaignAssignment *int   `json:"campaign_assignment,omitempty"`

	// Segment é sempre derivado pelo classificador. Nunca vem do usuário.
	Segment string `json:"segment"`

	HasOpenedEmail bool `json:"has_opened_email"`
	HasConverted   bool `json:"has_converted"`
}

// LeadWithCampaign é a projeção de listagem (lead + nome da campanha resolvido).
type LeadWithCampaign struct {
	Lead
	CampaignName string `json:"campaign_name,omitempty"`
}

// LeadSearchRow é a linha devolvida pela busca multi-chave. Campanha é um
// left join: lead sem campanha resolvível aparece com nome "—" e taxas 0.
type LeadSearchRow struct {
	LeadID         int     `json:"lead_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number,omitempty"`
	CampaignName   string  `json:"campaign_name"`
	Segment        string  `json:"segment"`
	OpenRate       float64 `json:"open_rate"`
	Clicks         float64 `json:"clicks"`
	Conversions    float64 `json:"conversions"`
	HasOpenedEmail bool    `json:"has_opened_email"`
	HasConverted   bool    `json:"has_converted"`
}

// LeadPredicate restringe a contagem de leads de uma campanha.
type LeadPredicate string

const (
	AnyLead         LeadPredicate = ""
	OpenedEmailOnly LeadPredicate = "opened_email"
	ConvertedOnly   LeadPredicate = "converted"
)

// LeadRepositoryInterface é o contrato do Lead Store. Os métodos Find*
// devolvem (nil, nil) quando o lead não existe; erro só em falha de I/O.
type LeadRepositoryInterface interface {
	FindByID(ctx context.Context, id int) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	FindAll(ctx context.Context) ([]LeadWithCampaign, error)
	SearchByKeys(ctx context.Context, emails []string, ids []int) ([]LeadSearchRow, error)
	CountByCampaign(ctx context.Context, campaignID int, pred LeadPredicate) (int, error)
	Insert(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id int) error
}
