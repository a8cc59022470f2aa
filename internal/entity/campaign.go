package entity

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrCampaignNotFound = errors.New("campanha não encontrada")

type Campaign struct {
	ID        int       `json:"campaign_id"`
	Name      string    `json:"campaign_name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
	Agency    string    `json:"agency,omitempty"`
	Buyer     string    `json:"buyer,omitempty"`
	Brand     string    `json:"brand,omitempty"`

	// Métricas derivadas da população de leads da campanha.
	// Nunca editadas à mão: sempre recalculadas após mutação de lead.
	TotalLeads       int     `json:"total_leads"`
	OpenRate         float64 `json:"open_rate"`
	ConversionRate   float64 `json:"conversion_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`
}

func (c *Campaign) Validate() error {
	if c.Name == "" {
		return errors.New("campaign name is required")
	}
	return nil
}

type CampaignMetrics struct {
	TotalLeads       int     `json:"total_leads"`
	OpenRate         float64 `json:"open_rate"`
	ConversionRate   float64 `json:"conversion_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`
}

// DeriveMetrics calcula as taxas a partir das contagens. Determinística:
// mesmas contagens, mesmas taxas. Denominador zero vira 0, não NaN.
// ClickThroughRate é conversões entre quem abriu (nome histórico).
func DeriveMetrics(total, opened, converted int) CampaignMetrics {
	m := CampaignMetrics{TotalLeads: total}
	if total > 0 {
		m.OpenRate = Round2(float64(opened) / float64(total) * 100)
		m.ConversionRate = Round2(float64(converted) / float64(total) * 100)
	}
	if opened > 0 {
		m.ClickThroughRate = Round2(float64(converted) / float64(opened) * 100)
	}
	return m
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CampaignFilter filtra a listagem de campanhas. Zero value = sem filtro.
type CampaignFilter struct {
	Agency    string
	Buyer     string
	Brand     string
	Name      string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

type CampaignFilterValues struct {
	Agencies []string `json:"agencies"`
	Buyers   []string `json:"buyers"`
	Brands   []string `json:"brands"`
}

type CampaignAverages struct {
	AvgOpenRate         float64 `json:"avg_open_rate"`
	AvgConversionRate   float64 `json:"avg_conversion_rate"`
	AvgClickThroughRate float64 `json:"avg_click_through_rate"`
	TotalLeads          int     `json:"total_leads"`
}

// CampaignRepositoryInterface é o contrato do Campaign Store. FindByID
// devolve (nil, nil) quando a campanha não existe.
type CampaignRepositoryInterface interface {
	FindByID(ctx context.Context, id int) (*Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]Campaign, error)
	Insert(ctx context.Context, campaign *Campaign) error
	Update(ctx context.Context, campaign *Campaign) error
	Delete(ctx context.Context, id int) error
	UpdateMetrics(ctx context.Context, id int, metrics CampaignMetrics) error
	FilterValues(ctx context.Context) (*CampaignFilterValues, error)
	Averages(ctx context.Context) (*CampaignAverages, error)
}
