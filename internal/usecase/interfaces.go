package usecase

import (
	"context"

	"github.com/kanak0604/market-campaigns/internal/entity"
	"github.com/kanak0604/market-campaigns/internal/infra/queue"
)

// Visões estreitas dos stores, só com o que cada usecase consome.

type LeadStore interface {
	FindByID(ctx context.Context, id int) (*entity.Lead, error)
	FindByEmail(ctx context.Context, email string) (*entity.Lead, error)
	Insert(ctx context.Context, lead *entity.Lead) error
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id int) error
}

type LeadCounter interface {
	CountByCampaign(ctx context.Context, campaignID int, pred entity.LeadPredicate) (int, error)
}

type LeadSearcher interface {
	SearchByKeys(ctx context.Context, emails []string, ids []int) ([]entity.LeadSearchRow, error)
}

type CampaignFinder interface {
	FindByID(ctx context.Context, id int) (*entity.Campaign, error)
}

type CampaignMetricsWriter interface {
	FindByID(ctx context.Context, id int) (*entity.Campaign, error)
	UpdateMetrics(ctx context.Context, id int, metrics entity.CampaignMetrics) error
}

type QueueProducerInterface interface {
	PublishLeadWelcome(ctx context.Context, payload queue.LeadWelcomePayload) error
}
