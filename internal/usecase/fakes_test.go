package usecase_test

import (
	"context"
	"strings"
	"sync"

	"github.com/kanak0604/market-campaigns/internal/entity"
	"github.com/kanak0604/market-campaigns/internal/infra/queue"
)

// fakeLeadStore guarda leads em memória com as mesmas regras do repositório
// real: email único (case-insensitive), ID da sequência quando vem zerado.
type fakeLeadStore struct {
	mu     sync.Mutex
	leads  map[int]entity.Lead
	nextID int
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{leads: map[int]entity.Lead{}, nextID: 1}
}

func (s *fakeLeadStore) FindByID(ctx context.Context, id int) (*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lead, ok := s.leads[id]; ok {
		copied := lead
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeLeadStore) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lead := range s.leads {
		if strings.EqualFold(lead.Email, strings.TrimSpace(email)) {
			copied := lead
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeLeadStore) Insert(ctx context.Context, lead *entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.leads {
		if strings.EqualFold(existing.Email, lead.Email) {
			return entity.ErrEmailAlreadyExists
		}
	}
	if lead.ID == 0 {
		for {
			if _, taken := s.leads[s.nextID]; !taken {
				break
			}
			s.nextID++
		}
		lead.ID = s.nextID
		s.nextID++
	} else if _, taken := s.leads[lead.ID]; taken {
		return entity.ErrLeadIDAlreadyExists
	}
	s.leads[lead.ID] = *lead
	return nil
}

func (s *fakeLeadStore) Update(ctx context.Context, lead *entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = *lead
	return nil
}

func (s *fakeLeadStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.leads, id)
	return nil
}

func (s *fakeLeadStore) CountByCampaign(ctx context.Context, campaignID int, pred entity.LeadPredicate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, lead := range s.leads {
		if lead.CampaignAssignment == nil || *lead.CampaignAssignment != campaignID {
			continue
		}
		switch pred {
		case entity.OpenedEmailOnly:
			if !lead.HasOpenedEmail {
				continue
			}
		case entity.ConvertedOnly:
			if !lead.HasConverted {
				continue
			}
		}
		count++
	}
	return count, nil
}

func (s *fakeLeadStore) SearchByKeys(ctx context.Context, emails []string, ids []int) ([]entity.LeadSearchRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := map[int]struct{}{}
	for _, lead := range s.leads {
		for _, email := range emails {
			if strings.EqualFold(lead.Email, email) {
				matched[lead.ID] = struct{}{}
			}
		}
		for _, id := range ids {
			if lead.ID == id {
				matched[lead.ID] = struct{}{}
			}
		}
	}
	var rows []entity.LeadSearchRow
	for id := range matched {
		lead := s.leads[id]
		rows = append(rows, entity.LeadSearchRow{
			LeadID:         lead.ID,
			Name:           lead.Name,
			Email:          lead.Email,
			PhoneNumber:    lead.PhoneNumber,
			CampaignName:   "—",
			Segment:        lead.Segment,
			HasOpenedEmail: lead.HasOpenedEmail,
			HasConverted:   lead.HasConverted,
		})
	}
	return rows, nil
}

func (s *fakeLeadStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.leads)
}

// fakeCampaignStore registra as escritas de métricas para inspeção.
type fakeCampaignStore struct {
	mu        sync.Mutex
	campaigns map[int]entity.Campaign
	written   map[int][]entity.CampaignMetrics
}

func newFakeCampaignStore(campaigns ...entity.Campaign) *fakeCampaignStore {
	s := &fakeCampaignStore{
		campaigns: map[int]entity.Campaign{},
		written:   map[int][]entity.CampaignMetrics{},
	}
	for _, c := range campaigns {
		s.campaigns[c.ID] = c
	}
	return s
}

func (s *fakeCampaignStore) FindByID(ctx context.Context, id int) (*entity.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.campaigns[id]; ok {
		copied := c
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeCampaignStore) UpdateMetrics(ctx context.Context, id int, m entity.CampaignMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.campaigns[id]
	c.TotalLeads = m.TotalLeads
	c.OpenRate = m.OpenRate
	c.ConversionRate = m.ConversionRate
	c.ClickThroughRate = m.ClickThroughRate
	s.campaigns[id] = c
	s.written[id] = append(s.written[id], m)
	return nil
}

func (s *fakeCampaignStore) writes(id int) []entity.CampaignMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written[id]
}

// fakeProducer coleta os eventos publicados.
type fakeProducer struct {
	mu     sync.Mutex
	events []queue.LeadWelcomePayload
}

func (p *fakeProducer) PublishLeadWelcome(ctx context.Context, payload queue.LeadWelcomePayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return nil
}
