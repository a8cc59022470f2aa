package usecase

import "github.com/kanak0604/market-campaigns/internal/entity"

// LeadInput é o candidato vindo do chamador, ainda não validado nem
// persistido. LeadID só é considerado no caminho de add individual.
type LeadInput struct {
	LeadID             int    `json:"lead_id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phone_number"`
	CampaignAssignment *int   `json:"campaign_assignment"`
	HasOpenedEmail     bool   `json:"has_opened_email"`
	HasConverted       bool   `json:"has_converted"`
}

type AddLeadOutput struct {
	Lead    *entity.Lead `json:"data"`
	Message string       `json:"message"`
}

type MutateLeadOutput struct {
	Message string `json:"message"`
}

type BulkReconcileSummary struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Rejected  int `json:"rejected"`
	Total     int `json:"total"`
}

type BulkReconcileDetails struct {
	Processed []string `json:"processed"`
	Updated   []string `json:"updated"`
	Rejected  []string `json:"rejected"`
}

type BulkReconcileOutput struct {
	BatchID string               `json:"batch_id"`
	Message string               `json:"message"`
	Summary BulkReconcileSummary `json:"summary"`
	Details BulkReconcileDetails `json:"details"`

	// Campanhas que tiveram métricas recalculadas neste lote.
	RecomputedCampaigns []int `json:"recomputed_campaigns"`
}

type SearchLeadsSummary struct {
	TotalRequested int `json:"total_requested"`
	FoundCount     int `json:"found_count"`
	NotFoundCount  int `json:"not_found_count"`
	InvalidInputs  int `json:"invalid_inputs"`
}

type SearchLeadsOutput struct {
	Summary       SearchLeadsSummary     `json:"summary"`
	Found         []entity.LeadSearchRow `json:"found"`
	NotFound      []string               `json:"not_found"`
	InvalidInputs []string               `json:"invalid_inputs"`
}
