package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kanak0604/market-campaigns/internal/entity"
	"github.com/kanak0604/market-campaigns/internal/usecase"
)

type CampaignHandler struct {
	campaignRepo entity.CampaignRepositoryInterface
	metricsUC    *usecase.RecomputeCampaignMetricsUseCase
}

func NewCampaignHandler(campaignRepo entity.CampaignRepositoryInterface, metricsUC *usecase.RecomputeCampaignMetricsUseCase) *CampaignHandler {
	return &CampaignHandler{
		campaignRepo: campaignRepo,
		metricsUC:    metricsUC,
	}
}

// GetAll lista campanhas com filtros de query string. As métricas saem
// derivadas ao vivo da população de leads, não do valor gravado.
func (h *CampaignHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := entity.CampaignFilter{
		Agency: r.URL.Query().Get("agency"),
		Buyer:  r.URL.Query().Get("buyer"),
		Brand:  r.URL.Query().Get("brand"),
		Name:   r.URL.Query().Get("campaignName"),
		Status: r.URL.Query().Get("status"),
	}
	if t, ok := parseDate(r.URL.Query().Get("startDate")); ok {
		filter.StartDate = &t
	}
	if t, ok := parseDate(r.URL.Query().Get("endDate")); ok {
		filter.EndDate = &t
	}

	campaigns, err := h.campaignRepo.List(r.Context(), filter)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to list campaigns")
		return
	}

	if len(campaigns) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "No campaigns found",
		})
		return
	}

	for i := range campaigns {
		metrics, err := h.metricsUC.Compute(r.Context(), campaigns[i].ID)
		if err != nil {
			writeUseCaseError(w, err)
			return
		}
		applyMetrics(&campaigns[i], metrics)
	}

	writeSuccess(w, "", campaigns)
}

func (h *CampaignHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid campaign id")
		return
	}

	campaign, err := h.campaignRepo.FindByID(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to load campaign")
		return
	}
	if campaign == nil {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeCampaignNotFound, "Campaign not found")
		return
	}

	metrics, err := h.metricsUC.Compute(r.Context(), campaign.ID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	applyMetrics(campaign, metrics)

	writeSuccess(w, "", campaign)
}

func (h *CampaignHandler) Add(w http.ResponseWriter, r *http.Request) {
	var campaign entity.Campaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid campaign data")
		return
	}

	if err := campaign.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Campaign name is required")
		return
	}
	if campaign.Status == "" {
		campaign.Status = "Active"
	}

	if err := h.campaignRepo.Insert(r.Context(), &campaign); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to add campaign")
		return
	}

	writeSuccess(w, "Campaign added successfully", campaign)
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid campaign id")
		return
	}

	existing, err := h.campaignRepo.FindByID(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to load campaign")
		return
	}
	if existing == nil {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeCampaignNotFound, "Campaign not found")
		return
	}

	var updated entity.Campaign
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid campaign data")
		return
	}

	existing.Name = updated.Name
	existing.StartDate = updated.StartDate
	existing.EndDate = updated.EndDate
	existing.Status = updated.Status
	existing.Agency = updated.Agency
	existing.Buyer = updated.Buyer
	existing.Brand = updated.Brand

	if err := h.campaignRepo.Update(r.Context(), existing); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to update campaign")
		return
	}

	writeSuccess(w, "Campaign updated successfully", nil)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid campaign id")
		return
	}

	existing, err := h.campaignRepo.FindByID(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to load campaign")
		return
	}
	if existing == nil {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeCampaignNotFound, "Campaign not found")
		return
	}

	if err := h.campaignRepo.Delete(r.Context(), id); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to delete campaign")
		return
	}

	writeSuccess(w, "Campaign deleted successfully", nil)
}

func (h *CampaignHandler) Filters(w http.ResponseWriter, r *http.Request) {
	values, err := h.campaignRepo.FilterValues(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to load filters")
		return
	}

	writeSuccess(w, "", values)
}

func (h *CampaignHandler) Averages(w http.ResponseWriter, r *http.Request) {
	averages, err := h.campaignRepo.Averages(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to load averages")
		return
	}
	if averages == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "No campaigns found",
		})
		return
	}

	writeSuccess(w, "", averages)
}

func applyMetrics(c *entity.Campaign, m *entity.CampaignMetrics) {
	c.TotalLeads = m.TotalLeads
	c.OpenRate = m.OpenRate
	c.ConversionRate = m.ConversionRate
	c.ClickThroughRate = m.ClickThroughRate
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
