package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kanak0604/market-campaigns/internal/entity"
	"github.com/kanak0604/market-campaigns/internal/infra/http/middleware"
	"github.com/kanak0604/market-campaigns/internal/usecase"
)

type LeadHandler struct {
	leadRepo    entity.LeadRepositoryInterface
	addUC       *usecase.AddLeadUseCase
	updateUC    *usecase.UpdateLeadUseCase
	deleteUC    *usecase.DeleteLeadUseCase
	bulkUC      *usecase.BulkReconcileUseCase
	searchUC    *usecase.SearchLeadsUseCase
	rateLimiter *RateLimiter
}

func NewLeadHandler(
	leadRepo entity.LeadRepositoryInterface,
	addUC *usecase.AddLeadUseCase,
	updateUC *usecase.UpdateLeadUseCase,
	deleteUC *usecase.DeleteLeadUseCase,
	bulkUC *usecase.BulkReconcileUseCase,
	searchUC *usecase.SearchLeadsUseCase,
) *LeadHandler {
	return &LeadHandler{
		leadRepo:    leadRepo,
		addUC:       addUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		bulkUC:      bulkUC,
		searchUC:    searchUC,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 uploads/min por IP
	}
}

func (h *LeadHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadRepo.FindAll(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to list leads")
		return
	}

	if len(leads) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "No leads found",
		})
		return
	}

	writeSuccess(w, "", leads)
}

func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid lead id")
		return
	}

	lead, err := h.leadRepo.FindByID(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Failed to load lead")
		return
	}
	if lead == nil {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeLeadNotFound, "Lead not found")
		return
	}

	writeSuccess(w, "", lead)
}

func (h *LeadHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid lead data")
		return
	}

	output, err := h.addUC.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordLeadCapture("rejected")
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCapture("accepted")
	writeSuccess(w, output.Message, output.Lead)
}

func (h *LeadHandler) BulkUpload(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED",
			"Too many requests. Please try again later.")
		return
	}

	var batch []usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid lead data")
		return
	}

	output, err := h.bulkUC.Execute(r.Context(), batch)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordBulkOutcome("inserted", output.Summary.Processed)
	middleware.RecordBulkOutcome("updated", output.Summary.Updated)
	middleware.RecordBulkOutcome("rejected", output.Summary.Rejected)
	middleware.RecordCampaignRecompute(len(output.RecomputedCampaigns))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  output.Message,
		"batch_id": output.BatchID,
		"summary":  output.Summary,
		"details":  output.Details,
	})
}

func (h *LeadHandler) Search(w http.ResponseWriter, r *http.Request) {
	var terms []string
	if err := json.NewDecoder(r.Body).Decode(&terms); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid search terms")
		return
	}

	output, err := h.searchUC.Execute(r.Context(), terms)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordSearchPartition("found", output.Summary.FoundCount)
	middleware.RecordSearchPartition("not_found", output.Summary.NotFoundCount)
	middleware.RecordSearchPartition("invalid", output.Summary.InvalidInputs)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"summary":        output.Summary,
		"found":          output.Found,
		"not_found":      output.NotFound,
		"invalid_inputs": output.InvalidInputs,
	})
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid lead id")
		return
	}

	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid lead data")
		return
	}

	output, err := h.updateUC.Execute(r.Context(), id, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, output.Message, nil)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid lead id")
		return
	}

	output, err := h.deleteUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, output.Message, nil)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
