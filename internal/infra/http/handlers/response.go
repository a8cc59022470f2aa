package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kanak0604/market-campaigns/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, message string, data interface{}) {
	resp := map[string]interface{}{"success": true}
	if message != "" {
		resp["message"] = message
	}
	if data != nil {
		resp["data"] = data
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"code":    code,
		"message": message,
	})
}

// writeUseCaseError mapeia o código do erro de domínio para o status HTTP:
// validação 400, conflito 409, não encontrado 404, resto 500.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusInternalServerError
		switch domainErr.Code {
		case usecase.CodeValidation:
			status = http.StatusBadRequest
		case usecase.CodeDuplicateLeadID, usecase.CodeDuplicateEmail:
			status = http.StatusConflict
		case usecase.CodeLeadNotFound, usecase.CodeCampaignNotFound:
			status = http.StatusNotFound
		}
		writeErrorResponse(w, status, domainErr.Code, domainErr.Message)
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		writeErrorResponse(w, http.StatusInternalServerError, techErr.Code, "Internal Server Error")
		return
	}

	writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "Internal Server Error")
}
