package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type AnalyticsHandler struct {
	UC *usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{UC: uc}
}

// Dashboard (GET /)
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.Dashboard()
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Analytics (GET /analytics)
func (h *AnalyticsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.Analytics()
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
