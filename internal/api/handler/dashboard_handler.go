package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cmcs_backend/internal/api/middleware"
	"cmcs_backend/internal/app/service"
	"cmcs_backend/internal/common"
	"cmcs_backend/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	statsService  *service.StatsService
	reportService *service.ReportService
}

func NewDashboardHandler(ss *service.StatsService, rs *service.ReportService) *DashboardHandler {
	return &DashboardHandler{statsService: ss, reportService: rs}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.RequireAnyRole(model.RoleAdmin, model.RoleHR))

	r.Get("/stats", h.dashboardStats)
	r.Get("/reports/approved", h.exportApprovedClaims)
}

func (h *DashboardHandler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetDashboardStats(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

// exportApprovedClaims streams the monthly payout report as a PDF download.
func (h *DashboardHandler) exportApprovedClaims(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Year must be a number.")
		return
	}
	monthNum, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		common.RespondWithError(w, http.StatusBadRequest, "Month must be a number between 1 and 12.")
		return
	}

	pdfBytes, filename, err := h.reportService.ExportApprovedClaims(r.Context(), year, time.Month(monthNum))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
