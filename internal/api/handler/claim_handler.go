package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cmcs_backend/internal/api/middleware"
	"cmcs_backend/internal/app/service"
	"cmcs_backend/internal/common"
	"cmcs_backend/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// maxMultipartMemory bounds the in-memory part of a multipart parse; larger
// uploads spill to temp files. The 5 MiB business limit is enforced by the
// submission validator, not here.
const maxMultipartMemory = 8 << 20

type ClaimHandler struct {
	claimService *service.ClaimService
	statsService *service.StatsService
}

func NewClaimHandler(cs *service.ClaimService, ss *service.StatsService) *ClaimHandler {
	return &ClaimHandler{claimService: cs, statsService: ss}
}

func (h *ClaimHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator) // All claim routes require auth

	r.Group(func(lecturer chi.Router) {
		lecturer.Use(middleware.RequireAnyRole(model.RoleLecturer))
		lecturer.Post("/", h.submitClaim)
		lecturer.Get("/me", h.listOwnClaims)
		lecturer.Get("/me/summary", h.lecturerSummary)
		lecturer.Get("/me/report", h.lecturerReport)
	})

	r.Group(func(reviewer chi.Router) {
		reviewer.Use(middleware.RequireAnyRole(model.RoleCoordinator, model.RoleAdmin, model.RoleHR))
		reviewer.Get("/", h.listAllClaims)
		reviewer.Post("/{claimID}/status", h.updateStatus)
	})

	r.Get("/{claimID}", h.getClaim)
}

func (h *ClaimHandler) submitClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	hours, err := strconv.ParseFloat(r.FormValue("hours_worked"), 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Hours worked must be a number.")
		return
	}

	req := service.SubmitClaimRequest{
		HoursWorked:     hours,
		Description:     r.FormValue("description"),
		AdditionalNotes: r.FormValue("additional_notes"),
	}

	file, header, err := r.FormFile("document")
	if err == nil {
		defer file.Close()
		req.Document = &service.DocumentUpload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		}
	} else if err != http.ErrMissingFile {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid document upload: "+err.Error())
		return
	}

	claim, err := h.claimService.SubmitClaim(r.Context(), userID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, claim)
}

func (h *ClaimHandler) listOwnClaims(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	claims, err := h.claimService.ListOwnClaims(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, claims)
}

func (h *ClaimHandler) lecturerSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	summary, err := h.claimService.GetLecturerSummary(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, summary)
}

func (h *ClaimHandler) lecturerReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	report, err := h.statsService.GetLecturerReport(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, report)
}

func (h *ClaimHandler) getClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	claimID := chi.URLParam(r, "claimID")

	reviewer := middleware.HasRole(r.Context(), model.RoleCoordinator) ||
		middleware.HasRole(r.Context(), model.RoleAdmin) ||
		middleware.HasRole(r.Context(), model.RoleHR)

	claim, err := h.claimService.GetClaim(r.Context(), claimID, userID, reviewer)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, claim)
}

func (h *ClaimHandler) listAllClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claimService.ListAllClaims(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, claims)
}

type updateStatusRequest struct {
	Status model.ClaimStatus `json:"status"`
}

func (h *ClaimHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	claimID := chi.URLParam(r, "claimID")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.claimService.UpdateStatus(r.Context(), claimID, req.Status); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
