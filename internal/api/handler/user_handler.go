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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(us *service.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAnyRole(model.RoleAdmin, model.RoleHR))
		admin.Get("/", h.listUsers)
		admin.Get("/{userID}", h.getUser)
		admin.Put("/{userID}/roles", h.updateRoles)
	})

	// Pay rates are HR's alone.
	r.Group(func(hr chi.Router) {
		hr.Use(middleware.RequireAnyRole(model.RoleHR))
		hr.Put("/{userID}/rate", h.updateRate)
	})
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

type updateRateRequest struct {
	HourlyRate json.Number `json:"hourly_rate"`
}

func (h *UserHandler) updateRate(w http.ResponseWriter, r *http.Request) {
	var req updateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	rate, err := strconv.ParseFloat(req.HourlyRate.String(), 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Hourly rate must be a number.")
		return
	}

	if err := h.userService.UpdateHourlyRate(r.Context(), chi.URLParam(r, "userID"), rate); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateRolesRequest struct {
	Roles []string `json:"roles"`
}

func (h *UserHandler) updateRoles(w http.ResponseWriter, r *http.Request) {
	var req updateRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.userService.UpdateRoles(r.Context(), chi.URLParam(r, "userID"), req.Roles); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
