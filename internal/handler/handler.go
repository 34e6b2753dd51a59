package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/hi4requency/fynstra/internal/fhi"
	"github.com/hi4requency/fynstra/internal/goals"
	"github.com/hi4requency/fynstra/internal/models"
	"github.com/hi4requency/fynstra/internal/roadmap"
	"github.com/hi4requency/fynstra/internal/scenario"
	"github.com/hi4requency/fynstra/internal/service"
	"github.com/hi4requency/fynstra/internal/utils/email"
)

// Handler wires HTTP requests to the service layer.
type Handler struct {
	svc      *service.Service
	sender   *email.Sender
	validate *validator.Validate
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, sender *email.Sender) *Handler {
	return &Handler{
		svc:      svc,
		sender:   sender,
		validate: validator.New(),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondDomainError maps core refusals to client errors.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fhi.ErrMissingRequiredInput),
		errors.Is(err, roadmap.ErrInvalidDateRange),
		errors.Is(err, roadmap.ErrEmptySchedule):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, goals.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

type snapshotRequest struct {
	Age              int     `json:"age" validate:"omitempty,gte=18"`
	MonthlyIncome    float64 `json:"monthly_income" validate:"gte=0"`
	MonthlyExpenses  float64 `json:"monthly_expenses" validate:"gte=0"`
	MonthlySavings   float64 `json:"monthly_savings" validate:"gte=0"`
	MonthlyDebt      float64 `json:"monthly_debt" validate:"gte=0"`
	TotalInvestments float64 `json:"total_investments" validate:"gte=0"`
	NetWorth         float64 `json:"net_worth" validate:"gte=0"`
	EmergencyFund    float64 `json:"emergency_fund" validate:"gte=0"`
}

func (r snapshotRequest) snapshot() models.FinancialSnapshot {
	return models.FinancialSnapshot{
		Age:              r.Age,
		MonthlyIncome:    r.MonthlyIncome,
		MonthlyExpenses:  r.MonthlyExpenses,
		MonthlySavings:   r.MonthlySavings,
		MonthlyDebt:      r.MonthlyDebt,
		TotalInvestments: r.TotalInvestments,
		NetWorth:         r.NetWorth,
		EmergencyFund:    r.EmergencyFund,
	}
}

// CheckFinancialHealth scores a submitted snapshot and persists it
func (h *Handler) CheckFinancialHealth(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if !h.decode(w, r, &req) {
		return
	}

	check, err := h.svc.CheckFinancialHealth(r.Context(), req.snapshot())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, check)
}

// GetSnapshot returns the caller's stored snapshot
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.svc.Snapshot(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// PutSnapshot stores the caller's snapshot without scoring it
func (h *Handler) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.svc.SaveSnapshot(r.Context(), req.snapshot()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req.snapshot())
}

type scenarioRequest struct {
	Preset string         `json:"preset"`
	Delta  scenario.Delta `json:"delta"`
}

// RunScenario recomputes the FHI under a what-if delta
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmp, err := h.svc.RunScenario(r.Context(), req.Preset, req.Delta)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cmp)
}

// ListScenarioPresets returns the built-in quick scenarios
func (h *Handler) ListScenarioPresets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, scenario.Presets())
}

// CreateGoal adds a goal with default values for the caller
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.CreateGoal(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

// ListGoals returns the caller's goals
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListGoals(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetGoal returns one goal
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Goal(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// UpdateGoal mutates goal fields in place
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var u goals.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if u.GoalAmount != nil && *u.GoalAmount <= 0 {
		respondError(w, http.StatusBadRequest, "goal_amount must be positive")
		return
	}

	g, err := h.svc.UpdateGoal(r.Context(), mux.Vars(r)["id"], u)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// DeleteGoal removes a goal
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGoal(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type monthToggleRequest struct {
	Checked bool `json:"checked"`
}

// ToggleGoalMonth marks a roadmap month as contributed or not
func (h *Handler) ToggleGoalMonth(w http.ResponseWriter, r *http.Request) {
	var req monthToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	g, err := h.svc.SetGoalMonth(r.Context(), vars["id"], vars["month"], req.Checked)
	if err != nil {
		if errors.Is(err, goals.ErrNotFound) {
			respondDomainError(w, err)
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// GoalRoadmap returns a goal's schedule and feasibility status
func (h *Handler) GoalRoadmap(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.GoalStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// DownloadReport renders the text report for download
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.GenerateReport(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+rep.FileName)
	w.Write([]byte(rep.Text))
}

// EmailReport mails the report to the caller's account address
func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.EmailReport(r.Context(), h.sender); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// Health is the liveness probe
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
