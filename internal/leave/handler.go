package leave

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/hrportal/leave-management/internal"
	"github.com/hrportal/leave-management/internal/auth"
	"github.com/hrportal/leave-management/internal/transport"
	"github.com/hrportal/leave-management/internal/user"
	"github.com/hrportal/leave-management/pkg/logger"
)

type ServiceAPI interface {
	Submit(actor *user.User, dto CreateLeaveRequestDTO) (*LeaveRequest, error)
	Approve(requestID string) error
	Reject(requestID, rejectionReason string) error
	GetByID(requestID string) (*LeaveRequest, error)
	ListAll() ([]*LeaveRequest, error)
	ListForUser(userID string) ([]*LeaveRequest, error)
	ListPending() ([]*LeaveRequest, error)
	ListHistory() ([]*LeaveRequest, error)
	Stats() (*StatsResponse, error)
	MonthlyApprovedCounts() ([]MonthlyCount, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.Logger.Error("CreateLeaveRequest: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateLeaveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateLeaveRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Submit(actor, dto)
	if err != nil {
		h.Logger.Error("CreateLeaveRequest: service error", "error", err, "user_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateLeaveRequest: leave request submitted",
		"request_id", req.ID,
		"user_id", actor.ID,
		"leave_type", req.LeaveType)

	h.WriteJSON(w, http.StatusCreated, req)
}

// ListLeaveRequests returns every request for admins and the caller's own
// requests for employees.
func (h *Handler) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.Logger.Error("ListLeaveRequests: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var (
		requests []*LeaveRequest
		err      error
	)
	if actor.IsAdmin() {
		requests, err = h.Service.ListAll()
	} else {
		requests, err = h.Service.ListForUser(actor.ID)
	}
	if err != nil {
		h.Logger.Error("ListLeaveRequests: service error", "error", err, "user_id", actor.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list leave requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"leave_requests": requests,
	})
}

func (h *Handler) GetLeaveRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	req, err := h.Service.GetByID(requestID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if !actor.IsAdmin() && req.UserID != actor.ID {
		h.Logger.Warn("GetLeaveRequest: access denied", "request_id", requestID, "user_id", actor.ID)
		h.HandleServiceError(w, internal.ErrUnauthorizedAccess)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListPending()
	if err != nil {
		h.Logger.Error("ListPending: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list pending requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"leave_requests": requests,
	})
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListHistory()
	if err != nil {
		h.Logger.Error("ListHistory: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list request history")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"leave_requests": requests,
	})
}

func (h *Handler) ApproveLeaveRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if err := h.Service.Approve(requestID); err != nil {
		h.Logger.Error("ApproveLeaveRequest: service error", "error", err, "request_id", requestID, "admin_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApproveLeaveRequest: leave request approved", "request_id", requestID, "admin_id", actor.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": StatusApproved})
}

func (h *Handler) RejectLeaveRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")

	var dto RejectLeaveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RejectLeaveRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.Logger.Error("RejectLeaveRequest: validation error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Reject(requestID, dto.Reason); err != nil {
		h.Logger.Error("RejectLeaveRequest: service error", "error", err, "request_id", requestID, "admin_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RejectLeaveRequest: leave request rejected",
		"request_id", requestID,
		"admin_id", actor.ID,
		"reason", dto.Reason)

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": StatusRejected})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats()
	if err != nil {
		h.Logger.Error("GetStats: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	series, err := h.Service.MonthlyApprovedCounts()
	if err != nil {
		h.Logger.Error("GetMonthlyStats: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute monthly stats")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"series": series,
	})
}

// ListLeaveTypes is the public enumeration of leave categories.
func (h *Handler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"leave_types": AllLeaveTypes,
	})
}
