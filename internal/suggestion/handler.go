package suggestion

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hrportal/leave-management/internal/transport"
	"github.com/hrportal/leave-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) SuggestRequestReason(w http.ResponseWriter, r *http.Request) {
	var dto RequestReasonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	text := h.Service.RequestReason(r.Context(), dto)
	h.WriteJSON(w, http.StatusOK, SuggestionResponse{Text: text})
}

func (h *Handler) SuggestRejectionReason(w http.ResponseWriter, r *http.Request) {
	var dto RejectionReasonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	text := h.Service.RejectionReason(r.Context(), dto)
	h.WriteJSON(w, http.StatusOK, SuggestionResponse{Text: text})
}
