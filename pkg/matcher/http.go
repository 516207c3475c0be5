package matcher

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pharmakart/platform/pkg/common/logger"
	"github.com/pharmakart/platform/pkg/common/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/v1/match", h.handleMatch).Methods(http.MethodPost)
}

func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req models.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(req.Mentions) == 0 {
		http.Error(w, "at least one mention is required", http.StatusBadRequest)
		return
	}
	for _, mention := range req.Mentions {
		if strings.TrimSpace(mention.BrandText) == "" {
			http.Error(w, "mention brand_text is required", http.StatusBadRequest)
			return
		}
	}

	resp, err := h.service.MatchAll(r.Context(), req)
	if err != nil {
		logger.Log.WithError(err).Error("failed to match mentions")
		http.Error(w, "failed to match mentions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("failed to encode response")
	}
}
