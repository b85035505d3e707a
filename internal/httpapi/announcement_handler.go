package httpapi

import (
	"net/http"

	"dormhub/internal/service"

	"go.uber.org/zap"
)

type AnnouncementHandler struct {
	announcementService service.AnnouncementService
	logger              *zap.Logger
}

func NewAnnouncementHandler(announcementService service.AnnouncementService, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService, logger: logger}
}

func (h *AnnouncementHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcementService.ListAnnouncements(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(announcements))
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	announcement, err := h.announcementService.CreateAnnouncement(r.Context(), body.Title, body.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(announcement))
}
