package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/programme-lv/writing/auth"
	"github.com/programme-lv/writing/writing/srvc"
)

// LogTag prefixes every log line this handler emits for failed requests.
const LogTag = "[writing-submissions]"

type WritingHttpHandler struct {
	writingSrvc srvc.WritingSrvcClient
}

func NewWritingHttpHandler(writingSrvc srvc.WritingSrvcClient) *WritingHttpHandler {
	return &WritingHttpHandler{writingSrvc: writingSrvc}
}

func (h *WritingHttpHandler) RegisterRoutes(r chi.Router, jwtKey []byte) {
	r.Group(func(r chi.Router) {
		r.Use(auth.GetJwtAuthMiddleware(jwtKey))
		r.Get("/api/writing/submissions", auth.WithUser(h.ListSubmissions))
	})
}
