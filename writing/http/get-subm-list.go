package http

import (
	"encoding/json"
	"net/http"

	"github.com/programme-lv/writing/httpjson"
	"github.com/programme-lv/writing/logger"
	"github.com/programme-lv/writing/writing/srvc"
)

const fetchErrorMsg = LogTag + " error fetching submissions"

// ListSubmissions serves GET /api/writing/submissions for the
// authenticated user. Nothing from the request besides the verified
// identity is read.
func (h *WritingHttpHandler) ListSubmissions(w http.ResponseWriter, r *http.Request, userID string) {
	log := logger.FromContext(r.Context())

	subms, err := h.writingSrvc.ListUserSubms(r.Context(), userID)
	if err != nil {
		httpjson.HandleError(log, w, fetchErrorMsg, err)
		return
	}

	body, err := json.Marshal(ListSubmissionsResponse{Submissions: MapSubmViews(subms)})
	if err != nil {
		httpjson.HandleError(log, w, fetchErrorMsg, srvc.ErrFetchSubmsFailed().SetDebug(err))
		return
	}

	log.Debug("returning writing submissions", "count", len(subms))
	httpjson.WriteRawJson(w, http.StatusOK, body)
}
