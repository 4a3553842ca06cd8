package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/programme-lv/writing/auth"
	"github.com/programme-lv/writing/writing/domain"
	writinghttp "github.com/programme-lv/writing/writing/http"
	"github.com/programme-lv/writing/writing/memrepo"
	"github.com/programme-lv/writing/writing/srvc"
	"github.com/stretchr/testify/require"
)

var jwtKey = []byte("test")

const listPath = "/api/writing/submissions"

func newRouter(repo srvc.SubmRepo) http.Handler {
	h := writinghttp.NewWritingHttpHandler(srvc.NewWritingSrvc(repo))
	r := chi.NewRouter()
	h.RegisterRoutes(r, jwtKey)
	return r
}

func newListReq(t *testing.T, userID string, rawQuery string) *http.Request {
	t.Helper()
	target := listPath
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		token, err := auth.GenerateJWT(userID, "", time.Hour, jwtKey)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func listAs(t *testing.T, handler http.Handler, userID string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(handler, newListReq(t, userID, ""))
}

type listBody struct {
	Submissions []map[string]json.RawMessage `json:"submissions"`
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listBody {
	t.Helper()
	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seed(t *testing.T, repo *memrepo.MemSubmRepo, userID string, createdAt time.Time, topic string) domain.WritingSubm {
	t.Helper()
	s := domain.WritingSubm{
		UUID:       uuid.New(),
		UserID:     userID,
		CreatedAt:  createdAt,
		Difficulty: "medium",
		Topic:      topic,
		PromptText: "Write about " + topic,
		UserText:   "some text about " + topic,
		WordCount:  domain.CountWords("some text about " + topic),
		Evaluation: json.RawMessage(`{"score":8,"feedback":["good"]}`),
	}
	require.NoError(t, repo.StoreSubm(context.Background(), s))
	return s
}
