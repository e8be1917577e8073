package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devchat/domain"
	"devchat/errors"
	"devchat/mocks"
	"devchat/observability"
	"devchat/services"

	"github.com/go-chi/chi/v5"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := prometheus.NewRegistry()
	svc := services.NewChatLogService(domain.NewMessageLog(), observability.NewMetrics(registry), log)

	r := chi.NewRouter()
	NewHandler(log, svc, registry).Mount(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	request, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func TestHandler_Write_Then_Read(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t)

	// Given two messages posted to the log
	resp, _ := do(t, http.MethodPost, srv.URL+"/chat", "hello ")
	req.Equal(http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, http.MethodPost, srv.URL+"/chat", "world")
	req.Equal(http.StatusNoContent, resp.StatusCode)

	// When the log is read
	resp, body := do(t, http.MethodGet, srv.URL+"/chat", "")

	// Then the consolidated bytes are returned
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("application/octet-stream", resp.Header.Get("Content-Type"))
	req.Equal("hello world", string(body))

	// And a window can be selected
	resp, body = do(t, http.MethodGet, srv.URL+"/chat?offset=6&limit=3", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("wor", string(body))
}

func TestHandler_Empty_Log_Answers_No_Content(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/chat", "")

	req.Equal(http.StatusNoContent, resp.StatusCode)
	req.Empty(body)
}

func TestHandler_Rejects_Bad_Input(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{name: "write with offset", method: http.MethodPost, path: "/chat?offset=3", body: "x", code: http.StatusBadRequest},
		{name: "malformed offset", method: http.MethodGet, path: "/chat?offset=abc", code: http.StatusBadRequest},
		{name: "malformed limit", method: http.MethodGet, path: "/chat?limit=x", code: http.StatusBadRequest},
		{name: "unsupported command", method: http.MethodPost, path: "/chat/control/reboot", code: http.StatusNotImplemented},
		{name: "unsupported numeric command", method: http.MethodPost, path: "/chat/control/42", code: http.StatusNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			resp, body := do(t, tt.method, srv.URL+tt.path, tt.body)

			req.Equal(tt.code, resp.StatusCode)
			var e ErrorResponse
			req.NoError(json.Unmarshal(body, &e))
			req.NotEmpty(e.Error)
		})
	}
}

func TestHandler_Clear_And_Control(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t)

	do(t, http.MethodPost, srv.URL+"/chat", "abc")
	resp, _ := do(t, http.MethodDelete, srv.URL+"/chat", "")
	req.Equal(http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, http.MethodGet, srv.URL+"/chat", "")
	req.Equal(http.StatusNoContent, resp.StatusCode)

	do(t, http.MethodPost, srv.URL+"/chat", "abc")
	resp, _ = do(t, http.MethodPost, srv.URL+"/chat/control/clear", "")
	req.Equal(http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, http.MethodGet, srv.URL+"/chat", "")
	req.Equal(http.StatusNoContent, resp.StatusCode)
}

func TestHandler_Stats(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/chat", strings.Repeat("a", 300))

	resp, body := do(t, http.MethodGet, srv.URL+"/chat/stats", "")

	req.Equal(http.StatusOK, resp.StatusCode)
	var st StatsResponse
	req.NoError(json.Unmarshal(body, &st))
	req.Equal("non-empty", st.State)
	req.Equal(1, st.Count)
	req.Equal(domain.MaxMessageLen, st.Bytes)
	req.Equal(uint64(1), st.Truncated)
}

func TestHandler_Health_And_Metrics(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/chat", "abc")

	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("ok", string(body))

	resp, body = do(t, http.MethodGet, srv.URL+"/metrics", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Contains(string(body), "devchat_appends_total 1")
}

func TestHandler_Opens_And_Closes_Around_Each_Request(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := mocks.NewMockIChatLogService(ctrl)

	gomock.InOrder(
		svc.EXPECT().Open(gomock.Any()).Return(nil),
		svc.EXPECT().Read(gomock.Any(), int64(0), -1).Return(nil, errors.ErrNoContent),
		svc.EXPECT().Close(gomock.Any()).Return(nil),
	)

	r := chi.NewRouter()
	NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), svc, nil).Mount(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))

	req.Equal(http.StatusNoContent, rec.Code)
}
