package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/concentria/internal/adapters/handler/http"
	"github.com/comitanigiacomo/concentria/internal/adapters/render"
	"github.com/comitanigiacomo/concentria/internal/adapters/repository"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
	"github.com/comitanigiacomo/concentria/internal/core/services"
)

const testSecret = "handler-test-secret"

type testServer struct {
	router *gin.Engine
	repo   *repository.InMemoryEntryRepository
	tokens *services.TokenService
}

func fixture() []domain.SessionEntry {
	return []domain.SessionEntry{
		{Date: "30-12-24", Clock: "09:00", Title: "Math", Duration: 100, Hardness: 5},
		{Date: "06-01-25", Clock: "09:00", Title: "Math", Duration: 60, Hardness: 6},
		{Date: "06-01-25", Clock: "08:00", Title: "Read", Duration: 30},
		{Date: "07-01-25", Clock: "09:00", Title: "Code", Duration: 90, Hardness: 8},
		{Date: "08-01-25", Clock: "09:00", Title: "Code", Duration: 10, Hardness: 2},
		{Date: "20-01-25", Clock: "21:00", Title: "Math", Duration: 40, Hardness: 10},
	}
}

func newTestServer(t *testing.T, secret string, seed ...domain.SessionEntry) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryEntryRepository(seed...)
	entries := services.NewEntryService(repo)
	require.NoError(t, entries.LoadAll(context.Background()))

	dashboard := services.NewDashboardService(repo)
	stats := services.NewStatsService(repo)
	tokens := services.NewTokenService(secret, "concentria-test", time.Hour)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		DashboardHandler: adapterHTTP.NewDashboardHandler(entries, dashboard, stats, render.NewEChartsSink()),
		EntryHandler:     adapterHTTP.NewEntryHandler(entries),
		ExportHandler:    adapterHTTP.NewExportHandler(entries, dashboard),
		TokenService:     tokens,
		StartTime:        time.Now(),
	})

	return &testServer{router: router, repo: repo, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	tok, err := s.tokens.GenerateToken("test-device")
	require.NoError(t, err)
	return tok
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
