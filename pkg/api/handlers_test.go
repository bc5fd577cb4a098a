package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/config"
	"github.com/codeready-toolchain/codegend/pkg/models"
	"github.com/codeready-toolchain/codegend/pkg/queue"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProcessor struct {
	result *models.GenerateResult
	err    error
}

func (p *stubProcessor) Process(_ context.Context, _ models.GenerateRequest) (*models.GenerateResult, error) {
	return p.result, p.err
}

func newTestServer(t *testing.T, processor queue.Processor) (*Server, *queue.Scheduler) {
	t.Helper()
	cfg := &config.Config{Server: config.DefaultServerConfig()}
	sched := queue.NewScheduler(&config.QueueConfig{
		WorkerCount: 1, QueueCapacity: 2, RetentionMaxCount: 10, RetentionMaxAge: time.Hour, SweepInterval: time.Hour,
	}, processor)
	return NewServer(cfg, processor, sched, nil, nil), sched
}

func naturalLanguageBody(product models.Product) []byte {
	body, _ := json.Marshal(map[string]any{
		"product":   product,
		"inputType": "natural-language",
		"input":     map[string]any{"description": "show a list of employees"},
		"options":   map[string]any{"strict_mode": false},
	})
	return body
}

func doRequest(s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestGenerateHandlerSyncSuccess(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{result: &models.GenerateResult{
		Artifacts: models.Artifacts{"xml": "<screen/>"},
		ElapsedMS: 12,
	}})

	rec := doRequest(s, http.MethodPost, "/agent/generate", naturalLanguageBody(models.ProductXFrame5UI))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp syncGenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "<screen/>", resp.Artifacts["xml"])
	assert.Contains(t, resp.Meta.Generator, string(models.ProductXFrame5UI))
}

func TestGenerateHandlerSyncEngineErrorIsStructuredNotHTTPError(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{err: apperrors.New(apperrors.KindLlmUnavailable, "llm backend unreachable")})

	rec := doRequest(s, http.MethodPost, "/agent/generate", naturalLanguageBody(models.ProductXFrame5UI))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp syncGenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "llm backend unreachable", resp.Error)
}

func TestGenerateHandlerRejectsUnknownProduct(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{})
	rec := doRequest(s, http.MethodPost, "/agent/generate", naturalLanguageBody("bogus-product"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateHandlerRejectsMismatchedInputPayload(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{})
	body, _ := json.Marshal(map[string]any{
		"product":   models.ProductXFrame5UI,
		"inputType": "db-schema",
		"input":     map[string]any{"description": "wrong shape for db-schema"},
	})
	rec := doRequest(s, http.MethodPost, "/agent/generate", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateHandlerAsyncSubmitsAndReturnsJobID(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{result: &models.GenerateResult{}})
	rec := doRequest(s, http.MethodPost, "/agent/generate?mode=async", naturalLanguageBody(models.ProductXFrame5UI))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp asyncSubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "queued", resp.Status)
	assert.NotEmpty(t, resp.JobID)
	assert.Equal(t, "/agent/jobs/"+resp.JobID, resp.StatusURL)
}

func TestGenerateHandlerAsyncQueueFullReturns409(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{result: &models.GenerateResult{}})
	// Fill the 2-slot queue's channel manually by submitting directly,
	// bypassing the never-started worker pool so jobs stay queued.
	sched := s.scheduler
	_, err := sched.Submit(models.GenerateRequest{Product: models.ProductXFrame5UI})
	require.NoError(t, err)
	_, err = sched.Submit(models.GenerateRequest{Product: models.ProductXFrame5UI})
	require.NoError(t, err)

	rec := doRequest(s, http.MethodPost, "/agent/generate?mode=async", naturalLanguageBody(models.ProductXFrame5UI))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestJobStatusHandlerNotFound(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{})
	rec := doRequest(s, http.MethodGet, "/agent/jobs/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobStatusHandlerReturnsQueuedSnapshot(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{})
	jobID, err := s.scheduler.Submit(models.GenerateRequest{Product: models.ProductSpringBackend})
	require.NoError(t, err)

	rec := doRequest(s, http.MethodGet, "/agent/jobs/"+jobID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp jobStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, jobID, resp.JobID)
	assert.Equal(t, queue.StatusQueued, resp.Status)
	assert.Equal(t, models.ProductSpringBackend, resp.Product)
}

func TestCancelJobHandlerNotFound(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{})
	rec := doRequest(s, http.MethodPost, "/agent/jobs/does-not-exist/cancel", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelJobHandlerCancelsQueuedJob(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{})
	jobID, err := s.scheduler.Submit(models.GenerateRequest{Product: models.ProductXFrame5UI})
	require.NoError(t, err)

	rec := doRequest(s, http.MethodPost, "/agent/jobs/"+jobID+"/cancel", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	statusRec := doRequest(s, http.MethodGet, "/agent/jobs/"+jobID, nil)
	var resp jobStatusResponse
	require.NoError(t, json.Unmarshal(statusRec.Body.Bytes(), &resp))
	assert.Equal(t, queue.StatusCancelled, resp.Status)
}

func TestHealthHandlerAlwaysReturns200(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{})
	rec := doRequest(s, http.MethodGet, "/agent/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.LlmAvailable)
}

func TestHealthHandlerReportsLlmUnavailableInBodyNotStatus(t *testing.T) {
	cfg := &config.Config{Server: config.DefaultServerConfig()}
	processor := &stubProcessor{}
	sched := queue.NewScheduler(&config.QueueConfig{WorkerCount: 1, QueueCapacity: 1, RetentionMaxAge: time.Hour, SweepInterval: time.Hour}, processor)
	s := NewServer(cfg, processor, sched, func(context.Context) error { return assert.AnError }, nil)

	rec := doRequest(s, http.MethodGet, "/agent/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.LlmAvailable)
}

func TestLivenessHandlerFailsClosedOn503(t *testing.T) {
	cfg := &config.Config{Server: config.DefaultServerConfig()}
	processor := &stubProcessor{}
	sched := queue.NewScheduler(&config.QueueConfig{WorkerCount: 1, QueueCapacity: 1, RetentionMaxAge: time.Hour, SweepInterval: time.Hour}, processor)
	s := NewServer(cfg, processor, sched, nil, func(context.Context) error { return assert.AnError })

	rec := doRequest(s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProductsHandlerListsBothProducts(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{})
	rec := doRequest(s, http.MethodGet, "/agent/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []models.Product{models.ProductXFrame5UI, models.ProductSpringBackend}, resp.Products)
}

func TestSecondaryEndpointsReturn501(t *testing.T) {
	s, _ := newTestServer(t, &stubProcessor{})
	for _, path := range []string{"/agent/review", "/agent/qa"} {
		rec := doRequest(s, http.MethodPost, path, []byte(`{}`))
		assert.Equal(t, http.StatusNotImplemented, rec.Code, path)
	}
}
