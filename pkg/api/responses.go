package api

import (
	"time"

	"github.com/codeready-toolchain/codegend/pkg/models"
	"github.com/codeready-toolchain/codegend/pkg/queue"
)

// syncGenerateResponse is the body of a synchronous /agent/generate reply
// (spec §6 "Response shape (sync)"). Meta never carries provider, model,
// endpoint, credential, or template identity — only a product-derived
// generator tag, per spec §6's disclosure rule.
type syncGenerateResponse struct {
	Status    string            `json:"status"`
	Artifacts models.Artifacts  `json:"artifacts,omitempty"`
	Warnings  []string          `json:"warnings"`
	Meta      generateMeta      `json:"meta"`
	Error     string            `json:"error,omitempty"`
}

type generateMeta struct {
	Generator        string `json:"generator"`
	Timestamp        string `json:"timestamp"`
	GenerationTimeMS int64  `json:"generation_time_ms"`
}

func newSyncSuccessResponse(product models.Product, result *models.GenerateResult) syncGenerateResponse {
	return syncGenerateResponse{
		Status:    "success",
		Artifacts: result.Artifacts,
		Warnings:  nonNilWarnings(result.Warnings),
		Meta: generateMeta{
			Generator:        generatorTag(product),
			Timestamp:        time.Now().UTC().Format(time.RFC3339),
			GenerationTimeMS: result.ElapsedMS,
		},
	}
}

func newSyncErrorResponse(product models.Product, message string) syncGenerateResponse {
	return syncGenerateResponse{
		Status:   "error",
		Warnings: []string{},
		Meta: generateMeta{
			Generator: generatorTag(product),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Error: message,
	}
}

func generatorTag(product models.Product) string {
	return string(product) + "-v1"
}

func nonNilWarnings(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}

// asyncSubmitResponse is the body of an async /agent/generate reply (spec
// §6 "Async response / status").
type asyncSubmitResponse struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	StatusURL string `json:"status_url"`
	Message   string `json:"message"`
}

// jobStatusResponse is the body of GET /agent/jobs/{id}.
type jobStatusResponse struct {
	JobID            string           `json:"job_id"`
	Status           queue.Status     `json:"status"`
	QueuePosition    *int             `json:"queue_position,omitempty"`
	Artifacts        models.Artifacts `json:"artifacts,omitempty"`
	Warnings         []string         `json:"warnings,omitempty"`
	Error            string           `json:"error,omitempty"`
	GenerationTimeMS *int64           `json:"generation_time_ms,omitempty"`
	Product          models.Product   `json:"product"`
}

func newJobStatusResponse(snap queue.Snapshot) jobStatusResponse {
	return jobStatusResponse{
		JobID:            snap.ID,
		Status:           snap.Status,
		QueuePosition:    snap.QueuePosition,
		Artifacts:        snap.Artifacts,
		Warnings:         snap.Warnings,
		Error:            snap.Error,
		GenerationTimeMS: snap.ElapsedMS,
		Product:          snap.Product,
	}
}

// HealthResponse is the body of GET /agent/health.
type HealthResponse struct {
	Status       string `json:"status"`
	LlmAvailable bool   `json:"llm_available"`
	Version      string `json:"version,omitempty"`
}

// ProductsResponse is the body of GET /agent/products.
type ProductsResponse struct {
	Products []models.Product `json:"products"`
}

// errorResponse is the JSON envelope for 4xx/5xx replies.
type errorResponse struct {
	Error string `json:"error"`
}
