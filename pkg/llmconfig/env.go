package llmconfig

import (
	"os"
	"strconv"
)

// Environment variable names consulted when no LlmConfig row is active.
// Named analogously to the teacher's own GEMINI_* fallback variables in
// its (now superseded) pkg/llm client.
const (
	envProvider       = "LLM_PROVIDER"
	envEndpoint       = "LLM_ENDPOINT"
	envModel          = "LLM_MODEL"
	envAPIKey         = "LLM_API_KEY"
	envTimeoutSeconds = "LLM_TIMEOUT_SECONDS"
	envMaxTokens      = "LLM_MAX_TOKENS"
	envTemperature    = "LLM_TEMPERATURE"
)

const defaultTimeoutSeconds = 60

func rowFromEnv() *Row {
	row := &Row{
		Name:           "environment",
		Provider:       os.Getenv(envProvider),
		ModelName:      os.Getenv(envModel),
		EndpointURL:    os.Getenv(envEndpoint),
		APIKey:         os.Getenv(envAPIKey),
		TimeoutSeconds: defaultTimeoutSeconds,
	}

	if v := os.Getenv(envTimeoutSeconds); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			row.TimeoutSeconds = n
		}
	}
	if v := os.Getenv(envMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			row.MaxTokens = &n
		}
	}
	if v := os.Getenv(envTemperature); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			row.Temperature = &f
		}
	}

	return row
}
