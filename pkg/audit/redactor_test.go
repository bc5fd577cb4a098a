package audit

import (
	"encoding/json"
	"testing"

	"github.com/codeready-toolchain/codegend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactorScrubsAllFourIdentifiers(t *testing.T) {
	r := NewRedactor("anthropic", "claude-test-model", "https://api.example.com/v1", "sk-secret-abc")

	text := "provider anthropic failed calling claude-test-model at https://api.example.com/v1 with key sk-secret-abc"
	redacted := r.Redact(text)

	assert.NotContains(t, redacted, "anthropic")
	assert.NotContains(t, redacted, "claude-test-model")
	assert.NotContains(t, redacted, "https://api.example.com/v1")
	assert.NotContains(t, redacted, "sk-secret-abc")
}

func TestRedactorSkipsEmptyFields(t *testing.T) {
	r := NewRedactor("", "", "", "")
	assert.Equal(t, "nothing to redact here", r.Redact("nothing to redact here"))
}

func TestRedactorLeavesUnrelatedTextUntouched(t *testing.T) {
	r := NewRedactor("ollama", "llama3", "http://localhost:11434", "")
	assert.Equal(t, "generation completed with 2 warnings", r.Redact("generation completed with 2 warnings"))
}

func TestRedactAllAppliesToEverySlicElement(t *testing.T) {
	r := NewRedactor("groq", "", "", "")
	out := r.RedactAll([]string{"using groq backend", "no mention here"})
	assert.Equal(t, []string{"using [redacted-provider] backend", "no mention here"}, out)
}

func TestIntentSnapshotRoundTripsThroughJSON(t *testing.T) {
	intent := &models.Intent{
		UI: &models.UiIntent{
			ScreenName: "employee_list",
			ScreenType: models.ScreenTypeList,
		},
	}

	snapshot, ok := intentSnapshot(intent)
	assert.True(t, ok)
	assert.NotEmpty(t, snapshot)

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)
	var decoded models.Intent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *intent, decoded)
}

func TestIntentSnapshotElidesNilIntent(t *testing.T) {
	snapshot, ok := intentSnapshot(nil)
	assert.False(t, ok)
	assert.Nil(t, snapshot)
}
