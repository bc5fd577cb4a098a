package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/codeready-toolchain/codegend/ent"
	"github.com/codeready-toolchain/codegend/ent/generationlog"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

// Entry is what a worker or sync handler reports after one generation
// attempt, successful or not. Service turns it into a GenerationLog row.
type Entry struct {
	UserID          string
	Product         models.Product
	InputKind       models.InputKindTag
	Intent          *models.Intent
	TemplateID      *int
	TemplateVersion *int
	Result          *models.GenerateResult
	Err             error
	ElapsedMS       int64
}

// Service writes GenerationLog rows. The raw input payload never passes
// through Entry, let alone Service — spec §3's "never stored" invariant
// holds structurally, not by omission-at-write-time.
type Service struct {
	client *ent.Client
}

// NewService constructs a Service.
func NewService(client *ent.Client) *Service {
	return &Service{client: client}
}

// Record persists one Entry as a GenerationLog row. Write failures are
// logged, not propagated — a broken audit trail must never fail the
// generation request it is auditing.
func (s *Service) Record(ctx context.Context, e Entry) {
	create := s.client.GenerationLog.Create().
		SetProduct(string(e.Product)).
		SetInputType(string(e.InputKind)).
		SetElapsedMs(e.ElapsedMS)

	if e.UserID != "" {
		create = create.SetUserID(e.UserID)
	}
	if e.TemplateID != nil {
		create = create.SetTemplateID(*e.TemplateID)
	}
	if e.TemplateVersion != nil {
		create = create.SetTemplateVersion(*e.TemplateVersion)
	}

	// Natural-language inputs carry only a skeletal intent; no snapshot is
	// stored for them.
	if e.InputKind != models.InputKindNaturalLanguage {
		if snapshot, ok := intentSnapshot(e.Intent); ok {
			create = create.SetIntent(snapshot)
		}
	}

	if e.Err != nil {
		create = create.
			SetStatus(generationlog.StatusFailure).
			SetErrorMessage(e.Err.Error())
	} else {
		create = create.SetStatus(generationlog.StatusSuccess)
		if e.Result != nil {
			create = create.
				SetArtifacts(e.Result.Artifacts).
				SetWarnings(e.Result.Warnings)
		}
	}

	if _, err := create.Save(ctx); err != nil {
		slog.Error("failed to persist generation log entry",
			"product", e.Product, "error", err)
	}
}

// intentSnapshot serializes an Intent into the structural map a
// GenerationLog row stores. A nil Intent (normalization failed before
// producing one) is elided rather than stored as null — the field stays
// unset.
func intentSnapshot(intent *models.Intent) (map[string]interface{}, bool) {
	if intent == nil {
		return nil, false
	}
	data, err := json.Marshal(intent)
	if err != nil {
		slog.Error("failed to serialize intent for audit log", "error", err)
		return nil, false
	}
	var snapshot map[string]interface{}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		slog.Error("failed to decode intent snapshot for audit log", "error", err)
		return nil, false
	}
	return snapshot, true
}
