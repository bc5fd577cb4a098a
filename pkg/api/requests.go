package api

import (
	"encoding/json"

	"github.com/codeready-toolchain/codegend/pkg/models"
)

// generateRequestBody is the wire shape of POST /agent/generate's body
// (spec §6 "Request shape (generate)"). Input is left as raw JSON because
// its shape depends on InputType, a degree of freedom gin's struct-tag
// binding can't express.
type generateRequestBody struct {
	Product   models.Product      `json:"product" binding:"required"`
	InputType models.InputKindTag `json:"inputType" binding:"required"`
	Input     json.RawMessage     `json:"input" binding:"required"`
	Options   models.Options      `json:"options"`
	Context   models.Context      `json:"context"`
}

// toGenerateRequest converts the wire body into a models.GenerateRequest,
// rejecting an unknown product/inputType or an input payload that doesn't
// parse as the shape InputType calls for.
func (b generateRequestBody) toGenerateRequest(userID string) (models.GenerateRequest, error) {
	if !b.Product.IsValid() {
		return models.GenerateRequest{}, &invalidRequestError{field: "product", reason: "unknown product"}
	}
	if !b.InputType.IsValid() {
		return models.GenerateRequest{}, &invalidRequestError{field: "inputType", reason: "unknown inputType"}
	}

	kind := models.InputKind{Kind: b.InputType}
	switch b.InputType {
	case models.InputKindSchema:
		var in models.SchemaInput
		if err := json.Unmarshal(b.Input, &in); err != nil || in.Table == "" {
			return models.GenerateRequest{}, &invalidRequestError{field: "input", reason: "malformed db-schema input"}
		}
		kind.Schema = &in
	case models.InputKindQuerySample:
		var in models.QuerySampleInput
		if err := json.Unmarshal(b.Input, &in); err != nil || in.SQL == "" {
			return models.GenerateRequest{}, &invalidRequestError{field: "input", reason: "malformed query-sample input"}
		}
		kind.QuerySample = &in
	case models.InputKindNaturalLanguage:
		var in models.NaturalLanguageInput
		if err := json.Unmarshal(b.Input, &in); err != nil || in.Description == "" {
			return models.GenerateRequest{}, &invalidRequestError{field: "input", reason: "malformed natural-language input"}
		}
		kind.NaturalLanguage = &in
	case models.InputKindCustomIntent:
		var in models.Intent
		if err := json.Unmarshal(b.Input, &in); err != nil {
			return models.GenerateRequest{}, &invalidRequestError{field: "input", reason: "malformed custom-intent input"}
		}
		kind.CustomIntent = &in
	}

	return models.GenerateRequest{
		Product: b.Product,
		Input:   kind,
		Options: b.Options,
		Context: b.Context,
		UserID:  userID,
	}, nil
}

// invalidRequestError reports a malformed request body field (spec §6
// "400 for malformed requests").
type invalidRequestError struct {
	field  string
	reason string
}

func (e *invalidRequestError) Error() string {
	return e.field + ": " + e.reason
}
