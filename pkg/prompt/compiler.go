// Package prompt assembles the final system/user prompt pair sent to the
// LLM backend: a template (looked up by product and screen type), the
// selected knowledge entries, the active company rules, and a deterministic
// rendering of the normalized intent.
package prompt

import (
	"context"
	"strings"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/knowledge"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

const intentPlaceholder = "{{intent_description}}"

// Compiled is the pair of prompts handed to the LLM backend.
type Compiled struct {
	SystemPrompt    string
	UserPrompt      string
	Warnings        []string
	TemplateID      int
	TemplateVersion int
}

// Compiler assembles Compiled prompts per the fixed section order:
// base system_prompt, then "# KNOWLEDGE", then "# COMPANY RULES" if
// applicable. The user prompt is the template's user_prompt_template with
// {{intent_description}} substituted for a deterministic rendering of the
// intent.
type Compiler struct {
	templates    Lookup
	knowledge    *knowledge.Selector
	companyRules CompanyRuleProvider
}

// NewCompiler constructs a Compiler. companyRules may be nil, in which case
// the COMPANY RULES section is always omitted.
func NewCompiler(templates Lookup, knowledgeSelector *knowledge.Selector, companyRules CompanyRuleProvider) *Compiler {
	return &Compiler{templates: templates, knowledge: knowledgeSelector, companyRules: companyRules}
}

// Compile builds the system/user prompt pair for the given product and
// normalized intent. It fails with KindTemplateMissing when neither an
// exact (product, screen_type) template nor a product-wide fallback
// exists.
func (c *Compiler) Compile(ctx context.Context, product models.Product, in *models.Intent) (*Compiled, error) {
	tmpl, err := c.templates.Find(ctx, product, screenTypeOf(in))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "template lookup failed", err)
	}
	if tmpl == nil {
		return nil, apperrors.New(apperrors.KindTemplateMissing, "no active template for product "+string(product))
	}

	var warnings []string

	knowledgeResult, err := c.knowledge.Select(ctx, product, in)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "knowledge selection failed", err)
	}
	warnings = append(warnings, knowledgeResult.Warnings...)

	var system strings.Builder
	system.WriteString(tmpl.SystemPrompt)

	if len(knowledgeResult.Entries) > 0 {
		system.WriteString("\n\n# KNOWLEDGE\n\n")
		contents := make([]string, len(knowledgeResult.Entries))
		for i, e := range knowledgeResult.Entries {
			contents[i] = e.Content
		}
		system.WriteString(strings.Join(contents, "\n\n"))
	}

	if c.companyRules != nil {
		rules, err := c.companyRules.Active(ctx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "company rule lookup failed", err)
		}
		if rules != nil {
			rendered := rules.Render()
			if rendered != "" {
				system.WriteString("\n\n# COMPANY RULES\n\n")
				system.WriteString(rendered)
			}
		}
	}

	userPrompt := strings.Replace(tmpl.UserPromptTemplate, intentPlaceholder, RenderIntent(in), 1)

	return &Compiled{
		SystemPrompt:    system.String(),
		UserPrompt:      userPrompt,
		Warnings:        warnings,
		TemplateID:      tmpl.ID,
		TemplateVersion: tmpl.Version,
	}, nil
}

// screenTypeOf extracts the screen_type lookup key from in, empty for
// products (Spring) that carry no screen type.
func screenTypeOf(in *models.Intent) string {
	if in.UI != nil {
		return string(in.UI.ScreenType)
	}
	return ""
}
