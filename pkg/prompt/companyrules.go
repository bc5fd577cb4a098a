package prompt

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/codeready-toolchain/codegend/ent"
	"github.com/codeready-toolchain/codegend/ent/companyrule"
)

// CompanyRuleProvider resolves the single active CompanyRule row, if any.
type CompanyRuleProvider interface {
	// Active returns the active company rule, or nil if none is active —
	// the COMPANY RULES section is omitted entirely in that case.
	Active(ctx context.Context) (*CompanyRuleSet, error)
}

// CompanyRuleSet is the plain view of a CompanyRule row.
type CompanyRuleSet struct {
	NamingConvention map[string]string
	AdditionalRules  string
}

// Render formats the rule set for the COMPANY RULES prompt section. Map
// iteration order is non-deterministic in Go, so naming convention entries
// are sorted by key before rendering.
func (c *CompanyRuleSet) Render() string {
	var b strings.Builder
	if len(c.NamingConvention) > 0 {
		keys := make([]string, 0, len(c.NamingConvention))
		for k := range c.NamingConvention {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, c.NamingConvention[k])
		}
	}
	if c.AdditionalRules != "" {
		b.WriteString(c.AdditionalRules)
		b.WriteString("\n")
	}
	return b.String()
}

// EntCompanyRuleProvider is the production CompanyRuleProvider backed by
// the CompanyRule table. At most one row is expected to be active; if more
// than one is somehow marked active, the first returned by the query wins.
type EntCompanyRuleProvider struct {
	client *ent.Client
}

// NewEntCompanyRuleProvider constructs an EntCompanyRuleProvider.
func NewEntCompanyRuleProvider(client *ent.Client) *EntCompanyRuleProvider {
	return &EntCompanyRuleProvider{client: client}
}

// Active implements CompanyRuleProvider.
func (p *EntCompanyRuleProvider) Active(ctx context.Context) (*CompanyRuleSet, error) {
	row, err := p.client.CompanyRule.Query().
		Where(companyrule.IsActiveEQ(true)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &CompanyRuleSet{
		NamingConvention: row.NamingConvention,
		AdditionalRules:  row.AdditionalRules,
	}, nil
}
