package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// Catalog is an immutable, validated set of compliance rules grouped by
// policy type. Build a new catalog and swap it via Provider to reload;
// never mutate rules in place.
type Catalog struct {
	byType map[Type][]Rule
	byID   map[string]Rule
}

// NewCatalog validates rule definitions and builds a catalog. It fails
// with a *CatalogError on the first malformed rule: duplicate ID, empty
// condition set, invalid condition, or unknown policy type. Severity
// validity is enforced during JSON decoding and re-checked here for
// programmatically built rules.
func NewCatalog(rules []Rule) (*Catalog, error) {
	c := &Catalog{
		byType: make(map[Type][]Rule),
		byID:   make(map[string]Rule),
	}

	for _, r := range rules {
		if r.ID == "" {
			return nil, &CatalogError{Reason: "rule with empty id"}
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, &CatalogError{RuleID: r.ID, Reason: "duplicate rule id"}
		}
		if _, err := ParseType(string(r.Policy)); err != nil {
			return nil, &CatalogError{RuleID: r.ID, Reason: err.Error()}
		}
		if r.Severity < SeverityLow || r.Severity > SeverityCritical {
			return nil, &CatalogError{RuleID: r.ID, Reason: fmt.Sprintf("unknown severity %d", int(r.Severity))}
		}
		if len(r.Conditions) == 0 {
			return nil, &CatalogError{RuleID: r.ID, Reason: "empty condition set"}
		}
		for _, cond := range r.Conditions {
			if err := cond.validate(); err != nil {
				return nil, &CatalogError{RuleID: r.ID, Reason: err.Error()}
			}
		}

		c.byID[r.ID] = r
		c.byType[r.Policy] = append(c.byType[r.Policy], r)
	}

	// Stable, id-ascending order per policy type so violation ordering
	// downstream is deterministic.
	for t := range c.byType {
		sort.Slice(c.byType[t], func(i, j int) bool {
			return c.byType[t][i].ID < c.byType[t][j].ID
		})
	}

	return c, nil
}

// RulesFor returns the rules for a policy type in id-ascending order.
// The returned slice is a copy; callers cannot mutate the catalog.
func (c *Catalog) RulesFor(t Type) []Rule {
	rules := c.byType[t]
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Rule looks up a single rule by ID.
func (c *Catalog) Rule(id string) (Rule, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Len returns the total number of rules across all policy types.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// LoadFile reads a JSON rule catalog from a versioned configuration
// file. The file is a flat array of rule objects.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		if ce, ok := err.(*CatalogError); ok {
			return nil, ce
		}
		return nil, &CatalogError{Reason: err.Error()}
	}
	return NewCatalog(rules)
}

// Provider hands out the current catalog to concurrent validation runs.
// Reload builds a fresh catalog and swaps the pointer atomically, so an
// in-flight run keeps the catalog version it started with.
type Provider struct {
	current atomic.Pointer[Catalog]
}

// NewProvider creates a provider serving the given catalog.
func NewProvider(c *Catalog) *Provider {
	p := &Provider{}
	p.current.Store(c)
	return p
}

// Current returns the catalog visible to new runs.
func (p *Provider) Current() *Catalog {
	return p.current.Load()
}

// Reload atomically installs a replacement catalog. Catalogs are
// validated at construction, so the swap itself cannot fail.
func (p *Provider) Reload(c *Catalog) {
	p.current.Store(c)
}

// ---------------------------------------------------------------------------
// Built-in rules
// ---------------------------------------------------------------------------

// HighRiskCountries is the sanctions and elevated-risk country list used
// by the built-in AML catalog.
var HighRiskCountries = []string{
	"North Korea", "Iran", "Syria", "Sudan", "Cuba",
	"Afghanistan", "Myanmar", "Russia", "Belarus", "Venezuela",
}

// sanctionedCountries is the subset that is fully prohibited rather
// than merely high risk.
var sanctionedCountries = []string{
	"North Korea", "Iran", "Syria", "Sudan", "Cuba",
}

func eur(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("policy: bad built-in threshold: " + s)
	}
	return d
}

// DefaultRules returns the built-in rule set covering the AML,
// financial and regulatory policy families.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          "AML-001",
			Name:        "High Value Transaction",
			Description: "Transactions of EUR 100,000 or more require additional documentation",
			Policy:      TypeAML,
			Severity:    SeverityHigh,
			Remediation: "Collect additional documentation and obtain management approval",
			Conditions: []Condition{
				AmountCondition{Threshold: eur("100000"), Compare: CompareGTE},
			},
		},
		{
			ID:          "AML-002",
			Name:        "CTR Threshold",
			Description: "Check or cash payments of EUR 5,000 or more require a Currency Transaction Report",
			Policy:      TypeAML,
			Severity:    SeverityMedium,
			Remediation: "File a Currency Transaction Report (CTR)",
			Conditions: []Condition{
				AmountCondition{Threshold: eur("5000"), Compare: CompareGTE},
				MethodCondition{Methods: []string{"CHECK", "CASH"}},
			},
		},
		{
			ID:          "AML-003",
			Name:        "SAR Threshold",
			Description: "High-risk or PEP transactions above EUR 3,000 trigger a Suspicious Activity Report",
			Policy:      TypeAML,
			Severity:    SeverityHigh,
			Remediation: "File a Suspicious Activity Report (SAR)",
			Conditions: []Condition{
				AmountCondition{Threshold: eur("3000"), Compare: CompareGT},
				CategoryCondition{Categories: []string{"HIGH", "PEP"}},
			},
		},
		{
			ID:          "AML-004",
			Name:        "PEP Transaction",
			Description: "Politically exposed person transactions of EUR 1,000 or more require enhanced monitoring",
			Policy:      TypeAML,
			Severity:    SeverityHigh,
			Remediation: "Apply enhanced monitoring and obtain senior management approval",
			Conditions: []Condition{
				AmountCondition{Threshold: eur("1000"), Compare: CompareGTE},
				CategoryCondition{Categories: []string{"PEP"}},
			},
		},
		{
			ID:          "AML-005",
			Name:        "High Risk Country",
			Description: "Transactions with counterparties in high-risk countries require enhanced due diligence",
			Policy:      TypeAML,
			Severity:    SeverityCritical,
			Remediation: "Perform enhanced due diligence and obtain management approval",
			Conditions: []Condition{
				CountryCondition{Countries: HighRiskCountries},
			},
		},
		{
			ID:          "FIN-001",
			Name:        "Material Transaction Disclosure",
			Description: "Transactions of EUR 50,000 or more are material and must be disclosed in financial reports",
			Policy:      TypeFinancial,
			Severity:    SeverityMedium,
			Remediation: "Record the transaction in the material disclosures register",
			Conditions: []Condition{
				AmountCondition{Threshold: eur("50000"), Compare: CompareGTE},
			},
		},
		{
			ID:          "FIN-002",
			Name:        "Cash Expense Documentation",
			Description: "Cash expenses of EUR 1,000 or more require supporting invoices",
			Policy:      TypeFinancial,
			Severity:    SeverityLow,
			Remediation: "Attach supporting invoices to the expense record",
			Conditions: []Condition{
				AmountCondition{Threshold: eur("1000"), Compare: CompareGTE},
				MethodCondition{Methods: []string{"CASH"}},
			},
		},
		{
			ID:          "REG-001",
			Name:        "Sanctioned Country Prohibition",
			Description: "Transactions with sanctioned countries are prohibited",
			Policy:      TypeRegulatory,
			Severity:    SeverityCritical,
			Remediation: "Block the transaction and escalate to the sanctions desk",
			Conditions: []Condition{
				CountryCondition{Countries: sanctionedCountries},
			},
		},
		{
			ID:          "REG-002",
			Name:        "Cross-Border Reporting",
			Description: "Wire transfers of EUR 10,000 or more are subject to cross-border reporting",
			Policy:      TypeRegulatory,
			Severity:    SeverityMedium,
			Remediation: "File the cross-border transfer report with the regulator",
			Conditions: []Condition{
				AmountCondition{Threshold: eur("10000"), Compare: CompareGTE},
				MethodCondition{Methods: []string{"WIRE"}},
			},
		},
	}
}

// DefaultCatalog builds the built-in catalog. It panics on error since
// the built-in rules are fixed at compile time.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultRules())
	if err != nil {
		panic("policy: built-in catalog invalid: " + err.Error())
	}
	return c
}
