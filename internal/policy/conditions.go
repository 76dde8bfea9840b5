package policy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/complyd/complyd/internal/transactions"
	"github.com/shopspring/decimal"
)

// Condition is one predicate of a rule. Conditions are pure: Matches
// never mutates the transaction and never touches external state.
type Condition interface {
	// Kind identifies the condition variant ("amount", "country",
	// "payment_method", "risk_category").
	Kind() string
	// Matches reports whether the transaction satisfies the predicate.
	Matches(txn transactions.Transaction) bool
	// validate is called at catalog load; a non-nil error makes the
	// whole catalog load fail.
	validate() error
}

// AmountCondition matches transactions whose amount is above (gt) or at
// or above (gte) a threshold in the reference currency. The caller is
// responsible for currency normalization; the condition compares raw
// decimal amounts.
type AmountCondition struct {
	Threshold decimal.Decimal
	Compare   Comparison
}

func (c AmountCondition) Kind() string { return "amount" }

func (c AmountCondition) Matches(txn transactions.Transaction) bool {
	switch c.Compare {
	case CompareGT:
		return txn.Amount.GreaterThan(c.Threshold)
	default:
		return txn.Amount.GreaterThanOrEqual(c.Threshold)
	}
}

func (c AmountCondition) validate() error {
	if c.Compare != CompareGT && c.Compare != CompareGTE {
		return fmt.Errorf("amount condition: unknown comparison %q", c.Compare)
	}
	if c.Threshold.IsNegative() {
		return fmt.Errorf("amount condition: negative threshold %s", c.Threshold)
	}
	return nil
}

// CountryCondition matches transactions whose supplier country is in the
// set. Matching is case-insensitive on the country name.
type CountryCondition struct {
	Countries []string
}

func (c CountryCondition) Kind() string { return "country" }

func (c CountryCondition) Matches(txn transactions.Transaction) bool {
	for _, country := range c.Countries {
		if strings.EqualFold(country, txn.SupplierCountry) {
			return true
		}
	}
	return false
}

func (c CountryCondition) validate() error {
	if len(c.Countries) == 0 {
		return fmt.Errorf("country condition: empty country set")
	}
	return nil
}

// MethodCondition matches transactions by payment method (WIRE, CHECK,
// CASH).
type MethodCondition struct {
	Methods []string
}

func (c MethodCondition) Kind() string { return "payment_method" }

func (c MethodCondition) Matches(txn transactions.Transaction) bool {
	for _, m := range c.Methods {
		if strings.EqualFold(m, txn.PaymentMethod) {
			return true
		}
	}
	return false
}

func (c MethodCondition) validate() error {
	if len(c.Methods) == 0 {
		return fmt.Errorf("payment_method condition: empty method set")
	}
	return nil
}

// CategoryCondition matches transactions by supplier risk category
// (LOW, MEDIUM, HIGH, PEP).
type CategoryCondition struct {
	Categories []string
}

func (c CategoryCondition) Kind() string { return "risk_category" }

func (c CategoryCondition) Matches(txn transactions.Transaction) bool {
	for _, cat := range c.Categories {
		if strings.EqualFold(cat, txn.RiskCategory) {
			return true
		}
	}
	return false
}

func (c CategoryCondition) validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("risk_category condition: empty category set")
	}
	return nil
}

// ---------------------------------------------------------------------------
// JSON encoding
//
// Conditions serialize as tagged objects so catalogs can live in a
// versioned config file:
//
//	{"type": "amount", "threshold": "100000", "compare": "gte"}
//	{"type": "country", "countries": ["Iran", "Syria"]}
// ---------------------------------------------------------------------------

type conditionEnvelope struct {
	Type       string           `json:"type"`
	Threshold  *decimal.Decimal `json:"threshold,omitempty"`
	Compare    Comparison       `json:"compare,omitempty"`
	Countries  []string         `json:"countries,omitempty"`
	Methods    []string         `json:"methods,omitempty"`
	Categories []string         `json:"categories,omitempty"`
}

// MarshalJSON implementations for each condition variant.

func (c AmountCondition) MarshalJSON() ([]byte, error) {
	t := c.Threshold
	return json.Marshal(conditionEnvelope{Type: c.Kind(), Threshold: &t, Compare: c.Compare})
}

func (c CountryCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionEnvelope{Type: c.Kind(), Countries: c.Countries})
}

func (c MethodCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionEnvelope{Type: c.Kind(), Methods: c.Methods})
}

func (c CategoryCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionEnvelope{Type: c.Kind(), Categories: c.Categories})
}

// decodeCondition builds a Condition from its tagged JSON form. A
// threshold-based condition without a threshold is malformed.
func decodeCondition(raw json.RawMessage) (Condition, error) {
	var env conditionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Type {
	case "amount":
		if env.Threshold == nil {
			return nil, fmt.Errorf("amount condition: missing threshold")
		}
		cmp := env.Compare
		if cmp == "" {
			cmp = CompareGTE
		}
		return AmountCondition{Threshold: *env.Threshold, Compare: cmp}, nil
	case "country":
		return CountryCondition{Countries: env.Countries}, nil
	case "payment_method":
		return MethodCondition{Methods: env.Methods}, nil
	case "risk_category":
		return CategoryCondition{Categories: env.Categories}, nil
	default:
		return nil, fmt.Errorf("unknown condition type %q", env.Type)
	}
}

// UnmarshalJSON decodes a rule with its tagged condition list.
func (r *Rule) UnmarshalJSON(data []byte) error {
	type ruleShadow struct {
		ID          string            `json:"id"`
		Name        string            `json:"name"`
		Description string            `json:"description"`
		Policy      Type              `json:"policyType"`
		Severity    json.RawMessage   `json:"severity"`
		Remediation string            `json:"remediation"`
		Conditions  []json.RawMessage `json:"conditions"`
	}
	var shadow ruleShadow
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}

	r.ID = shadow.ID
	r.Name = shadow.Name
	r.Description = shadow.Description
	r.Policy = shadow.Policy
	r.Remediation = shadow.Remediation

	if len(shadow.Severity) > 0 {
		if err := r.Severity.UnmarshalJSON(shadow.Severity); err != nil {
			return &CatalogError{RuleID: shadow.ID, Reason: err.Error()}
		}
	}

	r.Conditions = nil
	for _, raw := range shadow.Conditions {
		cond, err := decodeCondition(raw)
		if err != nil {
			return &CatalogError{RuleID: shadow.ID, Reason: err.Error()}
		}
		r.Conditions = append(r.Conditions, cond)
	}
	return nil
}
