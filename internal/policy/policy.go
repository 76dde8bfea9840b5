// Package policy implements the compliance rule catalog and evaluator.
//
// Rules are static configuration loaded once at startup. A rule triggers
// when all of its declared conditions match a transaction; evaluation is
// pure and deterministic, so it is safe to run concurrently across any
// number of transactions sharing one catalog.
package policy

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Type is the policy family a rule belongs to.
type Type string

const (
	TypeAML        Type = "aml"
	TypeFinancial  Type = "financial"
	TypeRegulatory Type = "regulatory"
)

// ParseType validates a policy type string. Unrecognized values are
// rejected at the boundary rather than treated as an empty rule set.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeAML, TypeFinancial, TypeRegulatory:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown policy type %q", s)
}

// Types returns all supported policy types.
func Types() []Type {
	return []Type{TypeAML, TypeFinancial, TypeRegulatory}
}

// Severity classifies how serious a rule violation is. The ordering is
// low < medium < high < critical; aggregation uses the maximum.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = [...]string{
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if s >= SeverityLow && s <= SeverityCritical {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ParseSeverity parses a severity name as found in rule configuration.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

// MarshalJSON renders the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a severity from its lowercase name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// Comparison is the direction of an amount threshold check.
type Comparison string

const (
	CompareGT  Comparison = "gt"  // amount strictly above the threshold
	CompareGTE Comparison = "gte" // amount at or above the threshold
)

// Rule is a single named policy check. Conditions combine with logical
// AND: the rule triggers only if every declared condition matches. A
// condition type that is absent matches all transactions.
type Rule struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Policy      Type        `json:"policyType"`
	Severity    Severity    `json:"severity"`
	Remediation string      `json:"remediation"`
	Conditions  []Condition `json:"conditions"`
}

// Violation records a single rule trigger against one transaction.
// Immutable once created.
type Violation struct {
	TransactionID string          `json:"transactionId"`
	RuleID        string          `json:"ruleId"`
	RuleName      string          `json:"ruleName"`
	Severity      Severity        `json:"severity"`
	Description   string          `json:"description"`
	Remediation   string          `json:"remediation"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	SupplierName  string          `json:"supplierName,omitempty"`
	Country       string          `json:"country,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	RiskCategory  string          `json:"riskCategory,omitempty"`
}

// CatalogError reports a malformed rule definition at catalog load time.
// It is fatal: a catalog with any malformed rule is rejected wholesale.
type CatalogError struct {
	RuleID string
	Reason string
}

func (e *CatalogError) Error() string {
	if e.RuleID == "" {
		return "policy catalog: " + e.Reason
	}
	return fmt.Sprintf("policy catalog: rule %s: %s", e.RuleID, e.Reason)
}
