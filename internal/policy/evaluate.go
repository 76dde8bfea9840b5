package policy

import (
	"fmt"
	"strings"

	"github.com/complyd/complyd/internal/transactions"
)

// Evaluate applies one rule to one transaction and returns a violation
// when every declared condition matches, or nil otherwise.
//
// Evaluate is pure: no randomness, no external state, no side effects.
// It never fails for rules that passed catalog validation, and the
// transaction amount is assumed to be pre-normalized to the reference
// currency.
func Evaluate(rule Rule, txn transactions.Transaction) *Violation {
	for _, cond := range rule.Conditions {
		if !cond.Matches(txn) {
			return nil
		}
	}

	return &Violation{
		TransactionID: txn.ID,
		RuleID:        rule.ID,
		RuleName:      rule.Name,
		Severity:      rule.Severity,
		Description:   explain(rule, txn),
		Remediation:   rule.Remediation,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		SupplierName:  txn.SupplierName,
		Country:       txn.SupplierCountry,
		PaymentMethod: txn.PaymentMethod,
		RiskCategory:  txn.RiskCategory,
	}
}

// explain builds the human-readable violation explanation from the
// conditions that triggered.
func explain(rule Rule, txn transactions.Transaction) string {
	var parts []string
	for _, cond := range rule.Conditions {
		switch c := cond.(type) {
		case AmountCondition:
			op := "at or above"
			if c.Compare == CompareGT {
				op = "above"
			}
			parts = append(parts, fmt.Sprintf("amount %s %s is %s the %s threshold",
				txn.Amount.StringFixed(2), txn.Currency, op, c.Threshold.StringFixed(2)))
		case CountryCondition:
			parts = append(parts, fmt.Sprintf("counterparty country %s is on the watch list", txn.SupplierCountry))
		case MethodCondition:
			parts = append(parts, fmt.Sprintf("payment method %s is covered by the rule", txn.PaymentMethod))
		case CategoryCondition:
			parts = append(parts, fmt.Sprintf("risk category %s is covered by the rule", txn.RiskCategory))
		}
	}
	return fmt.Sprintf("%s: %s", rule.Name, strings.Join(parts, "; "))
}
