package compliance

import (
	"context"
	"sync"
	"time"

	"github.com/complyd/complyd/internal/policy"
	"github.com/complyd/complyd/internal/transactions"
)

// Validator evaluates transaction batches against the rule catalog.
// It is stateless apart from the catalog provider, so one Validator
// serves any number of concurrent runs.
type Validator struct {
	catalog *policy.Provider
	workers int
}

// NewValidator creates a validator. workers <= 1 evaluates batches
// sequentially; larger values fan transactions out across goroutines.
// Output ordering is identical either way.
func NewValidator(catalog *policy.Provider, workers int) *Validator {
	if workers < 1 {
		workers = 1
	}
	return &Validator{catalog: catalog, workers: workers}
}

// Validate evaluates every catalog rule for the policy type against
// every transaction, in input order. Violations are grouped by
// transaction (input order) and within a transaction by rule id order.
//
// An empty transaction set and an unknown policy type fail with a
// *ValidationError rather than producing an empty-but-successful
// result.
func (v *Validator) Validate(ctx context.Context, txns []transactions.Transaction, policyType policy.Type) ([]policy.Violation, Status, error) {
	if len(txns) == 0 {
		return nil, Status{}, ErrEmptyTransactions
	}
	if _, err := policy.ParseType(string(policyType)); err != nil {
		return nil, Status{}, ErrUnknownPolicy
	}

	start := time.Now()
	rules := v.catalog.Current().RulesFor(policyType)

	// Each slot holds the violations for one transaction, so parallel
	// workers never reorder observable output: the final flatten walks
	// slots in input order, and each slot's violations are already in
	// catalog (rule id) order.
	perTxn := make([][]policy.Violation, len(txns))

	if v.workers == 1 || len(txns) == 1 {
		for i, txn := range txns {
			perTxn[i] = evaluateAll(rules, txn)
		}
	} else {
		v.evaluateParallel(ctx, rules, txns, perTxn)
		if err := ctx.Err(); err != nil {
			return nil, Status{}, err
		}
	}

	var violations []policy.Violation
	var counts SeverityCounts
	for _, vs := range perTxn {
		for _, viol := range vs {
			violations = append(violations, viol)
			counts.Add(viol.Severity)
		}
	}

	status := Status{
		PolicyType:        policyType,
		TotalTransactions: len(txns),
		TotalViolations:   len(violations),
		SeverityCounts:    counts,
		Overall:           Compliant,
	}
	if len(violations) > 0 {
		status.Overall = NonCompliant
		if highest, ok := counts.Highest(); ok {
			status.HighestSeverity = &highest
		}
	}

	observeValidation(policyType, len(txns), counts, time.Since(start))
	return violations, status, nil
}

// evaluateAll runs every rule against one transaction in catalog order.
func evaluateAll(rules []policy.Rule, txn transactions.Transaction) []policy.Violation {
	var out []policy.Violation
	for _, rule := range rules {
		if v := policy.Evaluate(rule, txn); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// evaluateParallel fans transaction indices out to a bounded worker
// pool. Workers write only their own slot, so no ordering is lost.
func (v *Validator) evaluateParallel(ctx context.Context, rules []policy.Rule, txns []transactions.Transaction, perTxn [][]policy.Violation) {
	workers := v.workers
	if workers > len(txns) {
		workers = len(txns)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				perTxn[i] = evaluateAll(rules, txns[i])
			}
		}()
	}

	for i := range txns {
		select {
		case indices <- i:
		case <-ctx.Done():
			// Abandoned run: stop feeding work. Evaluations are cheap
			// and side-effect-free, so partial results are simply
			// discarded by the caller.
			close(indices)
			wg.Wait()
			return
		}
	}
	close(indices)
	wg.Wait()
}
