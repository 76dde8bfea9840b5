package transactions

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Seed data pools for the in-memory development store. Countries overlap
// deliberately with the high-risk jurisdiction list so seeded data
// produces violations.
var (
	seedSuppliers = []string{
		"Acme Industrial Supplies", "Global Trade Partners", "Nordwind Logistics",
		"Meridian Consulting Group", "Pacific Rim Imports", "Atlas Manufacturing",
		"Crestline Materials", "Veritas Advisory", "Summit Freight Services",
		"Ironclad Security Ltd", "Bluewater Shipping", "Keystone Components",
		"Orion Technical Services", "Redstone Construction", "Silverline Textiles",
		"Cascade Energy Solutions", "Pinnacle Office Systems", "Harbor Point Trading",
		"Evergreen Agricultural Co", "Zenith Pharmaceuticals",
	}

	seedRegularCountries = []string{
		"Germany", "France", "Netherlands", "USA", "United Kingdom",
		"Spain", "Italy", "Poland", "Sweden", "Japan", "Canada", "Switzerland",
	}

	seedHighRiskCountries = []string{
		"Russia", "Iran", "Myanmar", "Belarus", "Venezuela", "Syria",
	}

	seedDescriptions = []string{
		"Raw materials purchase", "Consulting services Q%d", "Equipment maintenance",
		"Software licensing", "Freight and customs", "Facility lease payment",
		"Marketing services", "Legal retainer", "Spare parts order", "Contract labor",
	}
)

// Seed fills the store with n deterministic mock transactions spread over
// the 365 days before now. The same seed value always produces the same
// data set.
func Seed(store *MemoryStore, n int, now time.Time, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	txns := make([]Transaction, 0, n)

	for i := 0; i < n; i++ {
		date := now.AddDate(0, 0, -rng.Intn(365)).UTC()
		txns = append(txns, Transaction{
			ID:              fmt.Sprintf("TXN-%s-%06d", date.Format("20060102"), i+1),
			SupplierName:    seedSuppliers[rng.Intn(len(seedSuppliers))],
			SupplierCountry: seedCountry(rng),
			Amount:          seedAmount(rng),
			Currency:        "EUR",
			Date:            date,
			PaymentMethod:   seedMethod(rng),
			RiskCategory:    seedRisk(rng),
			Description:     fmt.Sprintf(seedDescriptions[rng.Intn(len(seedDescriptions))], rng.Intn(4)+1),
			CreatedAt:       now.UTC(),
		})
	}

	store.Put(txns...)
}

// seedAmount skews low: most payments are routine, a small tail is large
// enough to cross reporting thresholds.
func seedAmount(rng *rand.Rand) decimal.Decimal {
	var v float64
	switch p := rng.Float64(); {
	case p < 0.05: // large payments over the high-value threshold
		v = 100_000 + rng.Float64()*400_000
	case p < 0.20: // mid-range payments
		v = 5_000 + rng.Float64()*95_000
	default: // routine payments
		v = 100 + rng.Float64()*4_900
	}
	return decimal.NewFromFloat(v).Round(2)
}

func seedCountry(rng *rand.Rand) string {
	// Roughly 8% of suppliers sit in high-risk jurisdictions.
	if rng.Float64() < 0.08 {
		return seedHighRiskCountries[rng.Intn(len(seedHighRiskCountries))]
	}
	return seedRegularCountries[rng.Intn(len(seedRegularCountries))]
}

func seedMethod(rng *rand.Rand) string {
	switch p := rng.Float64(); {
	case p < 0.70:
		return MethodWire
	case p < 0.90:
		return MethodCheck
	default:
		return MethodCash
	}
}

func seedRisk(rng *rand.Rand) string {
	switch p := rng.Float64(); {
	case p < 0.60:
		return RiskLow
	case p < 0.85:
		return RiskMedium
	case p < 0.96:
		return RiskHigh
	default:
		return RiskPEP
	}
}
