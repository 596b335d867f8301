// Package budget estimates trip cost from fixed regional price bands.
package budget

import (
	"math"
	"strings"

	"github.com/sandevgo/tripsmith/internal/core"
)

const (
	fallbackBucket = "eastern europe"
	disclaimer     = "Heuristic estimate based on regional price bands and a rough flight cost from Tel Aviv. " +
		"Real prices vary by dates, booking timing, and hotel/airline choices."
)

type band struct {
	perDay int
	flight int
}

// Flight prices are round trips from Tel Aviv in USD.
var bands = map[string]band{
	"western europe": {perDay: 160, flight: 450},
	"eastern europe": {perDay: 120, flight: 350},
	"greece":         {perDay: 110, flight: 300},
	"cyprus":         {perDay: 110, flight: 200},
	"bulgaria":       {perDay: 90, flight: 300},
	"romania":        {perDay: 95, flight: 300},
	"slovenia":       {perDay: 100, flight: 350},
	"japan":          {perDay: 160, flight: 1000},
	"southeast asia": {perDay: 85, flight: 900},
}

var aliases = map[string]string{
	"prague":   "eastern europe",
	"budapest": "eastern europe",
	"krakow":   "eastern europe",
	"baltics":  "eastern europe",

	"vienna":    "western europe",
	"barcelona": "western europe",
	"spain":     "western europe",
	"lisbon":    "western europe",
	"portugal":  "western europe",
	"amsterdam": "western europe",
	"paris":     "western europe",
	"rome":      "western europe",
	"berlin":    "western europe",
	"madrid":    "western europe",
	"porto":     "western europe",

	"sofia":     "bulgaria",
	"plovdiv":   "bulgaria",
	"bucharest": "romania",
	"cluj":      "romania",

	"athens":   "greece",
	"crete":    "greece",
	"rhodes":   "greece",
	"limassol": "cyprus",
	"larnaca":  "cyprus",
	"paphos":   "cyprus",

	"ljubljana": "slovenia",

	"tokyo": "japan",
	"kyoto": "japan",

	"bangkok": "southeast asia",
	"bali":    "southeast asia",
	"hanoi":   "southeast asia",
}

// Destinations that are never priced directly. They fall back to the default band.
var excluded = map[string]struct{}{
	"turkey":   {},
	"istanbul": {},
	"antalya":  {},
	"izmir":    {},
}

var multipliers = map[core.ComfortTier]float64{
	core.ComfortBudget:   0.8,
	core.ComfortStandard: 1.0,
	core.ComfortComfort:  1.3,
}

// Estimator is deterministic and safe for concurrent use.
type Estimator struct{}

func NewEstimator() *Estimator {
	return &Estimator{}
}

// ResolveBucket maps a city or region label onto a pricing bucket.
func ResolveBucket(regionOrCity string) string {
	key := strings.ToLower(strings.TrimSpace(regionOrCity))
	if _, ok := excluded[key]; ok {
		return fallbackBucket
	}
	if _, ok := bands[key]; ok {
		return key
	}
	if bucket, ok := aliases[key]; ok {
		return bucket
	}
	return fallbackBucket
}

// ParseComfort accepts a tier name in any case; unknown or empty means standard.
func ParseComfort(s string) core.ComfortTier {
	tier := core.ComfortTier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := multipliers[tier]; ok {
		return tier
	}
	return core.ComfortStandard
}

func (e *Estimator) Estimate(regionOrCity string, days int, origin string, tier core.ComfortTier) core.BudgetEstimate {
	if days < 1 {
		days = 1
	}
	tier = ParseComfort(string(tier))

	bucket := ResolveBucket(regionOrCity)
	b := bands[bucket]
	mult := multipliers[tier]

	perDay := int(math.RoundToEven(float64(b.perDay) * mult))
	variable := perDay * days
	total := b.flight + variable

	return core.BudgetEstimate{
		Origin:            origin,
		RegionBucket:      bucket,
		Days:              days,
		Flight:            b.flight,
		PerDayBase:        b.perDay,
		ComfortLevel:      tier,
		ComfortMultiplier: mult,
		PerDayApplied:     perDay,
		EstimateTotal:     total,
		RangeLow:          int(float64(total) * 0.9),
		RangeHigh:         int(float64(total) * 1.1),
		Breakdown: core.BudgetBreakdown{
			LodgingFoodActivities: variable,
			Flight:                b.flight,
		},
		Disclaimer: disclaimer,
	}
}
