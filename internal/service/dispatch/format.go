package dispatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/tripsmith/internal/core"
)

const maxListedEvents = 3

func FormatWeather(w core.WeatherSummary, ok bool) string {
	if !ok {
		return "No reliable climate data found."
	}
	month := fmt.Sprint(w.Month)
	if w.Month >= 1 && w.Month <= 12 {
		month = time.Month(w.Month).String()
	}
	return fmt.Sprintf("%s in %s typically averages around %s °C with %s mm of rain (climate normals).",
		w.Place, month, optional(w.AvgTempC), optional(w.RainMM))
}

func FormatBudget(b core.BudgetEstimate) string {
	return fmt.Sprintf("From %s to %s: flights ≈$%d + $%d/day × %d days ≈ $%d (±10%%).",
		b.Origin, b.RegionBucket, b.Flight, b.PerDayApplied, b.Days, b.EstimateTotal)
}

func FormatEvents(events []core.Event) string {
	if len(events) == 0 {
		return "No events found for that time/place."
	}
	if len(events) > maxListedEvents {
		events = events[:maxListedEvents]
	}

	var sb strings.Builder
	sb.WriteString("Upcoming events:")
	for _, e := range events {
		date := e.DateHint
		if date == "" {
			date = "date tba"
		}
		fmt.Fprintf(&sb, "\n- %s (%s at %s)", e.Title, date, e.Where)
	}
	return sb.String()
}

func optional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *v)
}
