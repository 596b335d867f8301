package dispatch

import (
	"testing"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/service/budget"
	"github.com/stretchr/testify/assert"
)

func TestFormatWeather(t *testing.T) {
	assert.Equal(t, "No reliable climate data found.", FormatWeather(core.WeatherSummary{}, false))
	assert.Equal(t,
		"Lisbon, Portugal in May typically averages around 19.2 °C with 46.1 mm of rain (climate normals).",
		FormatWeather(lisbon, true))

	dry := lisbon
	dry.RainMM = nil
	assert.Contains(t, FormatWeather(dry, true), "with n/a mm of rain")
}

func TestFormatBudget(t *testing.T) {
	b := budget.NewEstimator().Estimate("Prague", 4, "Tel Aviv", core.ComfortStandard)
	assert.Equal(t, "From Tel Aviv to eastern europe: flights ≈$350 + $120/day × 4 days ≈ $830 (±10%).", FormatBudget(b))
}

func TestFormatEvents(t *testing.T) {
	assert.Equal(t, "No events found for that time/place.", FormatEvents(nil))

	many := append(append([]core.Event{}, gigs...), core.Event{Title: "Third", Where: "Alfama"}, core.Event{Title: "Fourth"})
	assert.Equal(t,
		"Upcoming events:\n"+
			"- Fado & Friends (2027-05-02 at Coliseu)\n"+
			"- Jazz Night (2027-05-09 at Lisbon)\n"+
			"- Third (date tba at Alfama)",
		FormatEvents(many))
}
