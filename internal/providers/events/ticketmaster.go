// Package events looks up ticketed events for a place and month on the Ticketmaster Discovery API.
package events

import (
	"context"
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/providers/fetch"
	"github.com/sandevgo/tripsmith/internal/service/entities"
	"github.com/sandevgo/tripsmith/pkg/log"
)

const (
	discoveryURL = "https://app.ticketmaster.com/discovery/v2/events.json"
	pageSize     = 10
	maxNoteRunes = 200
)

// Country hints help the city filter disambiguate (Paris, France vs Paris, Texas).
var cityCountry = map[string]string{
	"london":    "GB",
	"amsterdam": "NL",
	"prague":    "CZ",
	"paris":     "FR",
	"berlin":    "DE",
	"rome":      "IT",
	"new york":  "US",
	"tokyo":     "JP",
	"athens":    "GR",
	"sofia":     "BG",
	"bucharest": "RO",
}

type Ticketmaster struct {
	fetcher *fetch.Fetcher
	apiKey  string
	baseURL string
	policy  *bluemonday.Policy
	now     func() time.Time
}

func NewTicketmaster(fetcher *fetch.Fetcher, apiKey string) *Ticketmaster {
	return &Ticketmaster{
		fetcher: fetcher,
		apiKey:  apiKey,
		baseURL: discoveryURL,
		policy:  bluemonday.StrictPolicy(),
		now:     time.Now,
	}
}

type discoveryResponse struct {
	Embedded struct {
		Events []struct {
			Name     string `json:"name"`
			URL      string `json:"url"`
			Info     string `json:"info"`
			Embedded struct {
				Venues []struct {
					Name string `json:"name"`
				} `json:"venues"`
			} `json:"_embedded"`
			Dates struct {
				Start struct {
					LocalDate string `json:"localDate"`
				} `json:"start"`
			} `json:"dates"`
		} `json:"events"`
	} `json:"_embedded"`
}

// Events searches the month window with a city filter first and a keyword search second.
// Without an API key, or on any failure, the result is empty.
func (t *Ticketmaster) Events(ctx context.Context, place, when string, year int) []core.Event {
	logger := log.FromCtx(ctx)

	if t.apiKey == "" {
		logger.Debug().Msg("events: no ticketmaster key configured")
		return []core.Event{}
	}

	city := strings.TrimSpace(place)
	month, whenYear, ok := entities.ParseWhen(when)
	if city == "" || !ok {
		logger.Debug().Str("city", city).Str("when", when).Msg("events: unusable inputs")
		return []core.Event{}
	}
	if year == 0 {
		year = whenYear
	}

	start, end := entities.MonthRange(entities.ChooseYear(month, year, t.now()), month)
	base := url.Values{
		"apikey":        {t.apiKey},
		"startDateTime": {start.Format("2006-01-02T15:04:05Z")},
		"endDateTime":   {end.Format("2006-01-02T15:04:05Z")},
		"size":          {strconv.Itoa(pageSize)},
		"sort":          {"date,asc"},
		"locale":        {"*"},
	}
	if cc, ok := cityCountry[strings.ToLower(city)]; ok {
		base.Set("countryCode", cc)
	}

	byCity := cloneValues(base)
	byCity.Set("city", city)
	if found := t.search(ctx, byCity, city); len(found) > 0 {
		return found
	}

	byKeyword := cloneValues(base)
	byKeyword.Set("keyword", city)
	return t.search(ctx, byKeyword, city)
}

func (t *Ticketmaster) search(ctx context.Context, query url.Values, city string) []core.Event {
	var resp discoveryResponse
	if err := t.fetcher.GetJSON(ctx, t.baseURL, query, nil, &resp); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("city", city).Msg("events: discovery query failed")
		return []core.Event{}
	}

	out := make([]core.Event, 0, len(resp.Embedded.Events))
	for _, e := range resp.Embedded.Events {
		where := city
		if len(e.Embedded.Venues) > 0 && strings.TrimSpace(e.Embedded.Venues[0].Name) != "" {
			where = t.clean(e.Embedded.Venues[0].Name)
		}
		out = append(out, core.Event{
			Title:    t.clean(e.Name),
			Where:    where,
			DateHint: e.Dates.Start.LocalDate,
			URL:      e.URL,
			Notes:    truncateRunes(fetch.HTMLToText(e.Info), maxNoteRunes),
		})
	}
	return out
}

// clean strips any markup a promoter left in a display string.
// Sanitize escapes entities for HTML output; the result here is plain text.
func (t *Ticketmaster) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(t.policy.Sanitize(s)))
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
