package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sandevgo/tripsmith/internal/providers/fetch"
)

const (
	normalsStart = 1991
	normalsEnd   = 2020

	meteostatURL        = "https://meteostat.p.rapidapi.com/point/normals"
	meteostatHost       = "meteostat.p.rapidapi.com"
	openMeteoArchiveURL = "https://archive-api.open-meteo.com/v1/archive"
)

// MonthNormal is one calendar month of a 30 year climate normal.
type MonthNormal struct {
	Month int      `json:"month"`
	TAvg  *float64 `json:"tavg"`
	Prcp  *float64 `json:"prcp"`
}

// NormalsSource returns monthly normals for a coordinate.
type NormalsSource interface {
	Normals(ctx context.Context, lat, lon float64) ([]MonthNormal, error)
	Name() string
}

// Meteostat reads precomputed normals from the Meteostat JSON API.
type Meteostat struct {
	fetcher *fetch.Fetcher
	apiKey  string
	baseURL string
}

func NewMeteostat(fetcher *fetch.Fetcher, apiKey string) *Meteostat {
	return &Meteostat{fetcher: fetcher, apiKey: apiKey, baseURL: meteostatURL}
}

func (m *Meteostat) Name() string { return "Meteostat" }

func (m *Meteostat) Normals(ctx context.Context, lat, lon float64) ([]MonthNormal, error) {
	query := url.Values{
		"lat":   {formatCoord(lat)},
		"lon":   {formatCoord(lon)},
		"start": {strconv.Itoa(normalsStart)},
		"end":   {strconv.Itoa(normalsEnd)},
	}
	headers := map[string]string{
		"x-rapidapi-key":  m.apiKey,
		"x-rapidapi-host": meteostatHost,
	}

	var resp struct {
		Data []MonthNormal `json:"data"`
	}
	if err := m.fetcher.GetJSON(ctx, m.baseURL, query, headers, &resp); err != nil {
		return nil, fmt.Errorf("meteostat normals: %w", err)
	}
	return resp.Data, nil
}

// OpenMeteoArchive derives normals from daily reanalysis data of the reference period.
// It needs no key but downloads thirty years of daily values, so results should be cached.
type OpenMeteoArchive struct {
	fetcher *fetch.Fetcher
	baseURL string
}

func NewOpenMeteoArchive(fetcher *fetch.Fetcher) *OpenMeteoArchive {
	return &OpenMeteoArchive{fetcher: fetcher, baseURL: openMeteoArchiveURL}
}

func (o *OpenMeteoArchive) Name() string { return "Open-Meteo archive" }

func (o *OpenMeteoArchive) Normals(ctx context.Context, lat, lon float64) ([]MonthNormal, error) {
	query := url.Values{
		"latitude":   {formatCoord(lat)},
		"longitude":  {formatCoord(lon)},
		"start_date": {fmt.Sprintf("%d-01-01", normalsStart)},
		"end_date":   {fmt.Sprintf("%d-12-31", normalsEnd)},
		"daily":      {"temperature_2m_mean,precipitation_sum"},
		"timezone":   {"UTC"},
	}

	var resp struct {
		Daily struct {
			Time []string   `json:"time"`
			Temp []*float64 `json:"temperature_2m_mean"`
			Prcp []*float64 `json:"precipitation_sum"`
		} `json:"daily"`
	}
	if err := o.fetcher.GetJSON(ctx, o.baseURL, query, nil, &resp); err != nil {
		return nil, fmt.Errorf("open-meteo archive: %w", err)
	}

	return aggregateDaily(resp.Daily.Time, resp.Daily.Temp, resp.Daily.Prcp), nil
}

// aggregateDaily averages temperature over all days of a calendar month and divides
// the precipitation total by the number of distinct years that reported it.
func aggregateDaily(days []string, temp, prcp []*float64) []MonthNormal {
	type acc struct {
		tempSum   float64
		tempN     int
		prcpSum   float64
		prcpYears map[int]struct{}
	}
	var months [12]acc

	for i, day := range days {
		t, err := time.Parse(time.DateOnly, day)
		if err != nil {
			continue
		}
		a := &months[t.Month()-1]
		if i < len(temp) && temp[i] != nil {
			a.tempSum += *temp[i]
			a.tempN++
		}
		if i < len(prcp) && prcp[i] != nil {
			a.prcpSum += *prcp[i]
			if a.prcpYears == nil {
				a.prcpYears = make(map[int]struct{})
			}
			a.prcpYears[t.Year()] = struct{}{}
		}
	}

	out := make([]MonthNormal, 0, 12)
	for i, a := range months {
		n := MonthNormal{Month: i + 1}
		if a.tempN > 0 {
			v := a.tempSum / float64(a.tempN)
			n.TAvg = &v
		}
		if len(a.prcpYears) > 0 {
			v := a.prcpSum / float64(len(a.prcpYears))
			n.Prcp = &v
		}
		out = append(out, n)
	}
	return out
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
