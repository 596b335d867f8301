// Package weather builds month climate summaries for a place from geocoding and 1991-2020 normals.
package weather

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/service/entities"
	"github.com/sandevgo/tripsmith/internal/storage/cache"
	"github.com/sandevgo/tripsmith/pkg/log"
)

const normalsNote = "Climate normals 1991–2020"

type Service struct {
	geocoder Geocoder
	normals  NormalsSource
	cache    core.Cache
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*Service)

func WithCache(c core.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.ttl = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(geocoder Geocoder, normals NormalsSource, opts ...Option) *Service {
	s := &Service{
		geocoder: geocoder,
		normals:  normals,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary returns the month slice of the climate normals at place.
// Any failure along the way yields false and never a partial record.
func (s *Service) Summary(ctx context.Context, place, when string, year int) (core.WeatherSummary, bool) {
	logger := log.FromCtx(ctx)

	place = strings.TrimSpace(place)
	month, whenYear, ok := entities.ParseWhen(when)
	if place == "" || !ok {
		logger.Debug().Str("place", place).Str("when", when).Msg("weather: unusable inputs")
		return core.WeatherSummary{}, false
	}
	if year == 0 {
		year = whenYear
	}
	yearContext := entities.ChooseYear(month, year, s.now())

	geo, err := s.geocode(ctx, place)
	if err != nil {
		logger.Debug().Err(err).Msg("weather: geocoding failed")
		return core.WeatherSummary{}, false
	}

	normals, err := s.monthlyNormals(ctx, geo)
	if err != nil {
		logger.Debug().Err(err).Str("place", geo.Name).Msg("weather: normals unavailable")
		return core.WeatherSummary{}, false
	}

	for _, n := range normals {
		if n.Month != int(month) {
			continue
		}
		return core.WeatherSummary{
			Place:       geo.Name,
			Month:       int(month),
			YearContext: yearContext,
			AvgTempC:    round1(n.TAvg),
			RainMM:      round1(n.Prcp),
			Notes:       normalsNote,
			Source:      fmt.Sprintf("%s (normals), %s geocoding", s.normals.Name(), s.geocoder.Name()),
		}, true
	}

	logger.Debug().Str("place", geo.Name).Int("month", int(month)).Msg("weather: month missing from normals")
	return core.WeatherSummary{}, false
}

func (s *Service) geocode(ctx context.Context, place string) (core.Place, error) {
	key := "geo:" + strings.ToLower(s.geocoder.Name()) + ":" + strings.ToLower(place)

	var geo core.Place
	if cache.GetJSON(ctx, s.cache, key, &geo) {
		return geo, nil
	}

	geo, err := s.geocoder.Geocode(ctx, place)
	if err != nil {
		return core.Place{}, err
	}
	cache.PutJSON(ctx, s.cache, key, geo, s.ttl)
	return geo, nil
}

func (s *Service) monthlyNormals(ctx context.Context, geo core.Place) ([]MonthNormal, error) {
	key := fmt.Sprintf("normals:%s:%.2f:%.2f", strings.ToLower(s.normals.Name()), geo.Lat, geo.Lon)

	var normals []MonthNormal
	if cache.GetJSON(ctx, s.cache, key, &normals) {
		return normals, nil
	}

	normals, err := s.normals.Normals(ctx, geo.Lat, geo.Lon)
	if err != nil {
		return nil, err
	}
	if len(normals) == 0 {
		return nil, fmt.Errorf("no normals for %.2f,%.2f", geo.Lat, geo.Lon)
	}
	cache.PutJSON(ctx, s.cache, key, normals, s.ttl)
	return normals, nil
}

func round1(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	r := math.Round(*v*10) / 10
	return &r
}
