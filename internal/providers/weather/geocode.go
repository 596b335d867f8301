package weather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/providers/fetch"
	"googlemaps.github.io/maps"
)

var ErrPlaceNotFound = errors.New("place not found")

const openMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// Geocoder resolves a place name and names itself for provenance notes.
type Geocoder interface {
	core.Geocoder
	Name() string
}

type OpenMeteoGeocoder struct {
	fetcher *fetch.Fetcher
	baseURL string
}

func NewOpenMeteoGeocoder(fetcher *fetch.Fetcher) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{fetcher: fetcher, baseURL: openMeteoGeocodingURL}
}

func (g *OpenMeteoGeocoder) Name() string { return "Open-Meteo" }

func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, place string) (core.Place, error) {
	query := url.Values{
		"name":     {place},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	}

	var resp struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := g.fetcher.GetJSON(ctx, g.baseURL, query, nil, &resp); err != nil {
		return core.Place{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	if len(resp.Results) == 0 {
		return core.Place{}, fmt.Errorf("geocode %q: %w", place, ErrPlaceNotFound)
	}

	r := resp.Results[0]
	name := r.Name
	if name == "" {
		name = place
	}
	return core.Place{Name: name, Lat: r.Latitude, Lon: r.Longitude}, nil
}

type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string, opts ...maps.ClientOption) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

func (g *GoogleGeocoder) Name() string { return "Google Maps" }

func (g *GoogleGeocoder) Geocode(ctx context.Context, place string) (core.Place, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  place,
		Language: "en",
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return core.Place{}, fmt.Errorf("geocode %q: %w", place, ErrPlaceNotFound)
		}
		return core.Place{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	if len(results) == 0 {
		return core.Place{}, fmt.Errorf("geocode %q: %w", place, ErrPlaceNotFound)
	}

	r := results[0]
	return core.Place{
		Name: placeName(r, place),
		Lat:  r.Geometry.Location.Lat,
		Lon:  r.Geometry.Location.Lng,
	}, nil
}

// placeName prefers the locality, then the first component, then the formatted address.
func placeName(r maps.GeocodingResult, fallback string) string {
	for _, c := range r.AddressComponents {
		for _, t := range c.Types {
			if t == "locality" {
				return c.LongName
			}
		}
	}
	if len(r.AddressComponents) > 0 && r.AddressComponents[0].LongName != "" {
		return r.AddressComponents[0].LongName
	}
	if r.FormattedAddress != "" {
		return r.FormattedAddress
	}
	return fallback
}
