// Package geocoder resolves listing addresses with the Google Geocoding API.
package geocoder

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
)

var ErrNoResults = errors.New("address not found")

// geocodingClient is the part of *maps.Client used here.
type geocodingClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

type GoogleMapsGeocoder struct {
	client geocodingClient
}

var _ contract.IGeocoder = (*GoogleMapsGeocoder)(nil)

func NewGoogleMapsGeocoder(apiKey string) (*GoogleMapsGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}
	return &GoogleMapsGeocoder{client: client}, nil
}

// Geocode returns the location of the best match for address.
func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, address string) (*contract.GeoPoint, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("geocode %q: %w", address, ErrNoResults)
	}
	loc := results[0].Geometry.Location
	return &contract.GeoPoint{Lat: loc.Lat, Lng: loc.Lng}, nil
}
