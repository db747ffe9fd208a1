package contract

import (
	"context"
)

// IHasher hashes and verifies passwords.
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
}

type IUUIDGenerator interface {
	NewUUID() string
}

// IRandomGenerator produces unguessable strings such as OAuth state values.
type IRandomGenerator interface {
	GenerateRandomToken(length int) (string, error)
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// IGeocoder resolves a free-form address to coordinates.
type IGeocoder interface {
	Geocode(ctx context.Context, address string) (*GeoPoint, error)
}
