package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrCoordinatesAreNotConstructed is returned when validating zero-value Coordinates.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"Coordinates must be created via NewCoordinates",
)

// Coordinates is a WGS84 position reported by delivery tracking.
type Coordinates struct {
	latitude  float64
	longitude float64

	isConstructed bool
}

// NewCoordinates validates latitude and longitude ranges.
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return Coordinates{}, errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return Coordinates{}, errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	return Coordinates{latitude: latitude, longitude: longitude, isConstructed: true}, nil
}

func (c Coordinates) Latitude() float64 {
	return c.latitude
}

func (c Coordinates) Longitude() float64 {
	return c.longitude
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.latitude, c.longitude)
}

// Validate returns ErrCoordinatesAreNotConstructed for the zero value.
func (c Coordinates) Validate() error {
	if !c.isConstructed {
		return ErrCoordinatesAreNotConstructed
	}
	return nil
}
