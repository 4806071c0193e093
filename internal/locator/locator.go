// Package locator performs best-effort, one-shot lookups of the device's
// coordinates.
package locator

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/racewatch/racewatch/internal/models"
)

var (
	// ErrUnavailable means no location capability exists at all.
	ErrUnavailable = errors.New("location service unavailable")

	// ErrDenied means the capability exists but refused the lookup.
	ErrDenied = errors.New("location lookup denied")
)

// Coordinates are decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Labels returns the coordinates truncated to three fraction digits.
func (c Coordinates) Labels() (lat, lon string) {
	return models.FormatCoordinate(c.Latitude), models.FormatCoordinate(c.Longitude)
}

// Locator looks up the current position once.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Static always reports the same position.
type Static struct {
	Coords Coordinates
}

// Locate returns the configured coordinates.
func (s Static) Locate(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	return s.Coords, nil
}

// New builds the locator selected in cfg. It returns nil for provider
// "none", meaning location capability is unavailable.
func New(cfg models.LocatorConfig) (Locator, error) {
	switch cfg.Provider {
	case models.LocatorNone, "":
		return nil, nil
	case models.LocatorStatic:
		return Static{Coords: Coordinates{Latitude: cfg.Latitude, Longitude: cfg.Longitude}}, nil
	case models.LocatorIPAPI:
		return NewIPAPI(cfg.Endpoint, nil), nil
	default:
		return nil, fmt.Errorf("unknown locator provider %q", cfg.Provider)
	}
}

// Resolver wraps a Locator with the callback contract used by the
// stopwatch: no capability means neither callback fires, a failed lookup is
// logged and reported through onFailure, and a success reports truncated
// coordinate labels. Lookups are never retried.
type Resolver struct {
	locator Locator
	logger  log.FieldLogger
}

// NewResolver creates a resolver. loc may be nil.
func NewResolver(loc Locator, logger log.FieldLogger) *Resolver {
	return &Resolver{
		locator: loc,
		logger:  logger.WithField("component", "locator"),
	}
}

// Available reports whether a location capability is configured.
func (r *Resolver) Available() bool {
	return r != nil && r.locator != nil
}

// Resolve performs one lookup and blocks until it completes.
func (r *Resolver) Resolve(ctx context.Context, onSuccess func(lat, lon string), onFailure func()) {
	if !r.Available() {
		r.logger.Debug("No location service, skipping lookup")
		return
	}

	coords, err := r.locator.Locate(ctx)
	if errors.Is(err, ErrUnavailable) {
		r.logger.Debug("Location service unavailable, skipping lookup")
		return
	}
	if err != nil {
		r.logger.WithError(err).Info("No geolocation allowed")
		if onFailure != nil {
			onFailure()
		}
		return
	}

	lat, lon := coords.Labels()
	if onSuccess != nil {
		onSuccess(lat, lon)
	}
}
