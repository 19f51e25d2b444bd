package tz

import (
	"github.com/pkg/errors"

	"github.com/calclock/calclock/temporal"
)

// A Chain consults its providers in order and answers with the first one
// that knows the zone. Errors other than unknown zone stop the search.
type Chain []temporal.ZoneProvider

var _ temporal.ZoneProvider = Chain(nil)

// Resolve implements temporal.ZoneProvider.
func (c Chain) Resolve(ms int64, zone string) (temporal.ZoneFields, error) {
	for _, p := range c {
		f, err := p.Resolve(ms, zone)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, temporal.ErrUnknownZone) {
			return temporal.ZoneFields{}, err
		}
	}
	return temporal.ZoneFields{}, errors.Wrapf(temporal.ErrUnknownZone, "%q in none of %d providers", zone, len(c))
}
