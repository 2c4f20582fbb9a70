// Package registry builds source adapters from configuration.
// This package is separate from pkg/sources to avoid circular dependencies.
package registry

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/grantmap/internal/sources/bizinfo"
	"github.com/agentstation/grantmap/internal/sources/kstartup"
	"github.com/agentstation/grantmap/internal/transport"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/sources"
)

// Settings carries everything an adapter constructor needs.
type Settings struct {
	Bizinfo         sources.Config
	BizinfoViewsURL string
	KStartup        sources.Config

	HTTPTimeout       time.Duration
	RequestsPerSecond float64

	Logger *zerolog.Logger
	Now    func() time.Time
}

func (s Settings) transport(id sources.ID) *transport.Client {
	return transport.New(string(id),
		transport.WithTimeout(s.HTTPTimeout),
		transport.WithRateLimit(s.RequestsPerSecond, 1),
	)
}

// registry maps source IDs to their adapter constructors.
var registry = map[sources.ID]func(Settings) sources.Source{
	sources.BizinfoID: func(s Settings) sources.Source {
		return bizinfo.NewClient(s.Bizinfo,
			bizinfo.WithTransport(s.transport(sources.BizinfoID)),
			bizinfo.WithViewsURL(s.BizinfoViewsURL),
			bizinfo.WithLogger(s.Logger),
			bizinfo.WithClock(s.Now),
		)
	},
	sources.KStartupID: func(s Settings) sources.Source {
		return kstartup.NewClient(s.KStartup,
			kstartup.WithTransport(s.transport(sources.KStartupID)),
			kstartup.WithLogger(s.Logger),
			kstartup.WithClock(s.Now),
		)
	},
}

// Get creates a new adapter for id.
func Get(id sources.ID, s Settings) (sources.Source, error) {
	newSource, ok := registry[id]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "source",
			Value:   id,
			Message: fmt.Sprintf("unsupported source: %s", id),
		}
	}
	return newSource(s), nil
}

// Has checks if a source ID has an adapter.
func Has(id sources.ID) bool {
	_, ok := registry[id]
	return ok
}

// List returns every registered source in merge order.
func List() []sources.ID {
	ids := make([]sources.ID, 0, len(registry))
	for _, id := range sources.IDs() {
		if Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Build creates adapters for ids in merge order, or for every registered
// source when ids is empty.
func Build(s Settings, ids ...sources.ID) ([]sources.Source, error) {
	for _, id := range ids {
		if !Has(id) {
			return nil, &errors.ValidationError{
				Field:   "source",
				Value:   id,
				Message: fmt.Sprintf("unsupported source: %s", id),
			}
		}
	}

	var out []sources.Source
	for _, id := range List() {
		if len(ids) > 0 && !slices.Contains(ids, id) {
			continue
		}
		src, err := Get(id, s)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}
