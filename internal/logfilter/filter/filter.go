// Package filter implements the logger-name filter: events whose logger name
// contains a marker substring are denied, everything else is accepted.
package filter

import (
	"errors"
	"strings"

	"github.com/haukened/lognamefilter/internal/logfilter/domain"
)

// DefaultMarker is the substring denied when no other marker is configured.
const DefaultMarker = "sag"

// ErrEmptyMarker is returned by New when the marker is empty.
var ErrEmptyMarker = errors.New("marker substring must not be empty")

// LoggerNameFilter denies log events whose logger name contains a fixed marker.
// The marker is set at construction and never changes, so a filter can be
// shared between goroutines without locking.
type LoggerNameFilter struct {
	marker string
}

// New returns a filter for the given marker. The marker is matched verbatim:
// it is neither trimmed nor case folded.
func New(marker string) (*LoggerNameFilter, error) {
	if marker == "" {
		return nil, ErrEmptyMarker
	}
	return &LoggerNameFilter{marker: marker}, nil
}

// Default returns a filter using DefaultMarker.
func Default() *LoggerNameFilter {
	return &LoggerNameFilter{marker: DefaultMarker}
}

// Marker returns the substring this filter denies.
func (f *LoggerNameFilter) Marker() string { return f.marker }

// Decide classifies a single event. A nil event has no logger name and is accepted.
// So is an event whose LoggerName panics, typed nil pointers included: a broken
// event must not take down the logging pipeline.
func (f *LoggerNameFilter) Decide(event domain.LogEvent) (d domain.Decision) {
	if event == nil {
		return domain.Accept
	}
	defer func() {
		if recover() != nil {
			d = domain.Accept
		}
	}()
	return f.DecideName(event.LoggerName())
}

// DecideName classifies a bare logger name.
func (f *LoggerNameFilter) DecideName(name string) domain.Decision {
	if strings.Contains(name, f.marker) {
		return domain.Deny
	}
	return domain.Accept
}
