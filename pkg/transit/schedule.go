package transit

import (
	"time"

	"github.com/rs/zerolog"
)

// Status classifies an arrival by comparing its estimated time against
// its scheduled time.
type Status int

const (
	StatusOnTime Status = iota
	StatusEarly
	StatusLate
)

func (s Status) String() string {
	switch s {
	case StatusEarly:
		return "EARLY"
	case StatusLate:
		return "LATE"
	default:
		return "ON TIME"
	}
}

// Classify returns LATE when the estimate slips past the schedule, EARLY
// when it beats it, ON TIME when they match exactly.
func Classify(scheduled, estimated time.Time) Status {
	switch {
	case estimated.After(scheduled):
		return StatusLate
	case estimated.Before(scheduled):
		return StatusEarly
	default:
		return StatusOnTime
	}
}

// The service sends local wall-clock timestamps without a zone offset.
const serviceTimeLayout = "2006-01-02T15:04:05"

// ParseServiceTime parses one of the API's timestamp strings in the local
// time zone.
func ParseServiceTime(value string) (time.Time, error) {
	return time.ParseInLocation(serviceTimeLayout, value, time.Local)
}

// Flatten walks the per-route schedule groups and produces one classified
// Arrival per stop-visit, preserving response order. Entries whose
// timestamps are missing or unparseable are skipped with a diagnostic so
// one bad record never takes down the whole schedule.
func Flatten(routes []RouteSchedule, log zerolog.Logger) []Arrival {
	var arrivals []Arrival

	for _, route := range routes {
		for _, visit := range route.ScheduledStops {
			scheduled, err := ParseServiceTime(visit.Times.Arrival.Scheduled)
			if err != nil {
				log.Error().Err(err).Str("route", route.Route.Number.String()).Msg("skipping entry with bad scheduled time")
				continue
			}

			estimated, err := ParseServiceTime(visit.Times.Arrival.Estimated)
			if err != nil {
				log.Error().Err(err).Str("route", route.Route.Number.String()).Msg("skipping entry with bad estimated time")
				continue
			}

			arrivals = append(arrivals, Arrival{
				RouteNumber: route.Route.Number.String(),
				Scheduled:   scheduled,
				Estimated:   estimated,
				Status:      Classify(scheduled, estimated),
			})
		}
	}

	return arrivals
}
