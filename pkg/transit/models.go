package transit

import (
	"fmt"
	"strings"
	"time"
)

// GeoQuery is a validated stop-search request: a point plus a radius in
// meters. Built once from user input and never modified afterwards.
type GeoQuery struct {
	Longitude float64
	Latitude  float64
	Distance  int
}

// Validate checks the coordinate ranges and the radius. The caller is
// expected to re-prompt until this returns nil.
func (q GeoQuery) Validate() error {
	if q.Longitude < -180 || q.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if q.Latitude < -90 || q.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if q.Distance <= 0 {
		return fmt.Errorf("distance must be a positive number")
	}
	return nil
}

// Stop is a single transit stop returned by the stop search.
type Stop struct {
	Key       StopKey `json:"key"`
	Name      string  `json:"name"`
	Direction string  `json:"direction,omitempty"`
}

// StopKey is the opaque stop identifier. The API serves it as a JSON
// number but it is only ever used as a path segment, so it decodes into
// a string either way.
type StopKey string

func (k *StopKey) UnmarshalJSON(data []byte) error {
	*k = StopKey(strings.Trim(string(data), `"`))
	return nil
}

func (k StopKey) String() string { return string(k) }

// StopsResponse represents the envelope returned by /stops.json
type StopsResponse struct {
	Stops []Stop `json:"stops"`
}

// ScheduleResponse represents the envelope returned by /stops/{id}/schedule.json
type ScheduleResponse struct {
	StopSchedule StopSchedule `json:"stop-schedule"`
}

// StopSchedule groups the upcoming arrivals of one stop by route.
type StopSchedule struct {
	Stop           Stop            `json:"stop"`
	RouteSchedules []RouteSchedule `json:"route-schedules"`
}

// RouteSchedule is the block of scheduled stop-visits for a single route.
type RouteSchedule struct {
	Route          Route           `json:"route"`
	ScheduledStops []ScheduledStop `json:"scheduled-stops"`
}

// Route identifies a bus route. Numbered routes arrive as JSON numbers,
// named ones (e.g. "BLUE") as strings, so Number gets the same lenient
// decoding as StopKey.
type Route struct {
	Number RouteNumber `json:"number"`
	Name   string      `json:"name,omitempty"`
}

type RouteNumber string

func (n *RouteNumber) UnmarshalJSON(data []byte) error {
	*n = RouteNumber(strings.Trim(string(data), `"`))
	return nil
}

func (n RouteNumber) String() string { return string(n) }

// ScheduledStop is one stop-visit with its arrival time pair.
type ScheduledStop struct {
	Times StopTimes `json:"times"`
}

type StopTimes struct {
	Arrival ArrivalTimes `json:"arrival"`
}

// ArrivalTimes carries the raw timestamp strings from the service. They
// stay strings until Flatten parses them, so one malformed value only
// costs its own entry.
type ArrivalTimes struct {
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
}

// Arrival is a flattened, parsed schedule entry ready for display.
type Arrival struct {
	RouteNumber string
	Scheduled   time.Time
	Estimated   time.Time
	Status      Status
}

// FormatStopChoice renders one line of the enumerated stop list shown to
// the user before selection.
func FormatStopChoice(index int, stop Stop) string {
	return fmt.Sprintf("%d: %s (ID: %s)", index+1, stop.Name, stop.Key)
}
