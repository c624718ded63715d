// Manual smoke harness: serves canned Winnipeg Transit API fixtures on a
// local port and runs the fetch pipeline against them, so the client can
// be exercised end to end without a real API key or network access.
package main

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/config"
	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/transit"
)

const stopsFixture = `{
	"stops": [
		{"key": 10064, "name": "Main & Broadway", "direction": "Southbound"},
		{"key": 10065, "name": "Main & Assiniboine", "direction": "Northbound"}
	]
}`

const scheduleFixture = `{
	"stop-schedule": {
		"stop": {"key": 10064, "name": "Main & Broadway"},
		"route-schedules": [
			{
				"route": {"number": 21},
				"scheduled-stops": [
					{"times": {"arrival": {
						"scheduled": "2024-08-27T10:00:00",
						"estimated": "2024-08-27T10:05:00"
					}}}
				]
			},
			{
				"route": {"number": "BLUE"},
				"scheduled-stops": [
					{"times": {"arrival": {
						"scheduled": "2024-08-27T10:10:00",
						"estimated": "2024-08-27T10:08:00"
					}}}
				]
			}
		]
	}
}`

func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("/stops.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Printf("[mock api] stop search: %s\n", r.URL.RawQuery)
		fmt.Fprint(w, stopsFixture)
	})
	mux.HandleFunc("/stops/10064/schedule.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Println("[mock api] schedule lookup for stop 10064")
		fmt.Fprint(w, scheduleFixture)
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	go http.Serve(listener, mux)

	baseURL := fmt.Sprintf("http://%s", listener.Addr())
	fmt.Println("Mock Winnipeg Transit API listening at", baseURL)

	client := transit.NewClient(config.Settings{
		APIKey:      "mock-key",
		BaseURL:     baseURL,
		RetryCount:  3,
		RetryDelay:  time.Second,
		HTTPTimeout: 5 * time.Second,
	}, zerolog.Nop())

	stops, err := client.FetchNearbyStops(transit.GeoQuery{Longitude: -97.1375, Latitude: 49.8998, Distance: 500})
	if err != nil {
		fmt.Println("Error fetching stops:", err)
		return
	}

	fmt.Println("\nAvailable bus stops:")
	for i, stop := range stops {
		fmt.Println(transit.FormatStopChoice(i, stop))
	}

	routes, err := client.FetchStopSchedule(stops[0].Key)
	if err != nil {
		fmt.Println("Error fetching schedule:", err)
		return
	}

	fmt.Printf("\nBus schedules for %s:\n", stops[0].Name)
	for _, arrival := range transit.Flatten(routes, zerolog.Nop()) {
		fmt.Printf("Route: %s | Scheduled: %s | Estimated: %s [%s]\n",
			arrival.RouteNumber,
			arrival.Scheduled.Format("15:04:05"),
			arrival.Estimated.Format("15:04:05"),
			arrival.Status)
	}
}
