package transit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

// Walks the whole fetch sequence against one mock service: geo search,
// stop selection, schedule lookup, classification.
func TestPipeline_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stops.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stops": [{"key": 10064, "name": "Main & Broadway"}]}`))
	})
	mux.HandleFunc("/stops/10064/schedule.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
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
					}
				]
			}
		}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL, 3)

	stops, err := client.FetchNearbyStops(GeoQuery{Longitude: -97.1375, Latitude: 49.8998, Distance: 500})
	if err != nil {
		t.Fatalf("stop search failed: %v", err)
	}
	if len(stops) != 1 || stops[0].Name != "Main & Broadway" {
		t.Fatalf("unexpected stop list: %+v", stops)
	}

	stop, ok := SelectStop(stops, "1")
	if !ok {
		t.Fatal("expected selection '1' to resolve the only stop")
	}

	routes, err := client.FetchStopSchedule(stop.Key)
	if err != nil {
		t.Fatalf("schedule fetch failed: %v", err)
	}

	arrivals := Flatten(routes, zerolog.Nop())
	if len(arrivals) != 1 {
		t.Fatalf("expected exactly 1 arrival, got %d", len(arrivals))
	}

	arrival := arrivals[0]
	if arrival.RouteNumber != "21" {
		t.Errorf("expected route 21, got %q", arrival.RouteNumber)
	}
	if arrival.Status != StatusLate {
		t.Errorf("a 5 minute slip must classify as LATE, got %s", arrival.Status)
	}
}
