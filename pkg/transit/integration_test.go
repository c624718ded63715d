package transit

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/config"
)

func newIntegrationClient(t *testing.T) *Client {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: API_KEY is not set")
	}

	return NewClient(config.Settings{
		APIKey:      apiKey,
		BaseURL:     "https://api.winnipegtransit.com/v3",
		RetryCount:  3,
		RetryDelay:  2 * time.Second,
		HTTPTimeout: 10 * time.Second,
	}, zerolog.Nop())
}

func TestIntegration_FetchNearbyStops(t *testing.T) {
	client := newIntegrationClient(t)

	// Portage & Main, downtown Winnipeg. There are always stops here.
	stops, err := client.FetchNearbyStops(GeoQuery{Longitude: -97.1385, Latitude: 49.8955, Distance: 500})
	if err != nil {
		t.Fatalf("Failed to fetch stops: %v", err)
	}

	if len(stops) == 0 {
		t.Fatal("Expected at least one stop downtown, got 0")
	}

	for _, stop := range stops {
		if stop.Key == "" {
			t.Errorf("Stop missing key: %+v", stop)
		}
		if stop.Name == "" {
			t.Errorf("Stop missing name: %+v", stop)
		}
	}
}

func TestIntegration_FetchStopSchedule(t *testing.T) {
	client := newIntegrationClient(t)

	stops, err := client.FetchNearbyStops(GeoQuery{Longitude: -97.1385, Latitude: 49.8955, Distance: 500})
	if err != nil {
		t.Fatalf("Failed to fetch stops: %v", err)
	}
	if len(stops) == 0 {
		t.Fatal("Expected at least one stop downtown, got 0")
	}

	routes, err := client.FetchStopSchedule(stops[0].Key)
	if err != nil {
		t.Fatalf("Failed to fetch schedule for stop %s: %v", stops[0].Key, err)
	}

	if len(routes) == 0 {
		t.Logf("Got 0 route schedules for stop %s. Note: this can happen late at night.", stops[0].Key)
		return
	}

	arrivals := Flatten(routes, zerolog.Nop())
	for _, a := range arrivals {
		if a.RouteNumber == "" {
			t.Errorf("Arrival missing route number: %+v", a)
		}
		if a.Scheduled.IsZero() || a.Estimated.IsZero() {
			t.Errorf("Arrival with zero timestamp: %+v", a)
		}
	}
}
