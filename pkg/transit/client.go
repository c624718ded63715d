package transit

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/config"
)

// Client interacts with the Winnipeg Transit API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	retryCount int
	retryDelay time.Duration
	log        zerolog.Logger
}

func NewClient(settings config.Settings, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: settings.HTTPTimeout},
		baseURL:    settings.BaseURL,
		apiKey:     settings.APIKey,
		retryCount: settings.RetryCount,
		retryDelay: settings.RetryDelay,
		log:        log,
	}
}

// getWithRetries performs an HTTP GET, retrying transient failures
// (timeouts, connection errors, 5xx) with a fixed delay up to the
// configured attempt count. Client errors (4xx) abort immediately; the
// request will not get better by repeating it. Deliberately no exponential
// backoff or jitter, a single interactive call does not need them.
func (c *Client) getWithRetries(reqURL string) ([]byte, error) {
	c.log.Info().Str("url", reqURL).Msg("fetching data")

	operation := func() ([]byte, error) {
		req, err := http.NewRequest(http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		// Public APIs often block default Go user agents
		req.Header.Set("User-Agent", "winnipeg-transit-app/1.0 (https://github.com/PhillipJBridgeman/winnipeg-transit-app)")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Timeouts and connection errors are worth another attempt
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("transient status code: %d", resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, backoff.Permanent(fmt.Errorf("request failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return body, nil
	}

	attempt := 0
	notify := func(err error, wait time.Duration) {
		attempt++
		c.log.Error().Err(err).Int("attempt", attempt).Msg("network error, will retry")
		fmt.Printf("Network error: %v. Retrying in %s... (attempt %d/%d)\n", err, wait, attempt, c.retryCount)
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.retryCount-1))

	body, err := backoff.RetryNotifyWithData(operation, policy, notify)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to fetch data")
		return nil, fmt.Errorf("failed after %d attempts: %w", attempt+1, err)
	}

	c.log.Info().Msg("data fetched successfully")
	return body, nil
}

// stopsURL builds the geo-bounded stop search URL from a validated query.
func (c *Client) stopsURL(q GeoQuery) string {
	params := url.Values{}
	params.Set("lon", strconv.FormatFloat(q.Longitude, 'f', -1, 64))
	params.Set("lat", strconv.FormatFloat(q.Latitude, 'f', -1, 64))
	params.Set("distance", strconv.Itoa(q.Distance))
	params.Set("api-key", c.apiKey)
	return fmt.Sprintf("%s/stops.json?%s", c.baseURL, params.Encode())
}

// FetchNearbyStops searches for stops around the query point. An empty
// slice with a nil error means the service genuinely found nothing there,
// which is a different outcome than a fetch or decode failure.
func (c *Client) FetchNearbyStops(q GeoQuery) ([]Stop, error) {
	body, err := c.getWithRetries(c.stopsURL(q))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bus stops: %w", err)
	}

	var stopsResp StopsResponse
	if err := json.Unmarshal(body, &stopsResp); err != nil {
		c.log.Error().Err(err).Msg("failed to parse bus stops response")
		return nil, fmt.Errorf("failed to decode stops JSON: %w", err)
	}

	return stopsResp.Stops, nil
}

// FetchStopSchedule gets the upcoming route schedules for a specific stop.
// A response without the expected schedule grouping decodes to an empty
// slice rather than an error; the caller treats that as "nothing to show".
func (c *Client) FetchStopSchedule(stopKey StopKey) ([]RouteSchedule, error) {
	reqURL := fmt.Sprintf("%s/stops/%s/schedule.json?api-key=%s",
		c.baseURL, url.PathEscape(stopKey.String()), url.QueryEscape(c.apiKey))

	body, err := c.getWithRetries(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for stop %s: %w", stopKey, err)
	}

	var schedResp ScheduleResponse
	if err := json.Unmarshal(body, &schedResp); err != nil {
		c.log.Error().Err(err).Msg("failed to parse schedule response")
		return nil, fmt.Errorf("failed to decode schedule JSON: %w", err)
	}

	return schedResp.StopSchedule.RouteSchedules, nil
}
