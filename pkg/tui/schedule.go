package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/config"
	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/logging"
	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/transit"
)

var (
	lateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	earlyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	onTimeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
)

// RunScheduleTUI launches the interactive stop search and schedule viewer.
func RunScheduleTUI() error {
	settings, err := config.FromEnv()
	if err != nil {
		return err
	}

	log, closeLog, logErr := logging.Open(settings.LogFile)
	if logErr != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Warning: could not open log file: %v", logErr)))
	}
	defer closeLog()

	query, err := runGeoQueryForm()
	if err != nil {
		return err
	}

	client := transit.NewClient(settings, log)

	var stops []transit.Stop
	var fetchErr error

	_ = spinner.New().
		Title("Searching for nearby bus stops...").
		Action(func() {
			stops, fetchErr = client.FetchNearbyStops(query)
		}).
		Run()

	if fetchErr != nil {
		log.Error().Err(fetchErr).Msg("stop search failed")
		fmt.Println(errorStyle.Render("Failed to fetch bus stops."))
		return nil
	}

	if len(stops) == 0 {
		fmt.Println(errorStyle.Render("No bus stops found in the specified radius."))
		return nil
	}

	stop, err := runStopSelectForm(stops)
	if err != nil {
		return err
	}
	log.Info().Str("stop", stop.Key.String()).Msg("bus stop selected")

	var routes []transit.RouteSchedule

	_ = spinner.New().
		Title(fmt.Sprintf("Fetching the schedule for %s...", stop.Name)).
		Action(func() {
			routes, fetchErr = client.FetchStopSchedule(stop.Key)
		}).
		Run()

	if fetchErr != nil || len(routes) == 0 {
		if fetchErr != nil {
			log.Error().Err(fetchErr).Msg("schedule fetch failed")
		}
		fmt.Println(errorStyle.Render("Failed to fetch the bus schedule."))
		return nil
	}

	arrivals := transit.Flatten(routes, log)
	if len(arrivals) == 0 {
		fmt.Println(errorStyle.Render("No upcoming arrivals to display."))
		return nil
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 🚌 Bus schedules for %s ---", displayName(stop.Name))))
	for _, arrival := range arrivals {
		fmt.Println(styledArrival(arrival))
	}
	fmt.Println()

	return nil
}

// runGeoQueryForm collects the search point. The huh validators keep the
// form open until every field parses and passes range checking, so the
// user re-enters values instead of aborting.
func runGeoQueryForm() (transit.GeoQuery, error) {
	cfg, err := config.Load()
	if err == nil && cfg.HasDefaultLocation() {
		useSaved := true
		confirmForm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Use your saved location? (lon=%v lat=%v distance=%dm)",
						cfg.DefaultLongitude, cfg.DefaultLatitude, cfg.DefaultDistance)).
					Value(&useSaved),
			),
		).WithTheme(GetTheme())

		if err := confirmForm.Run(); err != nil {
			return transit.GeoQuery{}, err
		}

		if useSaved {
			return transit.GeoQuery{
				Longitude: cfg.DefaultLongitude,
				Latitude:  cfg.DefaultLatitude,
				Distance:  cfg.DefaultDistance,
			}, nil
		}
	}

	var lonStr, latStr, distStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Longitude").
				Placeholder("-97.1375").
				Value(&lonStr).
				Validate(validateCoordinate(-180, 180, "longitude")),

			huh.NewInput().
				Title("Latitude").
				Placeholder("49.8998").
				Value(&latStr).
				Validate(validateCoordinate(-90, 90, "latitude")),

			huh.NewInput().
				Title("Search radius (meters)").
				Placeholder("500").
				Value(&distStr).
				Validate(validateDistance),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return transit.GeoQuery{}, err
	}

	lon, _ := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	lat, _ := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	distance, _ := strconv.Atoi(strings.TrimSpace(distStr))

	return transit.GeoQuery{Longitude: lon, Latitude: lat, Distance: distance}, nil
}

func runStopSelectForm(stops []transit.Stop) (transit.Stop, error) {
	options := make([]huh.Option[int], 0, len(stops))
	for i, stop := range stops {
		label := fmt.Sprintf("%s (ID: %s)", displayName(stop.Name), stop.Key)
		if stop.Direction != "" {
			label = fmt.Sprintf("%s [%s]", label, stop.Direction)
		}
		options = append(options, huh.NewOption(label, i))
	}

	var choice int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select a bus stop").
				Options(options...).
				Value(&choice).
				Height(12),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return transit.Stop{}, err
	}

	return stops[choice], nil
}

func validateCoordinate(min, max float64, name string) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", name)
		}
		if v < min || v > max {
			return fmt.Errorf("%s must be between %v and %v", name, min, max)
		}
		return nil
	}
}

func validateDistance(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("distance must be a whole number")
	}
	if v <= 0 {
		return fmt.Errorf("distance must be a positive number")
	}
	return nil
}

// displayName softens the all-caps street names some stops come with.
func displayName(name string) string {
	if name != "" && name == strings.ToUpper(name) {
		return cases.Title(language.English).String(strings.ToLower(name))
	}
	return name
}

func styledArrival(a transit.Arrival) string {
	style := onTimeStyle
	switch a.Status {
	case transit.StatusLate:
		style = lateStyle
	case transit.StatusEarly:
		style = earlyStyle
	}

	line := fmt.Sprintf("Route: %s | Scheduled: %s | Estimated: %s [%s]",
		a.RouteNumber,
		a.Scheduled.Format("15:04:05"),
		a.Estimated.Format("15:04:05"),
		a.Status)

	return style.Render(line)
}
