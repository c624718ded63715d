package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/config"
	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/logging"
	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/transit"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Find nearby bus stops and show their live schedule",
	Long: `Prompts for a longitude, latitude and search radius, lists the bus
stops in range, and shows the real-time schedule for the stop you pick.
Coordinates can also be passed as flags to skip the prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.FromEnv()
		if err != nil {
			// No API key means nothing downstream can work
			return err
		}

		log, closeLog, err := logging.Open(settings.LogFile)
		if err != nil {
			fmt.Printf("Warning: could not open log file %s: %v\n", settings.LogFile, err)
		}
		defer closeLog()

		defer func() {
			if r := recover(); r != nil {
				log.WithLevel(zerolog.FatalLevel).Interface("panic", r).Msg("unexpected failure")
				fmt.Println("Something went wrong. See the log file for details.")
			}
		}()

		log.Info().Msg("program started")

		reader := bufio.NewReader(os.Stdin)

		query, ok := queryFromFlags(cmd)
		if !ok {
			query, err = promptGeoQuery(reader, log)
			if err != nil {
				return err
			}
		}
		log.Info().
			Float64("lon", query.Longitude).
			Float64("lat", query.Latitude).
			Int("distance", query.Distance).
			Msg("search query received")

		client := transit.NewClient(settings, log)
		runPipeline(client, query, reader, log)

		return nil
	},
}

// runPipeline walks the fetch stages in order. Every stage either hands
// its output to the next one or stops the run with a message; nothing
// here retries (the client already did) and no partial schedule is shown.
func runPipeline(client *transit.Client, query transit.GeoQuery, reader *bufio.Reader, log zerolog.Logger) {
	var stops []transit.Stop
	var err error

	_ = spinner.New().
		Title("Searching for nearby bus stops...").
		Action(func() {
			stops, err = client.FetchNearbyStops(query)
		}).
		Run()

	if err != nil {
		log.Error().Err(err).Msg("stop search failed")
		fmt.Println("Failed to fetch bus stops.")
		return
	}
	if len(stops) == 0 {
		log.Info().Msg("no bus stops found")
		fmt.Println("No bus stops found in the specified radius.")
		return
	}

	fmt.Println("Available bus stops:")
	for i, stop := range stops {
		fmt.Println(transit.FormatStopChoice(i, stop))
	}

	fmt.Print("Select a bus stop by number: ")
	line, _ := reader.ReadString('\n')

	// One shot only: a bad selection aborts instead of re-prompting
	stop, ok := transit.SelectStop(stops, line)
	if !ok {
		log.Warn().Str("input", strings.TrimSpace(line)).Msg("invalid stop selection")
		fmt.Println("Invalid selection.")
		return
	}
	log.Info().Str("stop", stop.Key.String()).Str("name", stop.Name).Msg("bus stop selected")

	var routes []transit.RouteSchedule

	_ = spinner.New().
		Title(fmt.Sprintf("Fetching the schedule for %s...", stop.Name)).
		Action(func() {
			routes, err = client.FetchStopSchedule(stop.Key)
		}).
		Run()

	if err != nil || len(routes) == 0 {
		if err != nil {
			log.Error().Err(err).Str("stop", stop.Key.String()).Msg("schedule fetch failed")
		}
		fmt.Println("Failed to fetch the bus schedule.")
		return
	}

	arrivals := transit.Flatten(routes, log)
	if len(arrivals) == 0 {
		fmt.Println("No upcoming arrivals to display.")
		return
	}

	fmt.Printf("Bus schedules for %s:\n", stop.Name)
	for _, arrival := range arrivals {
		fmt.Println(renderArrival(arrival))
	}

	log.Info().Msg("program completed successfully")
}

// renderArrival formats one schedule line with the same color mapping the
// service's riders are used to: red for late, blue for early, green for
// on time.
func renderArrival(a transit.Arrival) string {
	color := "\033[32m"
	switch a.Status {
	case transit.StatusLate:
		color = "\033[31m"
	case transit.StatusEarly:
		color = "\033[34m"
	}

	return fmt.Sprintf("%sRoute: %s | Scheduled: %s | Estimated: %s [%s]\033[0m",
		color,
		a.RouteNumber,
		a.Scheduled.Format("15:04:05"),
		a.Estimated.Format("15:04:05"),
		a.Status)
}

// queryFromFlags builds a GeoQuery from --lon/--lat/--distance, or from the
// saved default location with --use-saved. Invalid or missing values fall
// back to interactive prompting.
func queryFromFlags(cmd *cobra.Command) (transit.GeoQuery, bool) {
	if useSaved, _ := cmd.Flags().GetBool("use-saved"); useSaved {
		cfg, err := config.Load()
		if err == nil && cfg.HasDefaultLocation() {
			query := transit.GeoQuery{
				Longitude: cfg.DefaultLongitude,
				Latitude:  cfg.DefaultLatitude,
				Distance:  cfg.DefaultDistance,
			}
			if query.Validate() == nil {
				return query, true
			}
		}
		fmt.Println("No saved location found, falling back to prompts.")
		return transit.GeoQuery{}, false
	}

	if !cmd.Flags().Changed("lon") || !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("distance") {
		return transit.GeoQuery{}, false
	}

	lon, _ := cmd.Flags().GetFloat64("lon")
	lat, _ := cmd.Flags().GetFloat64("lat")
	distance, _ := cmd.Flags().GetInt("distance")

	query := transit.GeoQuery{Longitude: lon, Latitude: lat, Distance: distance}
	if err := query.Validate(); err != nil {
		fmt.Printf("Invalid flag values: %v. Falling back to prompts.\n", err)
		return transit.GeoQuery{}, false
	}

	return query, true
}

// promptGeoQuery keeps asking for the three search values until they pass
// validation. This boundary loops; the stop selection later does not. A
// closed stdin ends the loop with an error instead of spinning.
func promptGeoQuery(reader *bufio.Reader, log zerolog.Logger) (transit.GeoQuery, error) {
	for {
		lon, err := promptFloat(reader, "Enter the longitude: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return transit.GeoQuery{}, err
			}
			reportInvalidInput(err, log)
			continue
		}

		lat, err := promptFloat(reader, "Enter the latitude: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return transit.GeoQuery{}, err
			}
			reportInvalidInput(err, log)
			continue
		}

		fmt.Print("Enter the distance (in meters): ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return transit.GeoQuery{}, io.EOF
		}
		distance, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			reportInvalidInput(fmt.Errorf("distance must be a whole number"), log)
			continue
		}

		query := transit.GeoQuery{Longitude: lon, Latitude: lat, Distance: distance}
		if err := query.Validate(); err != nil {
			reportInvalidInput(err, log)
			continue
		}

		return query, nil
	}
}

func promptFloat(reader *bufio.Reader, prompt string) (float64, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return 0, io.EOF
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(line))
	}
	return value, nil
}

func reportInvalidInput(err error, log zerolog.Logger) {
	log.Warn().Err(err).Msg("invalid input")
	fmt.Printf("Invalid input: %v. Please try again.\n", err)
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().Float64P("lon", "x", 0, "Longitude of the search point")
	scheduleCmd.Flags().Float64P("lat", "y", 0, "Latitude of the search point")
	scheduleCmd.Flags().IntP("distance", "d", 0, "Search radius in meters")
	scheduleCmd.Flags().BoolP("use-saved", "s", false, "Use the saved default location instead of prompting")
}
