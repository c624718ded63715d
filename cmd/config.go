package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/config"
	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/transit"
	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage winnipeg-transit configuration",
	Long:  "View or edit your local configuration settings (like a default search location so you can skip the coordinate prompts).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		setLocation, _ := cmd.Flags().GetString("set-location")
		if setLocation != "" {
			query, err := parseLocationFlag(setLocation)
			if err != nil {
				return err
			}

			cfg.DefaultLongitude = query.Longitude
			cfg.DefaultLatitude = query.Latitude
			cfg.DefaultDistance = query.Distance

			if err := config.Save(cfg); err != nil {
				return err
			}

			fmt.Printf("✅ Default location saved: lon=%v lat=%v distance=%dm\n",
				query.Longitude, query.Latitude, query.Distance)
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

// parseLocationFlag turns "lon,lat,distance" into a validated GeoQuery.
func parseLocationFlag(value string) (transit.GeoQuery, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return transit.GeoQuery{}, fmt.Errorf("expected \"lon,lat,distance\", got %q", value)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return transit.GeoQuery{}, fmt.Errorf("invalid longitude %q", parts[0])
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return transit.GeoQuery{}, fmt.Errorf("invalid latitude %q", parts[1])
	}
	distance, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return transit.GeoQuery{}, fmt.Errorf("invalid distance %q", parts[2])
	}

	query := transit.GeoQuery{Longitude: lon, Latitude: lat, Distance: distance}
	if err := query.Validate(); err != nil {
		return transit.GeoQuery{}, err
	}

	return query, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("set-location", "l", "", "Set your default search location as \"lon,lat,distance\"")
}
