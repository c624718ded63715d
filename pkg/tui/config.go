package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/PhillipJBridgeman/winnipeg-transit-app/pkg/config"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Default Search Location", "location"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		if action == "back" {
			return nil
		}

		switch action {
		case "theme":
			err = runSetThemeTUI(cfg)
		case "location":
			err = runSetLocationTUI(cfg)
		case "view":
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.winnipeg-transit.json) ---"))
			if cfg.HasDefaultLocation() {
				fmt.Printf("Default Location: lon=%v lat=%v distance=%dm\n",
					cfg.DefaultLongitude, cfg.DefaultLatitude, cfg.DefaultDistance)
			} else {
				fmt.Println("Default Location: Not set")
			}
			fmt.Printf("Accent Color: %s\n", cfg.AccentColor)
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

// runSetLocationTUI saves a default search point so the schedule flow can
// skip the coordinate prompts.
func runSetLocationTUI(cfg *config.AppConfig) error {
	lonStr := ""
	latStr := ""
	distStr := ""

	if cfg.HasDefaultLocation() {
		lonStr = strconv.FormatFloat(cfg.DefaultLongitude, 'f', -1, 64)
		latStr = strconv.FormatFloat(cfg.DefaultLatitude, 'f', -1, 64)
		distStr = strconv.Itoa(cfg.DefaultDistance)
	}

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
		return err
	}

	cfg.DefaultLongitude, _ = strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	cfg.DefaultLatitude, _ = strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	cfg.DefaultDistance, _ = strconv.Atoi(strings.TrimSpace(distStr))

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Default search location saved.\n"))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color").
				Description("Select a curated style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Transit Teal", colorBlock("36")), "36"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Prairie Gold", colorBlock("178")), "178"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(func(str string) error {
						if len(str) != 7 || !strings.HasPrefix(str, "#") {
							return fmt.Errorf("must be a valid 6-character hex code starting with #")
						}
						return nil
					}),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}
