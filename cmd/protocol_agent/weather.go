package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/fire-protocols/internal/observability"
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show the current temperature and wind speed",
	Long:  "Looks up current conditions for the configured city from wttr.in, falling back to Open-Meteo.",
	Args:  cobra.NoArgs,
	RunE:  runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, _ []string) error {
	ws := weatherSource()
	if ws == nil {
		return fmt.Errorf("weather lookup is disabled in the config")
	}
	cond, err := ws.Current(cmd.Context())
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintWeather(cond)
	return nil
}
