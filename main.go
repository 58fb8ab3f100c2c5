package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/asnowfix/ha-shelly-export/hlog"
	"github.com/asnowfix/ha-shelly-export/internal/export"
	"github.com/asnowfix/ha-shelly-export/options"
	"github.com/asnowfix/ha-shelly-export/pkg/homeassistant"
	"github.com/asnowfix/ha-shelly-export/pkg/shellydev"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Commit string

var Cmd = &cobra.Command{
	Use:   "ha-shelly-export",
	Short: "Export Shelly switch and cover entities from Home Assistant to CSV",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		hlog.Init(options.Flags.Verbose)
		ctx := options.CommandLineContext(cmd.Context(), hlog.Logger, options.Flags.CommandTimeout)
		cmd.SetContext(ctx)
		return nil
	},
	RunE: run,
}

func init() {
	Cmd.PersistentFlags().BoolVarP(&options.Flags.Verbose, "verbose", "v", false, "verbose output")
	Cmd.PersistentFlags().BoolVar(&options.Flags.Json, "json", false, "print results as JSON instead of YAML")
	Cmd.Flags().StringVarP(&options.Flags.Url, "url", "u", "", "Home Assistant URL, e.g. http://homeassistant.local:8123 (or HA_URL)")
	Cmd.Flags().StringVarP(&options.Flags.Token, "token", "t", "", "long-lived access token (or HA_TOKEN)")
	Cmd.Flags().StringVarP(&options.Flags.Output, "output", "o", "", "output CSV file path (default: shelly_devices_<timestamp>.csv)")
	Cmd.Flags().DurationVar(&options.Flags.CommandTimeout, "timeout", 0, "overall command timeout (0: no deadline)")
	Cmd.Flags().BoolVar(&options.Flags.Preview, "preview", false, "print the filtered devices before exporting")

	viper.BindPFlag("url", Cmd.Flags().Lookup("url"))
	viper.BindPFlag("token", Cmd.Flags().Lookup("token"))
	viper.BindEnv("url", "HA_URL")
	viper.BindEnv("token", "HA_TOKEN")

	Cmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Commit)
	},
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logr.FromContextOrDiscard(ctx)

	url := viper.GetString("url")
	token := viper.GetString("token")
	if url == "" {
		return errors.New("Home Assistant URL not provided: use --url or set HA_URL (flag, environment or .env file)")
	}
	if token == "" {
		return errors.New("access token not provided: use --token or set HA_TOKEN (flag, environment or .env file)")
	}

	client := homeassistant.NewClient(log, url, token)
	entities := client.Entities(ctx)

	devices := shellydev.Filter(log, entities)
	if len(devices) == 0 {
		fmt.Fprintln(os.Stderr, "No Shelly device entities found: check that the hub is running,")
		fmt.Fprintln(os.Stderr, "the token has the necessary permissions, and the URL is reachable.")
		return nil
	}

	if options.Flags.Preview {
		if err := options.PrintResult(devices); err != nil {
			return err
		}
	}

	path, err := export.ToCSV(log, devices, options.Flags.Output)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d Shelly device entities to %s\n", len(devices), path)
	return nil
}

func main() {
	// A .env file in the working directory may carry HA_URL / HA_TOKEN
	_ = godotenv.Load()

	if err := Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
