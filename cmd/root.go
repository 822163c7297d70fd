package cmd

import (
	"fmt"
	"os"

	"fleetview/internal/cmd/root"
	"fleetview/internal/config"
	"fleetview/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "fleetview",
	Short: "Browse a vehicle fleet by category and see it on a map",
	Run:   root.Run,
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().Bool("no-tui", false, "Print the filtered fleet and exit")
	rootCmd.PersistentFlags().String("source", config.SourceMock, "Vehicle source: mock, file or serial")
	rootCmd.PersistentFlags().String("file", "fleet.json", "Fleet JSON file for the file source")
	rootCmd.PersistentFlags().String("port", "", "Serial port of the telemetry receiver")
	rootCmd.PersistentFlags().Int("baud", 9600, "Baud rate for serial connection")
	rootCmd.PersistentFlags().String("lang", "en", "Display language (BCP 47 tag)")
	rootCmd.PersistentFlags().StringSlice("category", nil, "Category to select with --no-tui (repeatable)")
	rootCmd.PersistentFlags().Duration("refresh", 0, "Interval between data refreshes")
	rootCmd.PersistentFlags().String("log-file", "", "Log file used while the TUI is running")

	for _, name := range []string{"debug", "no-tui", "source", "file", "port", "baud", "lang", "category", "refresh", "log-file"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Set default values
	config.SetDefaults(viper.GetViper())
}

// initLogger keeps logs off the terminal while the TUI owns it.
func initLogger() {
	var outputs []string
	if !viper.GetBool("no-tui") {
		outputs = []string{viper.GetString("log-file")}
	}
	if err := log.InitLogger(viper.GetBool("debug"), outputs...); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
