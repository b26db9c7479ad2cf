package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "DEQUE_STRESS"

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "dequestress",
	Short: "Hammers a concurrent deque with producers and consumers and verifies that no element is lost or duplicated",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// flags take precedence, unset flags fall back to DEQUE_STRESS_* environment variables
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("could not bind flags: %w", err)
		}
		return initLogger(viper.GetString("log-level"))
	},
}

var RootCmd = rootCmd

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	addPersistentFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(runCmd)

	cobra.OnInitialize(initConfig)
}

func addPersistentFlags(flags *pflag.FlagSet) {
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initLogger(logLevel string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	log = zerolog.New(zerolog.NewConsoleWriter()).Level(level).With().Timestamp().Logger()
	return nil
}
