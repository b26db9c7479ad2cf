package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/onflow/concurrent-deque/module"
	"github.com/onflow/concurrent-deque/module/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a single stress round",
	RunE:  runE,
}

func init() {
	addRunFlags(runCmd.Flags())
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.Int("producers", 8, "number of producer routines")
	flags.Int("consumers", 8, "number of consumer routines")
	flags.Int("items-per-producer", 100_000, "number of elements each producer pushes")
	flags.Float64("front-ratio", 0.5, "fraction of pushes going to the front of the deque")
	flags.Duration("pop-timeout", time.Second, "how long a consumer waits for a single element before reporting a stall")
	flags.Duration("timeout", 5*time.Minute, "maximum duration of the round")
	flags.Uint("metrics-port", 0, "port of the prometheus /metrics endpoint, disabled when 0")
}

func runE(cmd *cobra.Command, _ []string) error {
	cfg := stressConfig{
		producers:        viper.GetInt("producers"),
		consumers:        viper.GetInt("consumers"),
		itemsPerProducer: viper.GetInt("items-per-producer"),
		frontRatio:       viper.GetFloat64("front-ratio"),
		popTimeout:       viper.GetDuration("pop-timeout"),
	}
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, viper.GetDuration("timeout"))
	defer cancelTimeout()

	var collector module.DequeMetrics = metrics.NewNoopCollector()
	if port := viper.GetUint("metrics-port"); port > 0 {
		registry := prometheus.NewRegistry()
		collector = metrics.StressWorkQueueMetricsFactory(registry)
		server := metrics.NewServer(log, port, registry)
		<-server.Ready()
		defer func() { <-server.Done() }()
	}

	log.Info().
		Int("producers", cfg.producers).
		Int("consumers", cfg.consumers).
		Int("items_per_producer", cfg.itemsPerProducer).
		Float64("front_ratio", cfg.frontRatio).
		Msg("starting stress round")

	report, err := runStress(ctx, log, cfg, collector)
	if err != nil {
		log.Error().Err(err).Msg("stress round failed")
		return err
	}

	log.Info().
		Int("pushed", report.pushed).
		Int("popped", report.popped).
		Int64("stalls", report.stalls).
		Dur("duration", report.duration).
		Msg("stress round passed")
	return nil
}
