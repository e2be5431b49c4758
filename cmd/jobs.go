package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/seucantinho/ms-go-reservations/app/mq"
)

var (
	workerMode bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Run reservation event related commands",
}

var eventsDispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Dispatch pending reservation events to the broker",
	Run: func(_ *cobra.Command, _ []string) {
		cfg, svcs, cleanup := mustCreateServices()
		defer cleanup()

		publisher, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to broker")
		}
		defer publisher.Close()

		runCommand("events_dispatch", cfg.Jobs.EventDispatchInterval, func(ctx context.Context) error {
			return svcs.reservations.RunDispatchEventsBatch(ctx, svcs.events, publisher)
		})
	},
}

var expireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Run expiration-related commands",
}

var expirePendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Cancel pending reservations whose window already started",
	Run: func(_ *cobra.Command, _ []string) {
		cfg, svcs, cleanup := mustCreateServices()
		defer cleanup()

		runCommand("expire_pending", cfg.Jobs.ExpirePendingInterval, func(ctx context.Context) error {
			return svcs.reservations.RunExpirePendingBatch(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(expireCmd)
	eventsCmd.AddCommand(eventsDispatchCmd)
	expireCmd.AddCommand(expirePendingCmd)

	rootCmd.PersistentFlags().BoolVar(&workerMode, "worker", false, "Run continuously using configured interval")
}

func runCommand(name string, interval time.Duration, fn func(ctx context.Context) error) {
	if workerMode {
		runWorker(name, interval, fn)
		return
	}
	runJob(name, func() error { return fn(context.Background()) })
}

func runWorker(name string, interval time.Duration, fn func(ctx context.Context) error) {
	if interval <= 0 {
		logrus.WithField("job", name).Fatal("invalid worker interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runJob(name, func() error { return fn(ctx) })

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-quit:
			logrus.WithField("job", name).Info("Worker shutdown requested")
			return
		case <-ticker.C:
			runJob(name, func() error { return fn(ctx) })
		}
	}
}

func runJob(name string, fn func() error) {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("job", name).WithField("latency", latency.String()).Error("job_failed")
		return
	}
	logrus.WithField("job", name).WithField("latency", latency.String()).Info("job_completed")
}
