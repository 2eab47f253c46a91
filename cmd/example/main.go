// Command example wires the toolkit together: configuration drives an
// async logger and a worker pool, and pool/logger activity is exposed on
// a Prometheus /metrics endpoint.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/whichxjy/acht/pkg/asynclog"
	"github.com/whichxjy/acht/pkg/config"
	obs "github.com/whichxjy/acht/pkg/observability/prometheus"
	"github.com/whichxjy/acht/pkg/threadpool"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML or JSON config file")
	metricsAddr := flag.String("metrics", ":9090", "metrics listen address")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	recorder := obs.NewLogRecorder(nil)
	logger := asynclog.New(asynclog.Config{
		Level:     cfg.LogLevel(),
		FilePath:  cfg.Log.File,
		QueueSize: cfg.Log.QueueSize,
		Recorder:  recorder,
	})
	defer logger.Close()

	pool := threadpool.New(threadpool.Config{
		Workers:  cfg.Pool.Workers,
		MaxTasks: cfg.Pool.MaxTasks,
		Logger:   logger,
	})
	obs.RegisterPool(nil, pool)

	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(
			obs.DefaultRegistry, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
			logger.Errorf("metrics server: %v", err)
		}
	}()

	logger.Infof("pool running with %d workers", pool.Workers())

	// Submit a steady trickle of demo tasks until interrupted.
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	for i := 0; ; i++ {
		select {
		case <-stop:
			logger.Info("shutting down")
			pool.ShutdownNow()
			return
		case <-ticker.C:
			n := i
			task := threadpool.NewNamedTask("demo", func() {
				logger.Debugf("demo task %d done", n)
			})
			if err := pool.Submit(task); err != nil {
				logger.Warnf("submit: %v", err)
			}
		}
	}
}
