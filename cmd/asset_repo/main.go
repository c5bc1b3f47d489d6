package main

import (
	"flag"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/api/custom"
	"github.com/ridgeline-tours/asset-repo/api/webserver"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/logging"
	"github.com/ridgeline-tours/asset-repo/common/runtime"
	"github.com/ridgeline-tours/asset-repo/common/version"
	"github.com/ridgeline-tours/asset-repo/metrics"
)

func main() {
	configPath := flag.String("config", "asset-repo.yaml", "The path to the configuration")
	versionFlag := flag.Bool("version", false, "Prints the version and exits")
	flag.Parse()

	if *versionFlag {
		version.Print(false)
		return // exit 0
	}

	// Override config path with config for Docker users
	configEnv := os.Getenv("ASSET_REPO_CONFIG")
	if configEnv != "" {
		configPath = &configEnv
	}

	config.Path = *configPath
	if config.Get().Sentry.Enabled {
		logrus.Info("Setting up Sentry for debugging...")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.Get().Sentry.Dsn,
			Environment: config.Get().Sentry.Environment,
			Debug:       config.Get().Sentry.Debug,
			Release:     version.Current().Release(),
		})
		if err != nil {
			panic(err)
		}
	}
	defer sentry.Flush(2 * time.Second)
	defer sentry.Recover()

	err := logging.Setup(
		config.Get().General.LogDirectory,
		config.Get().General.LogColors,
		config.Get().General.JsonLogs,
		config.Get().General.LogLevel,
	)
	if err != nil {
		panic(err)
	}

	logrus.Info("Starting up...")
	runtime.RunStartupSequence()

	migration := custom.NewAssetMigration(nil)

	logrus.Info("Starting config watcher...")
	watcher := config.Watch(onConfigChange)
	defer func(watcher *fsnotify.Watcher) {
		_ = watcher.Close()
	}(watcher)

	logrus.Info("Starting asset repository...")
	metrics.Init(config.Get().Metrics)
	web := webserver.Init(migration)

	// Set up a listener for SIGINT
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	selfStop := onStopSignal(stop, func() {
		signal.Stop(stop)
		logrus.Warn("Stop signal received")
		logrus.Info("Stopping metrics...")
		metrics.Stop()

		logrus.Info("Stopping web server...")
		webserver.Stop()
	})

	// Wait for the web server to exit nicely
	web.Wait()

	if !selfStop.Load() {
		metrics.Stop()
	}

	// For debugging
	logrus.Info("Goodbye!")
}

// onStopSignal runs stopAll once the first signal arrives. The returned flag reports
// whether that happened.
func onStopSignal(stop <-chan os.Signal, stopAll func()) *atomic.Bool {
	signalled := &atomic.Bool{}
	go func() {
		if _, ok := <-stop; !ok {
			return
		}
		signalled.Store(true)
		stopAll()
	}()
	return signalled
}
