package main

import (
	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/api/webserver"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/datastores"
	"github.com/ridgeline-tours/asset-repo/metrics"
)

func onConfigChange(prev *config.MainRepoConfig, next *config.MainRepoConfig) {
	if prev.General.LogLevel != next.General.LogLevel {
		if level, err := logrus.ParseLevel(next.General.LogLevel); err == nil {
			logrus.SetLevel(level)
		}
	}

	if !sameDatastore(prev.Datastore, next.Datastore) {
		logrus.Info("Datastore configuration changed - dropping cached clients")
		datastores.ResetClients()
	}

	if prev.Metrics != next.Metrics {
		logrus.Info("Restarting metrics listener")
		metrics.Reload(next.Metrics)
	}

	if prev.General.BindAddress != next.General.BindAddress || prev.General.Port != next.General.Port || prev.RateLimit != next.RateLimit {
		logrus.Info("Restarting web server")
		webserver.Reload()
	}
}

func sameDatastore(a config.DatastoreConfig, b config.DatastoreConfig) bool {
	if a.Type != b.Type || len(a.Options) != len(b.Options) {
		return false
	}
	for k, v := range a.Options {
		if bv, ok := b.Options[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
