package config

import (
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch reloads the configuration when the file at Path changes. onChange is called
// with the previous and new config after the new one has been applied.
func Watch(onChange func(prev *MainRepoConfig, next *MainRepoConfig)) *fsnotify.Watcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logrus.Fatal(err)
	}

	err = watcher.Add(Path)
	if err != nil {
		logrus.Fatal(err)
	}

	go func() {
		debounced := debounce.New(1 * time.Second)
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				debounced(func() {
					onFileChanged(onChange)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.Error("error in config watcher:", err)
			}
		}
	}()

	return watcher
}

func onFileChanged(onChange func(prev *MainRepoConfig, next *MainRepoConfig)) {
	logrus.Info("Config file change detected - reloading")
	configNow := Get()
	configNew, err := reloadConfig()
	if err != nil {
		logrus.Error("Error reloading configuration - ignoring")
		logrus.Error(err)
		return
	}

	logrus.Info("Applying reloaded config live")
	Set(configNew)

	logChange := configNew.General.LogDirectory != configNow.General.LogDirectory ||
		configNew.General.JsonLogs != configNow.General.JsonLogs ||
		configNew.General.LogColors != configNow.General.LogColors
	if logChange {
		logrus.Warn("Log configuration changed - restart the asset repo to apply changes")
	}

	if onChange != nil {
		onChange(configNow, configNew)
	}
}
