package config

import (
	"fmt"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var Path = "asset-repo.yaml"

var instance *MainRepoConfig
var singletonLock = &sync.Mutex{}

func reloadConfig() (*MainRepoConfig, error) {
	c := NewDefaultMainConfig()

	// Write a default config if the one given doesn't exist
	_, err := os.Stat(Path)
	if os.IsNotExist(err) {
		fmt.Println("Generating new configuration...")
		configBytes, err := yaml.Marshal(c)
		if err != nil {
			return nil, err
		}
		if err = os.WriteFile(Path, configBytes, 0600); err != nil {
			return nil, errors.Wrap(err, "error writing default config")
		}
	}

	// Get new info about the possible directory after creating
	info, err := os.Stat(Path)
	if err != nil {
		return nil, err
	}

	pathsOrdered := make([]string, 0)
	if info.IsDir() {
		logrus.Info("Config is a directory - loading all files over top of each other")

		files, err := os.ReadDir(Path)
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			if f.IsDir() {
				continue
			}
			pathsOrdered = append(pathsOrdered, path.Join(Path, f.Name()))
		}

		sort.Strings(pathsOrdered)
	} else {
		pathsOrdered = append(pathsOrdered, Path)
	}

	for _, p := range pathsOrdered {
		logrus.Info("Loading config file: ", p)
		buffer, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		if err = yaml.Unmarshal(buffer, &c); err != nil {
			return nil, errors.Wrapf(err, "error parsing %s", p)
		}
	}

	applyEnvironment(&c)

	return &c, nil
}

func applyEnvironment(c *MainRepoConfig) {
	if root := os.Getenv("ASSET_REPO_ROOT"); root != "" {
		c.Assets.RootDirectory = root
	}
	if c.Datastore.Options == nil {
		c.Datastore.Options = make(map[string]string)
	}
	if keyId := os.Getenv("ASSET_REPO_S3_ACCESS_KEY_ID"); keyId != "" {
		c.Datastore.Options["accessKeyId"] = keyId
	}
	if secret := os.Getenv("ASSET_REPO_S3_SECRET"); secret != "" {
		c.Datastore.Options["accessSecret"] = secret
	}
}

func Get() *MainRepoConfig {
	singletonLock.Lock()
	defer singletonLock.Unlock()
	if instance == nil {
		c, err := reloadConfig()
		if err != nil {
			logrus.Fatal(err)
		}
		instance = c
	}
	return instance
}

// Set replaces the active configuration. Used by reloads and tests.
func Set(c *MainRepoConfig) {
	singletonLock.Lock()
	defer singletonLock.Unlock()
	instance = c
}
