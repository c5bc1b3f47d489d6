package version

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// Set at build time with -ldflags "-X github.com/ridgeline-tours/asset-repo/common/version.Version=..."
var GitCommit string
var Version string

var defaultsOnce sync.Once

type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
}

// Release is the identifier reported to Sentry.
func (i Info) Release() string {
	return i.Version + "-" + i.GitCommit
}

func Current() Info {
	defaultsOnce.Do(fillFromBuildInfo)
	return Info{Version: Version, GitCommit: GitCommit}
}

func fillFromBuildInfo() {
	build, ok := debug.ReadBuildInfo()
	if GitCommit == "" && ok {
		for _, setting := range build.Settings {
			if setting.Key == "vcs.revision" {
				GitCommit = setting.Value
			}
		}
	}
	if Version == "" && ok && build.Main.Version != "" && build.Main.Version != "(devel)" {
		Version = build.Main.Version
	}

	if GitCommit == "" {
		GitCommit = ".dev"
	}
	if Version == "" {
		Version = "unknown"
	}
}

func Print(usingLogger bool) {
	v := Current()
	if usingLogger {
		logrus.WithFields(logrus.Fields{"commit": v.GitCommit}).Info("asset-repo version ", v.Version)
		return
	}
	fmt.Printf("asset-repo %s (commit %s)\n", v.Version, v.GitCommit)
}
