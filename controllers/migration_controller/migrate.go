package migration_controller

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/assets"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/datastores"
	"github.com/ridgeline-tours/asset-repo/metrics"
	"github.com/ridgeline-tours/asset-repo/util"
)

// Result is the outcome for one entry. Exactly one of Url and Error is set.
type Result struct {
	PublicPath  string  `json:"publicPath"`
	StoragePath string  `json:"storagePath"`
	Url         *string `json:"url"`
	Error       string  `json:"error,omitempty"`
}

func (r *Result) Succeeded() bool {
	return r.Url != nil
}

// Migrate uploads each entry from rootDir into store, one at a time, and returns one
// result per entry in input order. A failing entry never stops the batch.
func Migrate(ctx rcontext.RequestContext, store datastores.Store, rootDir string, entries []assets.Entry) []*Result {
	cacheControl := ctx.Config.Assets.CacheControl
	if cacheControl == "" {
		cacheControl = config.DefaultCacheControl
	}

	results := make([]*Result, 0, len(entries))
	for i, entry := range entries {
		recordCtx := ctx.LogWithFields(logrus.Fields{
			"index":       i,
			"publicPath":  entry.PublicPath,
			"storagePath": entry.StoragePath,
		})

		var res *Result
		if err := ctx.Err(); err != nil {
			res = failed(entry, err.Error())
		} else {
			res = migrateOne(recordCtx, store, rootDir, entry, cacheControl)
		}

		if res.Succeeded() {
			metrics.AssetsMigrated.With(prometheus.Labels{"outcome": "success"}).Inc()
			recordCtx.Log.Debug("Migrated to ", *res.Url)
		} else {
			metrics.AssetsMigrated.With(prometheus.Labels{"outcome": "failed"}).Inc()
			recordCtx.Log.Warn("Failed to migrate: ", res.Error)
		}
		results = append(results, res)
	}

	return results
}

func failed(entry assets.Entry, message string) *Result {
	return &Result{
		PublicPath:  entry.PublicPath,
		StoragePath: entry.StoragePath,
		Url:         nil,
		Error:       message,
	}
}

func migrateOne(ctx rcontext.RequestContext, store datastores.Store, rootDir string, entry assets.Entry, cacheControl string) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			err := util.PanicToError(r)
			ctx.Log.Error("Panic while migrating: ", err)
			sentry.CaptureException(err)
			res = failed(entry, err.Error())
		}
	}()

	if entry.PublicPath == "" {
		return failed(entry, "missing publicPath")
	}
	publicPath := assets.NormalizePublicPath(entry.PublicPath)
	if entry.StoragePath == "" {
		entry.StoragePath = assets.StoragePathFor(publicPath)
	}

	sourcePath, err := resolveSource(rootDir, publicPath)
	if err != nil {
		if errors.Is(err, errNotInRoot) || os.IsNotExist(err) {
			return failed(entry, fmt.Sprintf("File not found: %s", entry.PublicPath))
		}
		return failed(entry, err.Error())
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return failed(entry, err.Error())
	}

	location, err := store.Upload(ctx, entry.StoragePath, bytes.NewReader(data), int64(len(data)), datastores.UploadOptions{
		ContentType:  assets.ContentTypeFor(publicPath),
		CacheControl: cacheControl,
	})
	if err != nil {
		return failed(entry, err.Error())
	}

	url := store.PublicUrl(location)
	return &Result{
		PublicPath:  entry.PublicPath,
		StoragePath: entry.StoragePath,
		Url:         &url,
	}
}

var errNotInRoot = errors.New("not a regular file inside the asset root")

// resolveSource maps a normalized public path to a regular file under rootDir. Every
// component is checked with Lstat and symlinks are refused, same as the scanner.
func resolveSource(rootDir string, publicPath string) (string, error) {
	current := rootDir
	parts := strings.Split(strings.TrimPrefix(publicPath, "/"), "/")
	for i, part := range parts {
		if part == "" {
			return "", errNotInRoot
		}
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if err != nil {
			return "", err
		}

		mode := info.Mode()
		if mode&os.ModeSymlink != 0 {
			return "", errNotInRoot
		}
		last := i == len(parts)-1
		if (last && !mode.IsRegular()) || (!last && !mode.IsDir()) {
			return "", errNotInRoot
		}
	}
	return current, nil
}
