package assets

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/ryanuber/go-glob"
	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/metrics"
)

// Replaced in tests.
var readDir = os.ReadDir

type ScanResult struct {
	Entries     []Entry
	Breakdown   Breakdown
	TotalBytes  int64
	SkippedDirs []string
}

type walker struct {
	ctx     rcontext.RequestContext
	root    string
	result  *ScanResult
	ignored int
}

// Scan walks rootDir depth-first and returns every image or video file in it. Hidden
// directories and dotfiles are skipped. A directory that cannot be read is logged and
// skipped; only an unreadable root fails the scan. Nothing is written anywhere.
func Scan(ctx rcontext.RequestContext, rootDir string) (*ScanResult, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, errors.Wrap(err, "error opening asset root")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("asset root %s is not a directory", rootDir)
	}

	w := &walker{
		ctx:  ctx.LogWithFields(logrus.Fields{"assetRoot": rootDir}),
		root: rootDir,
		result: &ScanResult{
			Entries:     make([]Entry, 0),
			SkippedDirs: make([]string, 0),
		},
	}

	rootEntries, err := readDir(rootDir)
	if err != nil {
		return nil, errors.Wrap(err, "error reading asset root")
	}
	if err = w.visit("", rootEntries); err != nil {
		return nil, err
	}

	w.result.Breakdown = BreakdownOf(w.result.Entries)
	metrics.AssetsScanned.Add(float64(len(w.result.Entries)))
	w.ctx.Log.Infof("Scan found %d assets (%s) in %d folders; ignored %d files and %d unreadable directories",
		w.result.Breakdown.Total, humanize.Bytes(uint64(w.result.TotalBytes)), len(w.result.Breakdown.PerFolder),
		w.ignored, len(w.result.SkippedDirs))
	return w.result, nil
}

func (w *walker) visit(relDir string, entries []os.DirEntry) error {
	for _, entry := range entries {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		relPath := path.Join(relDir, name)

		if strings.HasPrefix(name, ".") {
			// .git, .cache, .DS_Store, .gitkeep and friends
			w.ctx.Log.Debug("Skipping hidden entry: ", relPath)
			if !entry.IsDir() {
				w.ignored++
			}
			continue
		}

		mode := entry.Type()
		switch {
		case mode.IsDir():
			if err := w.descend(relPath); err != nil {
				return err
			}
		case mode.IsRegular():
			w.addFile(relDir, entry)
		default:
			w.ctx.Log.Warnf("Skipping %s: not a regular file or directory (%s)", relPath, mode.String())
			w.ignored++
		}
	}

	return nil
}

// descend only fails when the scan's context is done; read errors are contained to relDir.
func (w *walker) descend(relDir string) error {
	children, err := readDir(filepath.Join(w.root, filepath.FromSlash(relDir)))
	if err != nil {
		w.ctx.Log.Warnf("Skipping unreadable directory %s: %s", relDir, err)
		w.result.SkippedDirs = append(w.result.SkippedDirs, relDir)
		// os.ReadDir returns what it managed to read alongside the error
		if len(children) == 0 {
			return nil
		}
	}
	return w.visit(relDir, children)
}

func (w *walker) addFile(relDir string, entry os.DirEntry) {
	name := entry.Name()
	if !IsAsset(name) {
		w.ignored++
		return
	}

	info, err := entry.Info()
	if err != nil {
		w.ctx.Log.Warnf("Skipping %s: %s", path.Join(relDir, name), err)
		w.ignored++
		return
	}

	publicPath := "/" + path.Join(relDir, name)
	if w.excluded(publicPath) {
		w.ctx.Log.Debug("Skipping excluded asset: ", publicPath)
		w.ignored++
		return
	}

	w.result.Entries = append(w.result.Entries, Entry{
		PublicPath:  publicPath,
		StoragePath: StoragePathFor(publicPath),
	})
	w.result.TotalBytes += info.Size()
}

// excluded matches publicPath against the configured exclude globs. Only * is special.
func (w *walker) excluded(publicPath string) bool {
	for _, pattern := range w.ctx.Config.Assets.Exclude {
		if glob.Glob(pattern, publicPath) {
			return true
		}
	}
	return false
}
