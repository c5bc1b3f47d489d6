package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/ridgeline-tours/asset-repo/assets"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/controllers/migration_controller"
	"github.com/ridgeline-tours/asset-repo/datastores"
)

func runScan(out io.Writer, ctx rcontext.RequestContext, root string, asJson bool) error {
	res, err := assets.Scan(ctx, root)
	if err != nil {
		return err
	}

	if asJson {
		return writeJson(out, map[string]interface{}{
			"results":   res.Entries,
			"breakdown": res.Breakdown,
		})
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, e := range res.Entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", e.PublicPath, e.StoragePath)
	}
	if err = w.Flush(); err != nil {
		return err
	}

	b := res.Breakdown
	_, _ = fmt.Fprintf(out, "\nFound %s files to migrate (%d in root, %d in subfolders), %s total\n",
		humanize.Comma(int64(b.Total)), b.Root, b.Subfolders, humanize.Bytes(uint64(res.TotalBytes)))

	folders := make([]string, 0, len(b.PerFolder))
	for f := range b.PerFolder {
		folders = append(folders, f)
	}
	sort.Strings(folders)
	for _, f := range folders {
		_, _ = fmt.Fprintf(out, "  %-30s %d\n", f, b.PerFolder[f])
	}
	if len(res.SkippedDirs) > 0 {
		_, _ = fmt.Fprintf(out, "Skipped %d unreadable directories\n", len(res.SkippedDirs))
	}
	return nil
}

func runMigrate(out io.Writer, ctx rcontext.RequestContext, store datastores.Store, root string, asJson bool) error {
	res, err := assets.Scan(ctx, root)
	if err != nil {
		return err
	}

	results := migration_controller.Migrate(ctx, store, root, res.Entries)
	summary := migration_controller.Summarize(results)

	if asJson {
		if err = writeJson(out, map[string]interface{}{
			"results": results,
			"summary": summary,
		}); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Succeeded() {
				_, _ = fmt.Fprintf(out, "ok    %s -> %s\n", r.PublicPath, *r.Url)
			} else {
				_, _ = fmt.Fprintf(out, "FAIL  %s: %s\n", r.PublicPath, r.Error)
			}
		}
		_, _ = fmt.Fprintf(out, "\n%d total, %d succeeded, %d failed\n", summary.Total, summary.Success, summary.Failed)
	}

	if summary.Failed > 0 {
		return errors.Errorf("%d of %d files failed to migrate", summary.Failed, summary.Total)
	}
	return nil
}

func writeJson(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
