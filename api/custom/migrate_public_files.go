package custom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/api"
	"github.com/ridgeline-tours/asset-repo/assets"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/controllers/migration_controller"
	"github.com/ridgeline-tours/asset-repo/datastores"
	"github.com/ridgeline-tours/asset-repo/util"
)

const maxRequestBytes = 10 * 1024 * 1024

type MigratePublicFilesRequest struct {
	ScanAll bool           `json:"scanAll"`
	Files   []assets.Entry `json:"files"`
	BaseUrl string         `json:"baseUrl"`
}

type ScanResponse struct {
	Success      bool             `json:"success"`
	Results      []assets.Entry   `json:"results"`
	FilesScanned int              `json:"filesScanned"`
	Message      string           `json:"message"`
	Breakdown    assets.Breakdown `json:"breakdown"`
}

type MigrateResponse struct {
	Success bool                           `json:"success"`
	Results []*migration_controller.Result `json:"results"`
	Summary migration_controller.Summary   `json:"summary"`
}

// StoreOpener resolves the configured datastore. It is only called when files are
// actually being migrated.
type StoreOpener func(ds config.DatastoreConfig) (datastores.Store, error)

type AssetMigration struct {
	OpenStore StoreOpener
}

func NewAssetMigration(open StoreOpener) *AssetMigration {
	if open == nil {
		open = datastores.Open
	}
	return &AssetMigration{OpenStore: open}
}

func (m *AssetMigration) MigratePublicFiles(r *http.Request, rctx rcontext.RequestContext) interface{} {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBytes)
	defer util.DumpAndCloseStream(r.Body)

	req := MigratePublicFilesRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		rctx.Log.Warn("Error decoding request body: ", err)
		return api.BadJson("request body is not valid JSON")
	}

	if req.BaseUrl != "" {
		u, err := url.Parse(req.BaseUrl)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return api.BadRequest("baseUrl must be an absolute http(s) URL")
		}
	}

	root := rctx.Config.Assets.RootDirectory
	if req.ScanAll {
		return m.scan(rctx, root)
	}
	if len(req.Files) > 0 {
		return m.migrate(rctx, root, req)
	}
	return api.BadRequest("Either scanAll must be true or a non-empty files list must be supplied")
}

func (m *AssetMigration) scan(rctx rcontext.RequestContext, root string) interface{} {
	rctx.Log.Info("Scanning asset root for migration candidates")
	res, err := assets.Scan(rctx, root)
	if err != nil {
		rctx.Log.Error("Error scanning assets: ", err)
		sentry.CaptureException(err)
		return api.InternalServerError(err.Error())
	}

	b := res.Breakdown
	return &api.DoNotCacheResponse{Payload: &ScanResponse{
		Success:      true,
		Results:      res.Entries,
		FilesScanned: b.Total,
		Message:      fmt.Sprintf("Found %d files to migrate (%d in root, %d in subfolders)", b.Total, b.Root, b.Subfolders),
		Breakdown:    b,
	}}
}

func (m *AssetMigration) migrate(rctx rcontext.RequestContext, root string, req MigratePublicFilesRequest) interface{} {
	store, err := m.OpenStore(rctx.Config.Datastore)
	if err != nil {
		rctx.Log.Error("Storage is not usable: ", err)
		sentry.CaptureException(err)
		return api.ConfigurationError("storage is not configured: " + err.Error())
	}

	rctx = rctx.LogWithFields(logrus.Fields{"files": len(req.Files)})
	rctx.Log.Info("Migrating files")
	results := migration_controller.Migrate(rctx, store, root, req.Files)
	if req.BaseUrl != "" {
		rebase(results, req.BaseUrl)
	}

	summary := migration_controller.Summarize(results)
	rctx.Log.Infof("Migration finished: %d succeeded, %d failed", summary.Success, summary.Failed)
	return &api.DoNotCacheResponse{Payload: &MigrateResponse{
		Success: true,
		Results: results,
		Summary: summary,
	}}
}

// rebase makes root-relative URLs absolute against baseUrl. Absolute URLs from the
// store are left alone.
func rebase(results []*migration_controller.Result, baseUrl string) {
	base := strings.TrimSuffix(baseUrl, "/")
	for _, res := range results {
		if res.Url == nil || !strings.HasPrefix(*res.Url, "/") {
			continue
		}
		u := base + *res.Url
		res.Url = &u
	}
}
