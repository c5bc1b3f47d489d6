package datastores

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ridgeline-tours/asset-repo/common"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/metrics"
)

type file struct {
	basePath      string
	publicBaseUrl string
}

func getFile(ds config.DatastoreConfig) (*file, error) {
	basePath := ds.Options["path"]
	if basePath == "" {
		return nil, errors.Wrap(common.ErrInvalidConfig, "file datastore requires a path")
	}
	return &file{
		basePath:      basePath,
		publicBaseUrl: ds.Options["publicBaseUrl"],
	}, nil
}

func (f *file) Upload(ctx rcontext.RequestContext, key string, data io.Reader, size int64, opts UploadOptions) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	metrics.StorageOperations.With(prometheus.Labels{"backend": "file", "operation": "Write"}).Inc()

	targetFile := filepath.Join(f.basePath, filepath.FromSlash(key))
	targetDir := filepath.Dir(targetFile)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", err
	}

	// Write next to the target and rename over it so readers never see a partial file.
	tmp, err := os.CreateTemp(targetDir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	uploadedBytes, err := io.Copy(tmp, data)
	if err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if size >= 0 && uploadedBytes != size {
		return "", errors.Errorf("upload size mismatch: expected %d got %d bytes", size, uploadedBytes)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err = os.Rename(tmp.Name(), targetFile); err != nil {
		return "", err
	}

	ctx.Log.Debugf("Wrote %d bytes (%s) to %s", uploadedBytes, opts.ContentType, targetFile)
	return key, nil
}

func (f *file) PublicUrl(location string) string {
	if f.publicBaseUrl != "" {
		return joinUrl(f.publicBaseUrl, location)
	}
	return "/" + location
}
