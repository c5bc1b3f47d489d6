package datastores

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/ridgeline-tours/asset-repo/common"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
)

type UploadOptions struct {
	ContentType  string
	CacheControl string
}

// Store is an object storage backend. Upload always replaces whatever is already stored
// under the key, so repeating an upload is safe.
type Store interface {
	Upload(ctx rcontext.RequestContext, key string, data io.Reader, size int64, opts UploadOptions) (string, error)
	PublicUrl(location string) string
}

// Open returns the store described by ds. Clients are cached per configuration; a
// missing credential or option is reported before anything is uploaded.
func Open(ds config.DatastoreConfig) (Store, error) {
	switch ds.Type {
	case "s3":
		s3c, err := getS3(ds)
		if err != nil {
			return nil, err
		}
		return s3c, nil
	case "file":
		f, err := getFile(ds)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, errors.Wrapf(common.ErrUnknownDatastore, "type %q", ds.Type)
	}
}

// ResetClients drops cached clients so the next Open picks up new configuration.
func ResetClients() {
	resetS3Clients()
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return errors.Errorf("invalid object key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return errors.Errorf("invalid object key %q", key)
		}
	}
	return nil
}

func joinUrl(base string, location string) string {
	return strings.TrimSuffix(base, "/") + "/" + location
}
