package datastores

import (
	"os"

	"github.com/ridgeline-tours/asset-repo/common/rcontext"
)

// Verify checks that the backend behind store is usable. Used at startup only; the
// migration path does not depend on it.
func Verify(ctx rcontext.RequestContext, store Store) error {
	switch s := store.(type) {
	case *s3:
		return s.EnsureBucketExists(ctx)
	case *file:
		return os.MkdirAll(s.basePath, 0755)
	}
	return nil
}
