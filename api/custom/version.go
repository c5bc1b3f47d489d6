package custom

import (
	"net/http"

	"github.com/ridgeline-tours/asset-repo/api"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/common/version"
)

func GetVersion(r *http.Request, rctx rcontext.RequestContext) interface{} {
	v := version.Current()
	return &api.DoNotCacheResponse{Payload: &v}
}
