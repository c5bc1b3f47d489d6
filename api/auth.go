package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/util"
)

const placeholderSecret = "ReplaceMe"

// AdminRoute requires the configured shared secret as a bearer token. The check runs
// server-side on every request, before next does any work.
func AdminRoute(next GeneratorFn) GeneratorFn {
	return func(r *http.Request, rctx rcontext.RequestContext) interface{} {
		auth := rctx.Config.AdminAuth
		if !auth.Enabled {
			return next(r, rctx)
		}

		accessToken := util.GetAccessTokenFromRequest(r)
		if accessToken == "" {
			rctx.Log.Warn("Error: no token provided (required)")
			return MissingToken()
		}
		if auth.SharedSecret == "" || auth.SharedSecret == placeholderSecret {
			rctx.Log.Error("Admin auth is enabled but no shared secret is configured - refusing request")
			return AuthFailed()
		}
		if subtle.ConstantTimeCompare([]byte(accessToken), []byte(auth.SharedSecret)) != 1 {
			rctx.Log.Warn("Invalid admin token supplied")
			return AuthFailed()
		}

		rctx = rctx.LogWithFields(logrus.Fields{"isRepoAdmin": true})
		return next(r, rctx)
	}
}
