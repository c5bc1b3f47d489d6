package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/ridgeline-tours/asset-repo/common"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/stretchr/testify/assert"
)

func authContext(enabled bool, secret string) rcontext.RequestContext {
	logger, _ := test.NewNullLogger()
	cfg := config.NewDefaultMainConfig()
	cfg.AdminAuth.Enabled = enabled
	cfg.AdminAuth.SharedSecret = secret
	return rcontext.Background(cfg, logrus.NewEntry(logger))
}

func TestAdminRoute(t *testing.T) {
	called := 0
	next := func(r *http.Request, rctx rcontext.RequestContext) interface{} {
		called++
		return &EmptyResponse{}
	}
	route := AdminRoute(next)

	cases := []struct {
		name    string
		enabled bool
		secret  string
		header  string
		code    string
	}{
		{"disabled", false, "", "", ""},
		{"valid token", true, "hunter2", "Bearer hunter2", ""},
		{"missing token", true, "hunter2", "", common.ErrCodeMissingToken},
		{"wrong token", true, "hunter2", "Bearer hunter3", common.ErrCodeUnknownToken},
		{"not bearer", true, "hunter2", "Basic hunter2", common.ErrCodeMissingToken},
		{"placeholder secret", true, "ReplaceMe", "Bearer ReplaceMe", common.ErrCodeUnknownToken},
		{"empty secret", true, "", "Bearer anything", common.ErrCodeUnknownToken},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			called = 0
			r := httptest.NewRequest(http.MethodPost, "/api/migrate-public-files", nil)
			if c.header != "" {
				r.Header.Set("Authorization", c.header)
			}

			res := route(r, authContext(c.enabled, c.secret))
			if c.code == "" {
				assert.IsType(t, &EmptyResponse{}, res)
				assert.Equal(t, 1, called)
				return
			}

			errRes, ok := res.(*ErrorResponse)
			if assert.True(t, ok) {
				assert.Equal(t, c.code, errRes.Code)
			}
			assert.Zero(t, called)
		})
	}
}
