package rcontext

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/common/config"
)

type contextKey string

const (
	loggerKey contextKey = "ar.logger"
	configKey contextKey = "ar.config"
)

func Initial() RequestContext {
	return RequestContext{
		Context: context.Background(),
		Log:     logrus.WithFields(logrus.Fields{"nocontext": true}),
		Config:  *config.Get(),
		Request: nil,
	}.populate()
}

// Background builds a context that does not depend on the global configuration.
func Background(cfg config.MainRepoConfig, log *logrus.Entry) RequestContext {
	return RequestContext{
		Context: context.Background(),
		Log:     log,
		Config:  cfg,
	}.populate()
}

type RequestContext struct {
	context.Context

	// These are also stored on the context object itself
	Log     *logrus.Entry         // ar.logger
	Config  config.MainRepoConfig // ar.config
	Request *http.Request
}

func (c RequestContext) populate() RequestContext {
	c.Context = context.WithValue(c.Context, loggerKey, c.Log)
	c.Context = context.WithValue(c.Context, configKey, c.Config)
	return c
}

func (c RequestContext) ReplaceLogger(log *logrus.Entry) RequestContext {
	ctx := context.WithValue(c.Context, loggerKey, log)
	return RequestContext{
		Context: ctx,
		Log:     log,
		Config:  c.Config,
		Request: c.Request,
	}
}

func (c RequestContext) LogWithFields(fields logrus.Fields) RequestContext {
	return c.ReplaceLogger(c.Log.WithFields(fields))
}
