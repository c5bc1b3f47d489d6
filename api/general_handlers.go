package api

import (
	"net/http"

	"github.com/ridgeline-tours/asset-repo/common/rcontext"
)

type GeneratorFn = func(r *http.Request, rctx rcontext.RequestContext) interface{}

func NotFoundHandler(r *http.Request, rctx rcontext.RequestContext) interface{} {
	return NotFoundError()
}

func MethodNotAllowedHandler(r *http.Request, rctx rcontext.RequestContext) interface{} {
	return MethodNotAllowed()
}

func EmptyResponseHandler(r *http.Request, rctx rcontext.RequestContext) interface{} {
	return &EmptyResponse{}
}
