package webserver

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sebest/xff"
	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/api"
	"github.com/ridgeline-tours/asset-repo/common"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/metrics"
	"github.com/ridgeline-tours/asset-repo/util"
)

type handler struct {
	h          api.GeneratorFn
	action     string
	reqCounter *requestCounter
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	cfg := config.Get()

	isUsingForwardedHost := false
	if r.Header.Get("X-Forwarded-Host") != "" && cfg.General.UseForwardedHost {
		r.Host = r.Header.Get("X-Forwarded-Host")
		isUsingForwardedHost = true
	}
	r.Host = strings.Split(r.Host, ":")[0]

	var raddr string
	if cfg.General.TrustAnyForward {
		raddr = r.Header.Get("X-Forwarded-For")
	} else {
		raddr = xff.GetRemoteAddr(r)
	}
	if raddr == "" {
		raddr = r.RemoteAddr
	}

	host, _, err := net.SplitHostPort(raddr)
	if err != nil {
		host = raddr
	}
	r.RemoteAddr = host

	contextLog := logrus.WithFields(logrus.Fields{
		"method":             r.Method,
		"host":               r.Host,
		"usingForwardedHost": isUsingForwardedHost,
		"resource":           r.URL.Path,
		"contentType":        r.Header.Get("Content-Type"),
		"contentLength":      r.ContentLength,
		"queryString":        util.GetLogSafeQueryString(r),
		"requestId":          h.reqCounter.GetNextId(),
		"remoteAddr":         r.RemoteAddr,
	})
	contextLog.Info("Received request")

	// Send CORS and other basic headers
	w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Server", "asset-repo")

	metrics.HttpRequests.With(prometheus.Labels{
		"host":   r.Host,
		"action": h.action,
		"method": r.Method,
	}).Inc()

	rctx := rcontext.RequestContext{Context: r.Context(), Log: contextLog, Config: *cfg, Request: r}
	res := h.generate(r, rctx)

	shouldCache := true
	if result, ok := res.(*api.DoNotCacheResponse); ok {
		res = result.Payload
		shouldCache = false
	}

	contextLog.Infof("Replying with result: %T", res)

	statusCode := http.StatusOK
	if result, ok := res.(*api.ErrorResponse); ok {
		statusCode = statusCodeFor(result)
		contextLog.Infof("Error response (%d): %s", statusCode, result.Message)
	}

	metrics.HttpResponses.With(prometheus.Labels{
		"host":       r.Host,
		"action":     h.action,
		"method":     r.Method,
		"statusCode": strconv.Itoa(statusCode),
	}).Inc()
	metrics.HttpResponseTime.With(prometheus.Labels{
		"host":   r.Host,
		"action": h.action,
		"method": r.Method,
	}).Observe(time.Since(startTime).Seconds())

	// Order is important: Set headers before sending responses
	if !shouldCache {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err = json.NewEncoder(w).Encode(res); err != nil {
		contextLog.Error("Error writing response: ", err)
	}
}

// generate runs the route, turning a panic into a 500 so a handler fault never escapes.
func (h handler) generate(r *http.Request, rctx rcontext.RequestContext) (res interface{}) {
	defer func() {
		if i := recover(); i != nil {
			err := util.PanicToError(i)
			rctx.Log.Errorf("Panic received on %s %s: %s", r.Method, util.GetLogSafeUrl(r), err)
			sentry.CaptureException(err)
			res = api.InternalServerError(err.Error())
		}
	}()

	res = h.h(r, rctx)
	if res == nil {
		res = &api.EmptyResponse{}
	}
	return res
}

func statusCodeFor(res *api.ErrorResponse) int {
	switch res.Code {
	case common.ErrCodeUnknownToken, common.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case common.ErrCodeNotFound:
		return http.StatusNotFound
	case common.ErrCodeBadRequest, common.ErrCodeBadJson:
		return http.StatusBadRequest
	case common.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case common.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default: // Treat as unknown (a generic server error)
		return http.StatusInternalServerError
	}
}

