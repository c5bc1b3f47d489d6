package webserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/api"
	"github.com/ridgeline-tours/asset-repo/api/custom"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/limits"
)

type route struct {
	method  string
	handler handler
}

var srv *http.Server
var srvDone chan struct{}
var srvLock = &sync.Mutex{}
var waitGroup = &sync.WaitGroup{}
var reload = false
var lastMigration *custom.AssetMigration

// BuildRoutes assembles the router without rate limiting or Sentry binding.
func BuildRoutes(migration *custom.AssetMigration) http.Handler {
	rtr := mux.NewRouter()
	counter := &requestCounter{}

	optionsHandler := handler{api.EmptyResponseHandler, "options_request", counter}
	migrateHandler := handler{api.AdminRoute(migration.MigratePublicFiles), "migrate_public_files", counter}
	healthzHandler := handler{custom.GetHealthz, "healthz", counter}
	versionHandler := handler{custom.GetVersion, "version", counter}

	routes := map[string]route{
		"/api/migrate-public-files": {http.MethodPost, migrateHandler},
		"/api/version":              {http.MethodGet, versionHandler},
	}

	for routePath, r := range routes {
		logrus.Debug("Registering route: " + r.method + " " + routePath)
		rtr.Handle(routePath, r.handler).Methods(r.method)
		rtr.Handle(routePath, optionsHandler).Methods(http.MethodOptions)

		// Trailing slashes should match the same routes
		rtr.Handle(routePath+"/", r.handler).Methods(r.method)
		rtr.Handle(routePath+"/", optionsHandler).Methods(http.MethodOptions)
	}

	rtr.Handle("/healthz", healthzHandler).Methods(http.MethodOptions, http.MethodGet)

	rtr.NotFoundHandler = handler{api.NotFoundHandler, "not_found", counter}
	rtr.MethodNotAllowedHandler = handler{api.MethodNotAllowedHandler, "method_not_allowed", counter}

	return rtr
}

func Init(migration *custom.AssetMigration) *sync.WaitGroup {
	cfg := config.Get()
	address := net.JoinHostPort(cfg.General.BindAddress, strconv.Itoa(cfg.General.Port))

	handler := limits.Wrap(cfg.RateLimit, BuildRoutes(migration))
	if cfg.RateLimit.Enabled {
		logrus.Debug("Enabling rate limit")
	}

	// Sentry is bound outermost so it sees everything
	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: false})

	srvLock.Lock()
	srv = &http.Server{Addr: address, Handler: sentryHandler.Handle(handler), ReadHeaderTimeout: 30 * time.Second}
	s := srv
	done := make(chan struct{})
	srvDone = done
	lastMigration = migration
	if !reload {
		waitGroup.Add(1)
	}
	reload = false
	srvLock.Unlock()

	go func() {
		//goland:noinspection HttpUrlsUsage
		logrus.WithField("address", address).Info("Started up. Listening at http://" + address)
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			sentry.CaptureException(err)
			logrus.Fatal(err)
		}

		defer close(done)
		srvLock.Lock()
		defer srvLock.Unlock()
		if srv == s {
			srv = nil
		}
		// Only notify the main thread that we're done if we're actually done
		if !reload {
			waitGroup.Done()
		}
	}()

	return waitGroup
}

func Reload() {
	srvLock.Lock()
	reload = true
	migration := lastMigration
	srvLock.Unlock()

	Stop()
	Init(migration)
}

func Stop() {
	srvLock.Lock()
	s := srv
	done := srvDone
	srvLock.Unlock()

	if s != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			logrus.Error("Error shutting down web server: ", err)
		}
		<-done
	}
}
