package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var HttpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "asset_http_requests_total",
}, []string{"host", "action", "method"})
var HttpResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "asset_http_responses_total",
}, []string{"host", "action", "method", "statusCode"})
var HttpResponseTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name: "asset_http_response_time_seconds",
}, []string{"host", "action", "method"})
var StorageOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "asset_storage_operations_total",
}, []string{"backend", "operation"})
var AssetsScanned = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "asset_files_scanned_total",
})
var AssetsMigrated = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "asset_files_migrated_total",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(HttpRequests)
	prometheus.MustRegister(HttpResponses)
	prometheus.MustRegister(HttpResponseTime)
	prometheus.MustRegister(StorageOperations)
	prometheus.MustRegister(AssetsScanned)
	prometheus.MustRegister(AssetsMigrated)
}
