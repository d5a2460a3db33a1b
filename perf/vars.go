package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	DispatchLatency  = metric.NewHistogram("1m1s")
	BatchSize        = metric.NewHistogram("10s1s")
	ActionsPerSecond = metric.NewCounter("10s1s")
	ActionErrors     = metric.NewCounter("1m1s")
	AddressCount     = expvar.NewInt("raven:Addresses")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("raven:DispatchLatency", DispatchLatency)
	expvar.Publish("raven:BatchSize", BatchSize)
	expvar.Publish("raven:Actions/s", ActionsPerSecond)
	expvar.Publish("raven:ActionErrors", ActionErrors)
}
