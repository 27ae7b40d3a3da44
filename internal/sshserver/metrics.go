// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	sessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tarsh_sessions_total",
		Help: "Total number of SSH sessions accepted",
	})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tarsh_active_sessions",
		Help: "Number of currently active SSH sessions",
	})
	commandsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tarsh_commands_total",
		Help: "Total number of shell commands recorded across sessions",
	})
	sessionErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tarsh_session_errors_total",
		Help: "Total number of sessions that ended with an error",
	})
)

// newMetricsServer returns an HTTP server exposing the prometheus registry
// on /metrics at addr.
func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux}
}
