/*
Copyright 2025 The JQL Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package batchserver is the HTTP backend for `jql batch --serve`,
// adapted from github.com/antflydb/antfly-go/libaf/healthserver: the
// same /healthz liveness-probe shape, plus a /walk endpoint that runs a
// selector against a POSTed JSON document and a walks-total Prometheus
// counter labeled by outcome (ok, error, bad_request), reusing the teacher's metrics-server wiring
// style for a long-running evaluation mode instead of a Kubernetes
// sidecar.
package batchserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/antflydb/jql"
)

var (
	walksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jql_batch_walks_total",
		Help: "Total number of /walk requests handled, by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(walksTotal)
}

// walkRequest is the /walk endpoint's POST body.
type walkRequest struct {
	Selector string          `json:"selector"`
	Input    json.RawMessage `json:"input"`
}

// walkResponse is the /walk endpoint's JSON response.
type walkResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// New builds the combined handler: /healthz, /metrics, and /walk all on
// one mux, for the common case where no separate metrics address is
// configured.
func New(logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mountMetrics(mux)
	mountWalk(mux, logger)
	return mux
}

// NewMetrics builds a handler with only /healthz and /metrics, for the
// case where ServeConfig.MetricsAddr names a separate listen address
// from the walk endpoint, mirroring libaf/healthserver's split between
// application traffic and the Kubernetes-probe server.
func NewMetrics() http.Handler {
	mux := http.NewServeMux()
	mountMetrics(mux)
	return mux
}

func mountMetrics(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func mountWalk(mux *http.ServeMux, logger *zap.Logger) {
	mux.HandleFunc("/walk", func(w http.ResponseWriter, r *http.Request) {
		handleWalk(logger, w, r)
	})
}

func handleWalk(logger *zap.Logger, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req walkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		walksTotal.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, walkResponse{Error: err.Error()})
		return
	}

	result, err := jql.WalkerJSON(req.Input, req.Selector)
	if err != nil {
		walksTotal.WithLabelValues("error").Inc()
		logger.Info("walk request failed", zap.Error(err), zap.String("selector", req.Selector))
		writeJSON(w, http.StatusOK, walkResponse{Error: err.Error()})
		return
	}

	walksTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, walkResponse{Result: result})
}

func writeJSON(w http.ResponseWriter, status int, resp walkResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Serve starts the batch server on addr and blocks until it errors. If
// metricsAddr is non-empty and differs from addr, /healthz and /metrics
// are served separately on metricsAddr instead of being mounted on addr.
func Serve(logger *zap.Logger, addr, metricsAddr string) error {
	walkHandler := func() http.Handler {
		if metricsAddr != "" && metricsAddr != addr {
			mux := http.NewServeMux()
			mountWalk(mux, logger)
			return mux
		}
		return New(logger)
	}()

	if metricsAddr != "" && metricsAddr != addr {
		go func() {
			logger.Info("starting jql batch metrics server", zap.String("addr", metricsAddr))
			metricsServer := &http.Server{
				Addr:              metricsAddr,
				Handler:           NewMetrics(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			if err := metricsServer.ListenAndServe(); err != nil {
				logger.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           walkHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("starting jql batch server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("batch server: %w", err)
	}
	return nil
}
