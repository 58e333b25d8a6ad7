// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package debugserver exposes an optimizer's memo and search statistics
// over HTTP, for ad hoc inspection during development: GET /dump renders
// cascades.Optimizer.Dump's text form, GET /metrics exposes the same
// counters as Prometheus gauges.
package debugserver

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/cascadeopt/cascade/cascades"
)

// Server is an HTTP introspection endpoint over a single *cascades.Optimizer.
// It takes no ownership of the optimizer's lifecycle: callers start and
// stop Server independently of when they run optimization passes.
type Server struct {
	opt *cascades.Optimizer
	mux *mux.Router
	reg *prometheus.Registry

	ruleMatches  *prometheus.GaugeVec
	ruleBindings *prometheus.GaugeVec
	taskCounts   *prometheus.GaugeVec
}

// New builds a Server that reports on opt. Call (*Server).Handler to get
// an http.Handler, or ListenAndServe to run it directly.
func New(opt *cascades.Optimizer) *Server {
	s := &Server{
		opt: opt,
		mux: mux.NewRouter(),
		reg: prometheus.NewRegistry(),
		ruleMatches: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cascade_rule_match_total",
			Help: "Number of times a rule's matcher found at least one binding.",
		}, []string{"rule_id"}),
		ruleBindings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cascade_rule_bindings_total",
			Help: "Total bindings enumerated for a rule across all its matches.",
		}, []string{"rule_id"}),
		taskCounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cascade_task_total",
			Help: "Number of times each search task kind has run.",
		}, []string{"task"}),
	}
	s.reg.MustRegister(s.ruleMatches, s.ruleBindings, s.taskCounts)

	metrics := promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})
	s.mux.HandleFunc("/dump", s.handleDump).Methods(http.MethodGet)
	s.mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		s.refreshMetrics()
		metrics.ServeHTTP(w, r)
	}).Methods(http.MethodGet)
	return s
}

// Handler returns the server's http.Handler, for embedding into a larger
// mux or passing to httptest.NewServer.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe blocks serving on addr until the process is killed or the
// listener errors.
func (s *Server) ListenAndServe(addr string) error {
	logrus.WithField("addr", addr).Info("debugserver: listening")
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	s.refreshMetrics()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(s.opt.Dump())); err != nil {
		logrus.WithError(err).Warn("debugserver: failed writing dump response")
	}
}

// refreshMetrics pulls the optimizer's current Stats into the Prometheus
// gauges just before a /metrics scrape, rather than updating them
// continuously: Stats only changes between optimization passes, not
// while a request is in flight.
func (s *Server) refreshMetrics() {
	stats := s.opt.Stats
	for ruleID, count := range stats.RuleMatchCount {
		s.ruleMatches.WithLabelValues(ruleLabel(ruleID)).Set(float64(count))
	}
	for ruleID, count := range stats.RuleTotalBindings {
		s.ruleBindings.WithLabelValues(ruleLabel(ruleID)).Set(float64(count))
	}
	s.taskCounts.WithLabelValues("optimize_group").Set(float64(stats.OptimizeGroupCount))
	s.taskCounts.WithLabelValues("optimize_expr").Set(float64(stats.OptimizeExprCount))
	s.taskCounts.WithLabelValues("explore_group").Set(float64(stats.ExploreGroupCount))
	s.taskCounts.WithLabelValues("apply_rule").Set(float64(stats.ApplyRuleCount))
	s.taskCounts.WithLabelValues("optimize_input").Set(float64(stats.OptimizeInputCount))
}

func ruleLabel(ruleID int) string { return strconv.Itoa(ruleID) }
