// Copyright 2016 Google Inc. All Rights Reserved.
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

package pyrt

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "pyrt"

// The counters are always live. Nothing is exported until RegisterMetrics
// hands them to a registerer.
var (
	callSiteHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "callsite",
		Name:      "hits_total",
		Help:      "Invocations served by a call site's cached dispatch decision. Sites add their hits in batches and on each resolution.",
	}, []string{"op"})
	callSiteMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "callsite",
		Name:      "misses_total",
		Help:      "Invocations that had to resolve operator dispatch.",
	}, []string{"op"})
	callSiteFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "callsite",
		Name:      "failures_total",
		Help:      "Resolutions that found no implementation for the operand types. A cached plan whose implementations decline at call time is not counted.",
	}, []string{"op"})
	registryWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "registry",
		Name:      "writes_total",
		Help:      "Changes to the operator slots of mutable types.",
	})
)

// RegisterMetrics registers the runtime's counters with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{callSiteHits, callSiteMisses, callSiteFailures, registryWrites} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// siteMetrics holds the counters of one call site, bound to its operator
// label when the site is created.
type siteMetrics struct {
	hits, misses, failures prometheus.Counter
}

func newSiteMetrics(op Op) siteMetrics {
	label := op.Name()
	return siteMetrics{
		hits:     callSiteHits.WithLabelValues(label),
		misses:   callSiteMisses.WithLabelValues(label),
		failures: callSiteFailures.WithLabelValues(label),
	}
}
