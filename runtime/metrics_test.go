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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterMetrics(reg))
	// The counters can only be registered once per registry.
	assert.Error(t, RegisterMetrics(reg))

	site := newBinarySite(t, OpXor)
	_, err := site.Invoke(newInt(1), newInt(2))
	require.NoError(t, err)
	n, err := testutil.GatherAndCount(reg, "pyrt_callsite_misses_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	assert.GreaterOrEqual(t, testutil.ToFloat64(callSiteMisses.WithLabelValues("xor")), 1.0)
}

func TestSiteMetricsLabels(t *testing.T) {
	before := testutil.ToFloat64(callSiteHits.WithLabelValues("lshift"))
	m := newSiteMetrics(OpLShift)
	m.hits.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(callSiteHits.WithLabelValues("lshift")))
}
