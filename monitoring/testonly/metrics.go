// Copyright 2026 Google LLC. All Rights Reserved.
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

// Package testonly holds conformance tests for monitoring backends.
package testonly

import (
	"testing"

	"github.com/iotledger/iotcrypto/monitoring"
)

var labelCases = []struct {
	suffix     string
	labelNames []string
	labelVals  []string
}{
	{suffix: "0", labelNames: nil, labelVals: nil},
	{suffix: "1", labelNames: []string{"op"}, labelVals: []string{"split"}},
	{suffix: "2", labelNames: []string{"op", "result"}, labelVals: []string{"verify", "ok"}},
}

// bogus returns vals with one extra label value.
func bogus(vals []string) []string {
	return append(append([]string{}, vals...), "bogus")
}

// TestCounter checks the Counter created by factory.
func TestCounter(t *testing.T, factory monitoring.MetricFactory) {
	t.Helper()
	for _, tc := range labelCases {
		name := "test_counter" + tc.suffix
		c := factory.NewCounter(name, "Test only", tc.labelNames...)
		for _, step := range []struct {
			apply func()
			want  float64
		}{
			{apply: func() {}, want: 0},
			{apply: func() { c.Inc(tc.labelVals...) }, want: 1},
			{apply: func() { c.Add(2.5, tc.labelVals...) }, want: 3.5},
			{apply: func() { c.Add(10, bogus(tc.labelVals)...); c.Inc(bogus(tc.labelVals)...) }, want: 3.5},
		} {
			step.apply()
			if got := c.Value(tc.labelVals...); got != step.want {
				t.Errorf("Counter(%s)[%v].Value()=%v, want %v", name, tc.labelVals, got, step.want)
			}
		}
		if got := c.Value(bogus(tc.labelVals)...); got != 0 {
			t.Errorf("Counter(%s) with extra label: Value()=%v, want 0", name, got)
		}
	}
}

// TestGauge checks the Gauge created by factory.
func TestGauge(t *testing.T, factory monitoring.MetricFactory) {
	t.Helper()
	for _, tc := range labelCases {
		name := "test_gauge" + tc.suffix
		g := factory.NewGauge(name, "Test only", tc.labelNames...)
		for _, step := range []struct {
			apply func()
			want  float64
		}{
			{apply: func() {}, want: 0},
			{apply: func() { g.Inc(tc.labelVals...) }, want: 1},
			{apply: func() { g.Dec(tc.labelVals...) }, want: 0},
			{apply: func() { g.Add(2.5, tc.labelVals...) }, want: 2.5},
			{apply: func() { g.Set(42, tc.labelVals...) }, want: 42},
			{apply: func() { g.Set(120, bogus(tc.labelVals)...); g.Dec(bogus(tc.labelVals)...) }, want: 42},
		} {
			step.apply()
			if got := g.Value(tc.labelVals...); got != step.want {
				t.Errorf("Gauge(%s)[%v].Value()=%v, want %v", name, tc.labelVals, got, step.want)
			}
		}
		if got := g.Value(bogus(tc.labelVals)...); got != 0 {
			t.Errorf("Gauge(%s) with extra label: Value()=%v, want 0", name, got)
		}
	}
}

// TestHistogram checks the Histogram created by factory.
func TestHistogram(t *testing.T, factory monitoring.MetricFactory) {
	t.Helper()
	for _, tc := range labelCases {
		name := "test_histogram" + tc.suffix
		h := factory.NewHistogram(name, "Test only", monitoring.SizeBuckets(), tc.labelNames...)
		if gotCount, gotSum := h.Info(tc.labelVals...); gotCount != 0 || gotSum != 0 {
			t.Errorf("Histogram(%s)[%v].Info()=%v,%v, want 0,0", name, tc.labelVals, gotCount, gotSum)
		}
		for _, v := range []float64{1, 2, 3} {
			h.Observe(v, tc.labelVals...)
		}
		if gotCount, gotSum := h.Info(tc.labelVals...); gotCount != 3 || gotSum != 6 {
			t.Errorf("Histogram(%s)[%v].Info()=%v,%v, want 3,6", name, tc.labelVals, gotCount, gotSum)
		}
		h.Observe(100, bogus(tc.labelVals)...)
		if gotCount, gotSum := h.Info(bogus(tc.labelVals)...); gotCount != 0 || gotSum != 0 {
			t.Errorf("Histogram(%s) with extra label: Info()=%v,%v, want 0,0", name, gotCount, gotSum)
		}
	}
}
