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

// Package monitoring provides the metric abstraction used by the dealer and
// ledger packages, so that they can be instrumented without depending on a
// particular metrics backend.
package monitoring

// MetricFactory creates named metrics. Label names given at creation fix the
// number of label values every later call must supply.
type MetricFactory interface {
	NewCounter(name, help string, labelNames ...string) Counter
	NewGauge(name, help string, labelNames ...string) Gauge
	// NewHistogram creates a histogram with the given bucket boundaries; nil
	// buckets select the backend default.
	NewHistogram(name, help string, buckets []float64, labelNames ...string) Histogram
}

// Counter is a monotonically increasing value.
type Counter interface {
	Inc(labelVals ...string)
	Add(val float64, labelVals ...string)
	// Value is mostly useful in tests.
	Value(labelVals ...string) float64
}

// Gauge is a value that can go up and down.
type Gauge interface {
	Inc(labelVals ...string)
	Dec(labelVals ...string)
	Add(val float64, labelVals ...string)
	Set(val float64, labelVals ...string)
	Value(labelVals ...string) float64
}

// Histogram records a distribution of observations.
type Histogram interface {
	Observe(val float64, labelVals ...string)
	// Info returns the count and sum of observations for a set of labels.
	Info(labelVals ...string) (uint64, float64)
}
