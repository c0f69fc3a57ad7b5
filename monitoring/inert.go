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

package monitoring

import (
	"fmt"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

// InertMetricFactory creates metrics that only keep their values in memory.
// It is the default when no backend is configured.
type InertMetricFactory struct{}

// NewCounter creates a new in-memory counter.
func (InertMetricFactory) NewCounter(name, help string, labelNames ...string) Counter {
	return newInertFloat(name, labelNames)
}

// NewGauge creates a new in-memory gauge.
func (InertMetricFactory) NewGauge(name, help string, labelNames ...string) Gauge {
	return newInertFloat(name, labelNames)
}

// NewHistogram creates a new in-memory histogram; buckets are ignored.
func (InertMetricFactory) NewHistogram(name, help string, _ []float64, labelNames ...string) Histogram {
	return &InertDistribution{
		name:       name,
		labelCount: len(labelNames),
		counts:     make(map[string]uint64),
		sums:       make(map[string]float64),
	}
}

// InertFloat is an in-memory Counter and Gauge.
type InertFloat struct {
	name       string
	labelCount int
	mu         sync.Mutex
	vals       map[string]float64
}

func newInertFloat(name string, labelNames []string) *InertFloat {
	return &InertFloat{name: name, labelCount: len(labelNames), vals: make(map[string]float64)}
}

// update applies fn to the value stored for labelVals, dropping the update
// if the label count is wrong.
func (m *InertFloat) update(labelVals []string, fn func(float64) float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, err := keyForLabels(m.name, labelVals, m.labelCount)
	if err != nil {
		klog.Error(err)
		return
	}
	m.vals[key] = fn(m.vals[key])
}

// Inc adds 1.
func (m *InertFloat) Inc(labelVals ...string) {
	m.Add(1, labelVals...)
}

// Dec subtracts 1.
func (m *InertFloat) Dec(labelVals ...string) {
	m.Add(-1, labelVals...)
}

// Add adds val.
func (m *InertFloat) Add(val float64, labelVals ...string) {
	m.update(labelVals, func(v float64) float64 { return v + val })
}

// Set replaces the value.
func (m *InertFloat) Set(val float64, labelVals ...string) {
	m.update(labelVals, func(float64) float64 { return val })
}

// Value returns the current value, or 0 for a wrong label count.
func (m *InertFloat) Value(labelVals ...string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, err := keyForLabels(m.name, labelVals, m.labelCount)
	if err != nil {
		klog.Error(err)
		return 0
	}
	return m.vals[key]
}

// InertDistribution is an in-memory Histogram that tracks count and sum.
type InertDistribution struct {
	name       string
	labelCount int
	mu         sync.Mutex
	counts     map[string]uint64
	sums       map[string]float64
}

// Observe records val.
func (m *InertDistribution) Observe(val float64, labelVals ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, err := keyForLabels(m.name, labelVals, m.labelCount)
	if err != nil {
		klog.Error(err)
		return
	}
	m.counts[key]++
	m.sums[key] += val
}

// Info returns the count and sum of observations.
func (m *InertDistribution) Info(labelVals ...string) (uint64, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, err := keyForLabels(m.name, labelVals, m.labelCount)
	if err != nil {
		klog.Error(err)
		return 0, 0
	}
	return m.counts[key], m.sums[key]
}

func keyForLabels(name string, labelVals []string, count int) (string, error) {
	if len(labelVals) != count {
		return "", fmt.Errorf("monitoring: metric %q got %d label values, want %d", name, len(labelVals), count)
	}
	return strings.Join(labelVals, "|"), nil
}
