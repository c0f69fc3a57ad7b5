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

// Package prometheus provides a monitoring.MetricFactory backed by the
// Prometheus client library.
package prometheus

import (
	"errors"
	"fmt"

	"github.com/iotledger/iotcrypto/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"k8s.io/klog/v2"
)

// MetricFactory creates Prometheus metrics. Every metric is a vector, so
// unlabelled metrics are vectors with no label names.
type MetricFactory struct {
	// Prefix is prepended to every metric name.
	Prefix string
	// Registerer receives the metrics. Nil means
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// register adds c to the registerer. If an identical collector is already
// registered, that collector is returned instead so that several components
// can share a metric.
func (f MetricFactory) register(c prometheus.Collector) prometheus.Collector {
	reg := f.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(fmt.Sprintf("prometheus: failed to register metric: %v", err))
	}
	return c
}

// NewCounter creates and registers a counter vector.
func (f MetricFactory) NewCounter(name, help string, labelNames ...string) monitoring.Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: f.Prefix + name, Help: help}, labelNames)
	return &Counter{vec: f.register(vec).(*prometheus.CounterVec)}
}

// NewGauge creates and registers a gauge vector.
func (f MetricFactory) NewGauge(name, help string, labelNames ...string) monitoring.Gauge {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: f.Prefix + name, Help: help}, labelNames)
	return &Gauge{vec: f.register(vec).(*prometheus.GaugeVec)}
}

// NewHistogram creates and registers a histogram vector. Nil buckets means
// prometheus.DefBuckets.
func (f MetricFactory) NewHistogram(name, help string, buckets []float64, labelNames ...string) monitoring.Histogram {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: f.Prefix + name, Help: help, Buckets: buckets}, labelNames)
	return &Histogram{vec: f.register(vec).(*prometheus.HistogramVec)}
}

// Counter is a monitoring.Counter backed by a Prometheus counter vector.
type Counter struct {
	vec *prometheus.CounterVec
}

func (m *Counter) child(labelVals []string) prometheus.Counter {
	c, err := m.vec.GetMetricWithLabelValues(labelVals...)
	if err != nil {
		klog.Errorf("prometheus: counter: %v", err)
		return nil
	}
	return c
}

// Inc adds 1.
func (m *Counter) Inc(labelVals ...string) {
	if c := m.child(labelVals); c != nil {
		c.Inc()
	}
}

// Add adds val, which must not be negative.
func (m *Counter) Add(val float64, labelVals ...string) {
	if c := m.child(labelVals); c != nil {
		c.Add(val)
	}
}

// Value reads the current value back from the counter.
func (m *Counter) Value(labelVals ...string) float64 {
	c := m.child(labelVals)
	if c == nil {
		return 0
	}
	pb := read(c)
	if pb.GetCounter() == nil {
		return 0
	}
	return pb.GetCounter().GetValue()
}

// Gauge is a monitoring.Gauge backed by a Prometheus gauge vector.
type Gauge struct {
	vec *prometheus.GaugeVec
}

func (m *Gauge) child(labelVals []string) prometheus.Gauge {
	g, err := m.vec.GetMetricWithLabelValues(labelVals...)
	if err != nil {
		klog.Errorf("prometheus: gauge: %v", err)
		return nil
	}
	return g
}

// Inc adds 1.
func (m *Gauge) Inc(labelVals ...string) {
	if g := m.child(labelVals); g != nil {
		g.Inc()
	}
}

// Dec subtracts 1.
func (m *Gauge) Dec(labelVals ...string) {
	if g := m.child(labelVals); g != nil {
		g.Dec()
	}
}

// Add adds val.
func (m *Gauge) Add(val float64, labelVals ...string) {
	if g := m.child(labelVals); g != nil {
		g.Add(val)
	}
}

// Set replaces the value.
func (m *Gauge) Set(val float64, labelVals ...string) {
	if g := m.child(labelVals); g != nil {
		g.Set(val)
	}
}

// Value reads the current value back from the gauge.
func (m *Gauge) Value(labelVals ...string) float64 {
	g := m.child(labelVals)
	if g == nil {
		return 0
	}
	return read(g).GetGauge().GetValue()
}

// Histogram is a monitoring.Histogram backed by a Prometheus histogram
// vector.
type Histogram struct {
	vec *prometheus.HistogramVec
}

func (m *Histogram) child(labelVals []string) prometheus.Observer {
	o, err := m.vec.GetMetricWithLabelValues(labelVals...)
	if err != nil {
		klog.Errorf("prometheus: histogram: %v", err)
		return nil
	}
	return o
}

// Observe records val.
func (m *Histogram) Observe(val float64, labelVals ...string) {
	if o := m.child(labelVals); o != nil {
		o.Observe(val)
	}
}

// Info reads the sample count and sum back from the histogram.
func (m *Histogram) Info(labelVals ...string) (uint64, float64) {
	o := m.child(labelVals)
	if o == nil {
		return 0, 0
	}
	metric, ok := o.(prometheus.Metric)
	if !ok {
		klog.Errorf("prometheus: histogram child %T is not a metric", o)
		return 0, 0
	}
	h := read(metric).GetHistogram()
	return h.GetSampleCount(), h.GetSampleSum()
}

// read returns the protobuf form of m, or an empty metric on failure.
func read(m prometheus.Metric) *dto.Metric {
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		klog.Errorf("prometheus: failed to read metric %v: %v", m.Desc(), err)
	}
	return &pb
}
