// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	coresGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hardware_inventory_cores",
			Help: "Number of processor cores by functional state",
		},
		[]string{"functional_state"},
	)
	dimmsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hardware_inventory_dimms",
			Help: "Number of present DIMMs by functional state",
		},
		[]string{"functional_state"},
	)
	fetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hardware_inventory_fetch_failures_total",
			Help: "Number of inventory resources that could not be fetched",
		},
		[]string{"resource"},
	)
)

func init() {
	metrics.Registry.MustRegister(coresGauge, dimmsGauge, fetchFailures)
}

func setStateGauge(gauge *prometheus.GaugeVec, states []string) {
	counts := make(map[string]int, len(states))
	for _, state := range states {
		counts[state]++
	}
	gauge.Reset()
	for state, count := range counts {
		gauge.WithLabelValues(state).Set(float64(count))
	}
}
