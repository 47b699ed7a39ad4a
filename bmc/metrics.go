// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package bmc

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var requestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redfish_requests_total",
		Help: "Number of Redfish requests sent to the BMC",
	},
	[]string{"method", "result"},
)

func init() {
	metrics.Registry.MustRegister(requestsTotal)
}

func observeRequest(method string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	requestsTotal.WithLabelValues(method, result).Inc()
}
