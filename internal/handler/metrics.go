package handler

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// listReads counts page reads by backing mode, view and outcome.
var listReads = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "listresult",
		Subsystem: "list",
		Name:      "reads_total",
		Help:      "Page reads served by list endpoints.",
	},
	[]string{"mode", "view", "outcome"},
)

func observeRead(deferred bool, view string, err error) {
	mode := "materialized"
	if deferred {
		mode = "deferred"
	}
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = "canceled"
	default:
		outcome = "error"
	}
	listReads.WithLabelValues(mode, view, outcome).Inc()
}
