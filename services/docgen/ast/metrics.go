// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level meter for declaration analysis. Without an SDK exporter
// configured these are no-ops, so CLI runs pay nothing.
var meter = otel.Meter("aleutian.pydocgen.ast")

// Metrics for analyze operations.
var (
	analyzeLatency metric.Float64Histogram
	analyzeTotal   metric.Int64Counter
	declsFound     metric.Int64Histogram
	analyzeErrors  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		analyzeLatency, err = meter.Float64Histogram(
			"docgen_analyze_duration_seconds",
			metric.WithDescription("Duration of Python analyze operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		analyzeTotal, err = meter.Int64Counter(
			"docgen_analyze_total",
			metric.WithDescription("Total number of analyze operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		declsFound, err = meter.Int64Histogram(
			"docgen_declarations_found",
			metric.WithDescription("Number of declarations found per analyze"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		analyzeErrors, err = meter.Int64Counter(
			"docgen_analyze_errors_total",
			metric.WithDescription("Total number of analyze errors"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordAnalyze records metrics for one analyze operation. File paths are
// deliberately not recorded as attributes to keep cardinality bounded.
func recordAnalyze(ctx context.Context, declCount int, duration time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return // Silently skip if metrics init failed.
	}

	attrs := metric.WithAttributes(
		attribute.Bool("success", success),
	)

	analyzeLatency.Record(ctx, duration.Seconds(), attrs)
	analyzeTotal.Add(ctx, 1, attrs)

	if success {
		declsFound.Record(ctx, int64(declCount))
	} else {
		analyzeErrors.Add(ctx, 1)
	}
}
