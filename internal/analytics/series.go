// Package analytics reduces raw provider metrics into normalized summaries.
// Everything here is pure: no I/O and no clock reads.
package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

const windowLength = 30 * 24 * time.Hour

// MetricValue is one data point of an insights series. Value is kept raw because
// providers return numbers, numeric strings or breakdown objects for the same field.
type MetricValue struct {
	Value   json.RawMessage `json:"value"`
	EndTime string          `json:"end_time,omitempty"`
}

// MetricSeries is a named insights time series, e.g. {"name":"page_impressions","values":[...]}.
type MetricSeries struct {
	Name   string        `json:"name"`
	Period string        `json:"period,omitempty"`
	Values []MetricValue `json:"values"`
}

// SumMetric sums the values of the series called name. Non-numeric and negative
// values count as 0.
// It returns nil when the series is missing or has no data points, so "no data" never
// reads as zero.
func SumMetric(name string, series []MetricSeries) *float64 {
	for _, s := range series {
		if s.Name != name {
			continue
		}
		if len(s.Values) == 0 {
			return nil
		}
		var total float64
		for _, v := range s.Values {
			total += numericValue(v.Value)
		}
		return &total
	}
	return nil
}

// SumMetricInt is SumMetric rounded to the nearest integer.
func SumMetricInt(name string, series []MetricSeries) *int64 {
	sum := SumMetric(name, series)
	if sum == nil {
		return nil
	}
	n := int64(math.Round(*sum))
	return &n
}

func numericValue(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return countable(f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return countable(parsed)
		}
	}

	return 0
}

// countable clamps a point to a non-negative finite count.
func countable(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// Window is a closed reporting interval.
type Window struct {
	Since time.Time
	Until time.Time
}

// Windows returns the current [now-30d, now] and previous [now-60d, now-30d] windows.
func Windows(now time.Time) (current, previous Window) {
	current = Window{Since: now.Add(-windowLength), Until: now}
	previous = Window{Since: now.Add(-2 * windowLength), Until: now.Add(-windowLength)}
	return current, previous
}
