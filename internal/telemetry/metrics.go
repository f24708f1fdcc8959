// Package telemetry wires prometheus metrics and OpenTelemetry tracing for
// nfhcheck.
package telemetry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// GenerateMetricsTable gathers g and renders one markdown row per series.
// Histograms are shown as their sample count and sum.
func GenerateMetricsTable(g prometheus.Gatherer) (string, error) {
	families, err := g.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	var sb strings.Builder
	sb.WriteString("| Metric | Labels | Type | Value | Description |\n")
	sb.WriteString("|--------|--------|------|-------|-------------|\n")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				mf.GetName(), labelString(m.GetLabel()),
				strings.ToLower(mf.GetType().String()), valueString(mf.GetType(), m), mf.GetHelp()))
		}
	}
	return sb.String(), nil
}

func labelString(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return "-"
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.GetName() + "=" + p.GetValue()
	}
	return strings.Join(parts, ",")
}

func valueString(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%.0f", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%.2f", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("n=%d sum=%.6fs", h.GetSampleCount(), h.GetSampleSum())
	default:
		return "?"
	}
}
