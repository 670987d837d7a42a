package report

import (
	"io"
	"sort"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/roach88/buildlens/internal/providers"
)

// Metric names written by WritePrometheus.
const (
	MetricFactAvailable        = "buildlens_fact_available"
	MetricPhaseDuration        = "buildlens_phase_duration_seconds"
	MetricCriticalPathDuration = "buildlens_critical_path_duration_seconds"
	MetricEstimatedCores       = "buildlens_estimated_cores"
	MetricMajorGC              = "buildlens_major_gc_seconds"
)

// WritePrometheus writes r in the Prometheus text exposition format.
//
// Every fact contributes to buildlens_fact_available: 1 when present and
// non-empty, 0 when empty or failed. Known fact types add their own gauges
// when they are non-empty.
func WritePrometheus(w io.Writer, r *Report) error {
	for _, mf := range MetricFamilies(r) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// MetricFamilies converts r into metric families in a stable order.
func MetricFamilies(r *Report) []*dto.MetricFamily {
	available := gaugeFamily(MetricFactAvailable, "Whether a fact was produced and is non-empty.")
	for _, pf := range r.Providers {
		for _, f := range pf.Facts {
			v := 1.0
			if f.Empty {
				v = 0
			}
			available.Metric = append(available.Metric, gauge(v, "provider", pf.Name, "fact", f.Type))
		}
	}
	for _, e := range r.Errors {
		available.Metric = append(available.Metric, gauge(0, "provider", e.Provider, "fact", e.Type))
	}
	sort.SliceStable(available.Metric, func(i, j int) bool {
		return labelValue(available.Metric[i], "fact") < labelValue(available.Metric[j], "fact")
	})

	out := []*dto.MetricFamily{available}

	if phases, ok := Lookup[*providers.BazelPhases](r); ok && !phases.IsEmpty() {
		mf := gaugeFamily(MetricPhaseDuration, "Duration of each Bazel phase.")
		for _, d := range phases.Phases {
			mf.Metric = append(mf.Metric, gauge(d.Duration().Seconds(), "phase", string(d.Phase)))
		}
		out = append(out, mf)
	}
	if cp, ok := Lookup[*providers.CriticalPath](r); ok && !cp.IsEmpty() {
		mf := gaugeFamily(MetricCriticalPathDuration, "Total duration of the critical path.")
		mf.Metric = append(mf.Metric, gauge(cp.Duration.Seconds()))
		out = append(out, mf)
	}
	if cores, ok := Lookup[*providers.EstimatedCores](r); ok && !cores.IsEmpty() {
		mf := gaugeFamily(MetricEstimatedCores, "Number of skyframe evaluator threads.")
		mf.Metric = append(mf.Metric, gauge(float64(cores.Count)))
		out = append(out, mf)
	}
	if gc, ok := Lookup[*providers.GarbageCollectionStats](r); ok && !gc.IsEmpty() {
		mf := gaugeFamily(MetricMajorGC, "Time spent in major garbage collections.")
		mf.Metric = append(mf.Metric, gauge(gc.MajorDuration.Seconds()))
		out = append(out, mf)
	}
	return out
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

// gauge builds a gauge sample from alternating label names and values.
func gauge(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: proto.Float64(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	return m
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
