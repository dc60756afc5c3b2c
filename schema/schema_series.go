package schema

// MetricSample is one point of a metric time series. Valid distinguishes a
// genuinely observed zero from a month with no data: absent samples are
// excluded from regressions and averages, never treated as 0.
type MetricSample struct {
	Month Month   `json:"month"`
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// MetricSeries is the chronological value history of one dimension for one
// project. Ordering is significant; gaps are allowed but shrink the usable
// windows downstream.
type MetricSeries struct {
	Dimension    string         `json:"dimension"`
	BadDirection Direction      `json:"bad_direction"`
	Samples      []MetricSample `json:"samples"`
}

// Values returns the valid sample values in chronological order.
func (s *MetricSeries) Values() []float64 {
	out := make([]float64, 0, len(s.Samples))
	for _, sm := range s.Samples {
		if sm.Valid {
			out = append(out, sm.Value)
		}
	}
	return out
}

// UsableLen returns the number of valid samples.
func (s *MetricSeries) UsableLen() int {
	n := 0
	for _, sm := range s.Samples {
		if sm.Valid {
			n++
		}
	}
	return n
}

// Append adds a valid sample for the given month.
func (s *MetricSeries) Append(month Month, value float64) {
	s.Samples = append(s.Samples, MetricSample{Month: month, Value: value, Valid: true})
}

// AppendGap records a month with no observation.
func (s *MetricSeries) AppendGap(month Month) {
	s.Samples = append(s.Samples, MetricSample{Month: month})
}
