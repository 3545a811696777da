package domain

// Statistics holds average/min/max of one variable over some snapshots
type Statistics struct {
	Average float64
	Min     float64
	Max     float64
	Count   int
}

// Summarize computes statistics per variable for a set of snapshots.
// Variables missing from a snapshot are skipped; a variable never read has
// no entry.
func Summarize(snapshots []*Snapshot) map[Variable]Statistics {
	out := make(map[Variable]Statistics, len(Variables))

	for _, v := range Variables {
		var (
			st  Statistics
			sum float64
		)
		for _, s := range snapshots {
			if !s.WasRead(v) {
				continue
			}
			value, _ := s.Readings.Value(v)
			if st.Count == 0 || value < st.Min {
				st.Min = value
			}
			if st.Count == 0 || value > st.Max {
				st.Max = value
			}
			sum += value
			st.Count++
		}
		if st.Count == 0 {
			continue
		}
		st.Average = sum / float64(st.Count)
		out[v] = st
	}

	return out
}
