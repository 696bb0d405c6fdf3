package dataset

import (
	"math"
	"sort"
)

// LevelStats summarizes one taxonomy level.
type LevelStats struct {
	// Nodes is the number of distinct taxonomy nodes at this level.
	Nodes int

	// Gaps is the number of nodes with zero mapped measures.
	Gaps int
}

// NodeCoverage is the mapped-measure count for one taxonomy node, the same
// aggregation the coverage-count layer renders.
type NodeCoverage struct {
	Name     string
	SortKey  float64
	Measures int
}

// Stats holds read-only summary statistics over one snapshot. No statistical
// computation happens here beyond counting and bucketing the precomputed
// strength scores.
type Stats struct {
	Rows     int
	Measures int
	Sources  int
	Levels   [3]LevelStats

	// PhaseCounts holds mapping counts in pathway order, aligned with Phases.
	PhaseCounts [4]int

	// StrengthBuckets is a histogram of mapping strengths in ten 0.1-wide
	// buckets over [0, 1]; values at exactly 1.0 land in the last bucket.
	StrengthBuckets [10]int

	coverage [3][]NodeCoverage
}

// Compute derives summary statistics from the snapshot.
func Compute(d *Dataset) *Stats {
	s := &Stats{Rows: len(d.Rows)}

	measures := make(map[string]bool)
	sources := make(map[string]bool)
	type nodeKey struct {
		level int
		name  string
	}
	counts := make(map[nodeKey]int)
	sortKeys := make(map[nodeKey]float64)

	for i := range d.Rows {
		row := &d.Rows[i]

		names := [3]string{row.Level1, row.Level2, row.Level3}
		keys := [3]float64{row.Level1Sort, row.Level2Sort, row.Level3Sort}
		for lvl := 0; lvl < 3; lvl++ {
			if names[lvl] == "" {
				continue
			}
			k := nodeKey{level: lvl, name: names[lvl]}
			sortKeys[k] = keys[lvl]
			if _, seen := counts[k]; !seen {
				counts[k] = 0
			}
			if row.HasMeasure() {
				counts[k]++
			}
		}

		if !row.HasMeasure() {
			continue
		}
		measures[row.MeasureID] = true
		if row.SourceOrg != "" || row.SourceName != "" {
			sources[row.SourceOrg+"/"+row.SourceName] = true
		}

		for pi, p := range Phases {
			if row.Phase == p {
				s.PhaseCounts[pi]++
			}
		}

		if row.Strength != nil {
			b := int(math.Floor(*row.Strength * 10))
			if b < 0 {
				b = 0
			}
			if b > 9 {
				b = 9
			}
			s.StrengthBuckets[b]++
		}
	}

	s.Measures = len(measures)
	s.Sources = len(sources)

	for k, n := range counts {
		s.Levels[k.level].Nodes++
		if n == 0 {
			s.Levels[k.level].Gaps++
		}
		s.coverage[k.level] = append(s.coverage[k.level], NodeCoverage{
			Name:     k.name,
			SortKey:  sortKeys[k],
			Measures: n,
		})
	}

	// Same ordering as the rendered charts: descending by sort key.
	for lvl := range s.coverage {
		sort.Slice(s.coverage[lvl], func(i, j int) bool {
			a, b := s.coverage[lvl][i], s.coverage[lvl][j]
			if a.SortKey != b.SortKey {
				return a.SortKey > b.SortKey
			}
			return a.Name < b.Name
		})
	}

	return s
}

// Coverage returns per-node coverage for a level (1-based), ordered as the
// chart renders rows: descending by the level's sort key.
func (s *Stats) Coverage(level int) []NodeCoverage {
	if level < 1 || level > 3 {
		return nil
	}
	return s.coverage[level-1]
}
