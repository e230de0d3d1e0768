// Package analysis aggregates execution records into the per-year counts and
// breakdowns the charts are drawn from.
package analysis

import (
	"fmt"
	"sort"

	"github.com/zstumgoren/executions-viz/src/records"
)

// DefaultMinYear is the year threshold applied when AnalyzeOptions leaves
// MinYear unset: only executions from 2000 onward are charted.
const DefaultMinYear = 2000

// YearCount is one bar of the main chart: how many filtered records fall in
// that year. Slices of YearCount are always sorted ascending by year and hold
// each year at most once.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// LabelCount is one slice of a categorical breakdown (method, state).
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary captures everything one analysis pass produced.
type Summary struct {
	MinYear     int          `json:"min_year"`
	RowsRead    int          `json:"rows_read"`
	RowsSkipped int          `json:"rows_skipped,omitempty"`
	FilteredOut int          `json:"filtered_out"` // rows below MinYear
	Records     int          `json:"records"`      // rows charted
	FirstYear   int          `json:"first_year,omitempty"`
	LastYear    int          `json:"last_year,omitempty"`
	PeakYear    int          `json:"peak_year,omitempty"`
	PeakCount   int          `json:"peak_count,omitempty"`
	AvgAge      float64      `json:"avg_age,omitempty"`
	Years       []YearCount  `json:"years"`
	Methods     []LabelCount `json:"methods,omitempty"`
	States      []LabelCount `json:"states,omitempty"`
}

// AnalyzeOptions controls filtering and parsing.
type AnalyzeOptions struct {
	// MinYear drops records before this year. 0 means DefaultMinYear; a
	// negative value disables the filter entirely.
	MinYear int
	// Parse is forwarded to the records loader.
	Parse records.Options
}

func (o AnalyzeOptions) minYear() int {
	if o.MinYear == 0 {
		return DefaultMinYear
	}
	if o.MinYear < 0 {
		return 0
	}
	return o.MinYear
}

// Filter returns the records with Year >= minYear. minYear <= 0 keeps
// everything. Pure; input order is preserved.
func Filter(recs []records.Record, minYear int) []records.Record {
	if minYear <= 0 {
		return recs
	}
	out := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if r.Year >= minYear {
			out = append(out, r)
		}
	}
	return out
}

// AggregateByYear groups the filtered records by year and counts members per
// group, ascending by year. The sum of the returned counts always equals the
// number of records with Year >= minYear.
func AggregateByYear(recs []records.Record, minYear int) []YearCount {
	counts := map[int]int{}
	for _, r := range Filter(recs, minYear) {
		counts[r.Year]++
	}
	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// CountBy tallies records per label. Results are sorted by descending count,
// ties broken by label so output is deterministic. Empty labels bucket under
// "(unknown)" so breakdowns account for every record.
func CountBy(recs []records.Record, label func(records.Record) string) []LabelCount {
	counts := map[string]int{}
	for _, r := range recs {
		key := label(r)
		if key == "" {
			key = "(unknown)"
		}
		counts[key]++
	}
	out := make([]LabelCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, LabelCount{Label: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Summarize builds a Summary over already-parsed records.
func Summarize(recs []records.Record, stats records.ParseStats, opts AnalyzeOptions) Summary {
	minYear := opts.minYear()
	filtered := Filter(recs, minYear)
	s := Summary{
		MinYear:     minYear,
		RowsRead:    stats.RowsRead,
		RowsSkipped: stats.RowsSkipped,
		FilteredOut: len(recs) - len(filtered),
		Records:     len(filtered),
		Years:       AggregateByYear(recs, minYear),
	}
	if len(s.Years) > 0 {
		s.FirstYear = s.Years[0].Year
		s.LastYear = s.Years[len(s.Years)-1].Year
		for _, yc := range s.Years {
			if yc.Count > s.PeakCount {
				s.PeakYear, s.PeakCount = yc.Year, yc.Count
			}
		}
	}
	if len(filtered) > 0 {
		ageSum := 0
		for _, r := range filtered {
			ageSum += r.Age
		}
		s.AvgAge = float64(ageSum) / float64(len(filtered))
	}
	s.Methods = CountBy(filtered, func(r records.Record) string { return r.Method })
	s.States = CountBy(filtered, func(r records.Record) string { return r.State })
	return s
}

// AnalyzeFile loads the CSV at path and summarizes it. An empty post-filter
// set is an error so callers never chart nothing by accident; lower the
// threshold (negative MinYear) to inspect historic-only files.
func AnalyzeFile(path string, opts AnalyzeOptions) (Summary, error) {
	recs, stats, err := records.LoadCSV(path, opts.Parse)
	if err != nil {
		return Summary{}, err
	}
	s := Summarize(recs, stats, opts)
	records.Infof("aggregated %d records into %d year buckets (min_year=%d, filtered_out=%d, skipped=%d)",
		s.Records, len(s.Years), s.MinYear, s.FilteredOut, s.RowsSkipped)
	if s.Records == 0 {
		return s, fmt.Errorf("no records at or after year %d in %s", s.MinYear, path)
	}
	return s, nil
}
