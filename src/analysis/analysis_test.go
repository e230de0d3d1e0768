package analysis

import (
	"testing"

	"github.com/zstumgoren/executions-viz/src/records"
)

func rec(year int, state, method string) records.Record {
	return records.Record{Year: year, State: state, Age: 40, Sex: "M", Race: "White", Method: method}
}

func TestFilterThreshold(t *testing.T) {
	recs := []records.Record{rec(1986, "TX", "Electrocution"), rec(2005, "OH", "Lethal Injection")}
	got := Filter(recs, 2000)
	if len(got) != 1 || got[0].Year != 2005 {
		t.Fatalf("expected only the 2005 record, got %+v", got)
	}
	// threshold disabled keeps everything
	if n := len(Filter(recs, 0)); n != 2 {
		t.Fatalf("expected 2 records with filter disabled, got %d", n)
	}
	// boundary year is inclusive
	if n := len(Filter([]records.Record{rec(2000, "TX", "")}, 2000)); n != 1 {
		t.Fatalf("expected year == threshold to be kept")
	}
}

func TestAggregateByYearGroupsAndSorts(t *testing.T) {
	recs := []records.Record{
		rec(2001, "TX", ""), rec(2000, "OH", ""), rec(2000, "TX", ""),
	}
	agg := AggregateByYear(recs, 2000)
	if len(agg) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(agg))
	}
	if agg[0].Year != 2000 || agg[0].Count != 2 || agg[1].Year != 2001 || agg[1].Count != 1 {
		t.Fatalf("unexpected aggregates: %+v", agg)
	}
}

func TestAggregateConservesCounts(t *testing.T) {
	var recs []records.Record
	years := []int{1999, 2000, 2000, 2001, 2003, 2003, 2003, 2010}
	for _, y := range years {
		recs = append(recs, rec(y, "TX", ""))
	}
	agg := AggregateByYear(recs, 2000)
	sum := 0
	seen := map[int]bool{}
	for i, yc := range agg {
		sum += yc.Count
		if yc.Count < 1 {
			t.Fatalf("bucket %d has count %d; every bucket must hold at least one record", yc.Year, yc.Count)
		}
		if seen[yc.Year] {
			t.Fatalf("year %d appears twice", yc.Year)
		}
		seen[yc.Year] = true
		if i > 0 && agg[i-1].Year >= yc.Year {
			t.Fatalf("aggregates not strictly ascending: %+v", agg)
		}
	}
	if want := len(Filter(recs, 2000)); sum != want {
		t.Fatalf("counts sum to %d, want %d (number of filtered records)", sum, want)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if agg := AggregateByYear(nil, 2000); len(agg) != 0 {
		t.Fatalf("expected no buckets for no records, got %+v", agg)
	}
}

func TestCountByBreakdown(t *testing.T) {
	recs := []records.Record{
		rec(2001, "TX", "Lethal Injection"),
		rec(2002, "TX", "Lethal Injection"),
		rec(2002, "OH", "Electrocution"),
		rec(2003, "GA", ""),
	}
	methods := CountBy(recs, func(r records.Record) string { return r.Method })
	if methods[0].Label != "Lethal Injection" || methods[0].Count != 2 {
		t.Fatalf("expected Lethal Injection first with 2, got %+v", methods)
	}
	found := false
	for _, lc := range methods {
		if lc.Label == "(unknown)" && lc.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("empty method should bucket under (unknown): %+v", methods)
	}
	// deterministic tie-break by label
	states := CountBy(recs, func(r records.Record) string { return r.State })
	if states[0].Label != "TX" || states[1].Label != "GA" || states[2].Label != "OH" {
		t.Fatalf("unexpected state order: %+v", states)
	}
}
