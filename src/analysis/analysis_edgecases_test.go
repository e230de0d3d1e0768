package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zstumgoren/executions-viz/src/records"
)

func writeFixture(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "executions.csv")
	content := "Date,State,Age,Sex,Race,Method\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestAnalyzeFileEndToEnd(t *testing.T) {
	path := writeFixture(t,
		"01/10/1986,TX,34,M,White,Electrocution",
		"06/11/2000,TX,38,M,Black,Lethal Injection",
		"06/12/2000,OH,45,M,White,Lethal Injection",
		"03/15/2005,OH,51,M,Black,Lethal Injection",
	)
	s, err := AnalyzeFile(path, AnalyzeOptions{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if s.Records != 3 || s.FilteredOut != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.FirstYear != 2000 || s.LastYear != 2005 || s.PeakYear != 2000 || s.PeakCount != 2 {
		t.Fatalf("unexpected span/peak: %+v", s)
	}
	if len(s.Years) != 2 {
		t.Fatalf("expected 2 year buckets, got %+v", s.Years)
	}
	wantAvg := (38.0 + 45.0 + 51.0) / 3.0
	if s.AvgAge < wantAvg-0.001 || s.AvgAge > wantAvg+0.001 {
		t.Fatalf("avg age %.3f, want %.3f", s.AvgAge, wantAvg)
	}
}

func TestAnalyzeFileNoRecordsError(t *testing.T) {
	path := writeFixture(t, "01/10/1986,TX,34,M,White,Electrocution")
	if _, err := AnalyzeFile(path, AnalyzeOptions{}); err == nil {
		t.Fatalf("expected error when every record predates the threshold")
	}
	// disabling the filter recovers the historic rows
	s, err := AnalyzeFile(path, AnalyzeOptions{MinYear: -1})
	if err != nil {
		t.Fatalf("analyze without filter: %v", err)
	}
	if s.Records != 1 || s.Years[0].Year != 1986 {
		t.Fatalf("unexpected unfiltered summary: %+v", s)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	if _, err := AnalyzeFile(filepath.Join(t.TempDir(), "absent.csv"), AnalyzeOptions{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSummarizeSkippedRowsSurfaced(t *testing.T) {
	path := writeFixture(t,
		"06/11/2000,TX,38,M,Black,Lethal Injection",
		"bad-date,TX,38,M,Black,Lethal Injection",
	)
	s, err := AnalyzeFile(path, AnalyzeOptions{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if s.RowsRead != 2 || s.RowsSkipped != 1 || s.Records != 1 {
		t.Fatalf("skipped rows not surfaced: %+v", s)
	}
}

func TestMinYearZeroMeansDefault(t *testing.T) {
	recs := []records.Record{rec(1999, "TX", ""), rec(2000, "TX", "")}
	s := Summarize(recs, records.ParseStats{RowsRead: 2, RowsKept: 2}, AnalyzeOptions{})
	if s.MinYear != DefaultMinYear || s.Records != 1 {
		t.Fatalf("expected default threshold %d applied: %+v", DefaultMinYear, s)
	}
}
