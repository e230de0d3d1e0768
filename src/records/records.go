// Package records loads U.S. execution records from CSV files into typed
// values.
//
// The source files (Death Penalty Information Center exports) carry one
// execution per row with at least Date, State, Age, Sex, Race and Method
// columns. Columns are located by header name so extra columns and column
// reordering are tolerated. The execution year is derived from the last
// slash-separated token of the Date column (dates appear as MM/DD/YYYY).
//
// Rows whose Date or Age fields fail to parse are counted and skipped by
// default; Options.Strict turns the first such row into a hard error instead
// so callers can choose between tolerant and fail-fast ingestion.
package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Record is one execution event with typed fields.
type Record struct {
	Date   string // raw date text as found in the CSV, e.g. "03/15/2005"
	Year   int    // derived from the last slash token of Date
	State  string
	Age    int
	Sex    string
	Race   string
	Method string
}

// Options controls parsing behavior.
type Options struct {
	// Strict turns malformed rows (unparseable date year or age) into an
	// error. When false such rows are skipped and tallied in ParseStats.
	Strict bool
}

// ParseStats reports what happened to the rows of one parse pass.
type ParseStats struct {
	RowsRead    int // data rows seen (header excluded)
	RowsKept    int
	RowsSkipped int // malformed rows dropped in tolerant mode
}

// column headers we consume; matching is case-insensitive and
// whitespace-trimmed.
var wantColumns = []string{"date", "state", "age", "sex", "race", "method"}

// headerIndex maps the consumed column names to their positions in the header
// row. Missing columns are an error: without them no row can be typed.
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(wantColumns))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	for _, want := range wantColumns {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("missing required column %q in header %v", want, header)
		}
	}
	return idx, nil
}

// yearFromDate derives the year as the last slash-separated token of the date
// field. "01/10/1986" -> 1986. An empty or non-numeric final token is an
// error.
func yearFromDate(date string) (int, error) {
	parts := strings.Split(strings.TrimSpace(date), "/")
	last := parts[len(parts)-1]
	y, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil {
		return 0, fmt.Errorf("date %q: year token %q is not numeric", date, last)
	}
	return y, nil
}

// ParseRecords reads CSV data from r and returns the typed records.
// The first row must be a header containing the consumed columns.
func ParseRecords(r io.Reader, opts Options) ([]Record, ParseStats, error) {
	defer TimeTrack(time.Now(), "records parse")
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-row below

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ParseStats{}, fmt.Errorf("empty input: no header row")
		}
		return nil, ParseStats{}, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, ParseStats{}, err
	}

	var recs []Record
	var stats ParseStats
	for {
		row, rerr := cr.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			// csv-level damage (bad quoting etc.); treat like a malformed row
			stats.RowsRead++
			if opts.Strict {
				return nil, stats, fmt.Errorf("row %d: %w", stats.RowsRead, rerr)
			}
			stats.RowsSkipped++
			continue
		}
		stats.RowsRead++
		rec, perr := rowToRecord(row, idx)
		if perr != nil {
			if opts.Strict {
				return nil, stats, fmt.Errorf("row %d: %w", stats.RowsRead, perr)
			}
			Debugf("skipping row %d: %v", stats.RowsRead, perr)
			stats.RowsSkipped++
			continue
		}
		recs = append(recs, rec)
		stats.RowsKept++
	}
	if stats.RowsSkipped > 0 {
		Warnf("skipped %d of %d malformed rows", stats.RowsSkipped, stats.RowsRead)
	}
	return recs, stats, nil
}

func rowToRecord(row []string, idx map[string]int) (Record, error) {
	field := func(name string) string {
		i := idx[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	date := field("date")
	year, err := yearFromDate(date)
	if err != nil {
		return Record{}, err
	}
	ageStr := field("age")
	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return Record{}, fmt.Errorf("age %q is not numeric", ageStr)
	}
	return Record{
		Date:   date,
		Year:   year,
		State:  field("state"),
		Age:    age,
		Sex:    field("sex"),
		Race:   field("race"),
		Method: field("method"),
	}, nil
}

// LoadCSV opens path and parses it with ParseRecords.
func LoadCSV(path string, opts Options) ([]Record, ParseStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, err
	}
	defer f.Close()
	Infof("reading execution records from %s (strict=%v)", path, opts.Strict)
	recs, stats, err := ParseRecords(f, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	return recs, stats, nil
}
