// Execution records analyzer main entrypoint.
//
// Loads a CSV of U.S. execution records, keeps rows from -min-year onward,
// counts executions per year and prints the table. Optional outputs:
//   - -chart: write the per-year bar chart as a PNG
//   - -breakdown method|state: chart a categorical breakdown instead
//   - -json: write the full summary (counts, span, peak, breakdowns) as JSON
//
// The interactive viewer lives in cmd/execviewer; this binary covers scripted
// and headless use.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"text/tabwriter"

	"github.com/zstumgoren/executions-viz/src/analysis"
	"github.com/zstumgoren/executions-viz/src/chartrender"
	"github.com/zstumgoren/executions-viz/src/records"
)

func main() {
	csvPath := flag.String("csv", "executions.csv", "Path to the executions CSV file")
	minYear := flag.Int("min-year", analysis.DefaultMinYear, "Keep records from this year onward (0 or negative disables the filter)")
	strict := flag.Bool("strict", false, "Fail on the first malformed row instead of skipping it")
	chartOut := flag.String("chart", "", "Write the bar chart PNG to this path (optional)")
	chartWidth := flag.Int("chart-width", 900, "Chart width in pixels")
	chartHeight := flag.Int("chart-height", 320, "Chart height in pixels")
	breakdown := flag.String("breakdown", "", "Chart a breakdown instead of years: method or state")
	jsonOut := flag.String("json", "", "Write the summary report JSON to this path (optional)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	records.SetLogLevel(*logLevel)

	threshold := *minYear
	if threshold == 0 {
		threshold = -1 // explicit zero means no filter, not the default
	}
	summary, err := analysis.AnalyzeFile(*csvPath, analysis.AnalyzeOptions{
		MinYear: threshold,
		Parse:   records.Options{Strict: *strict},
	})
	if err != nil {
		records.Errorf("%v", err)
		os.Exit(1)
	}

	printSummary(summary)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, summary); err != nil {
			records.Errorf("write report: %v", err)
			os.Exit(1)
		}
		records.Infof("wrote summary report to %s", *jsonOut)
	}

	if *chartOut != "" {
		opts := chartrender.Options{Width: *chartWidth, Height: *chartHeight}
		var img image.Image
		switch *breakdown {
		case "":
			opts.Title = fmt.Sprintf("U.S. executions per year (%d–%d)", summary.FirstYear, summary.LastYear)
			img, err = chartrender.YearBarChart(summary.Years, opts)
		case "method":
			opts.Title = "U.S. executions by method"
			img, err = chartrender.LabelBarChart(summary.Methods, opts)
		case "state":
			opts.Title = "U.S. executions by state"
			img, err = chartrender.LabelBarChart(summary.States, opts)
		default:
			records.Errorf("unknown -breakdown %q (want method or state)", *breakdown)
			os.Exit(2)
		}
		if err != nil {
			records.Errorf("render chart: %v", err)
			os.Exit(1)
		}
		if err := writePNG(*chartOut, img); err != nil {
			records.Errorf("write chart: %v", err)
			os.Exit(1)
		}
		records.Infof("wrote chart to %s", *chartOut)
	}
}

func printSummary(s analysis.Summary) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Year\tExecutions")
	for _, yc := range s.Years {
		fmt.Fprintf(tw, "%d\t%d\n", yc.Year, yc.Count)
	}
	tw.Flush()
	fmt.Printf("\n%d executions %d–%d (peak %d in %d, avg age %.1f)\n",
		s.Records, s.FirstYear, s.LastYear, s.PeakCount, s.PeakYear, s.AvgAge)
	if s.RowsSkipped > 0 {
		fmt.Printf("note: %d malformed rows skipped of %d read\n", s.RowsSkipped, s.RowsRead)
	}
	if s.FilteredOut > 0 {
		fmt.Printf("note: %d rows before %d excluded\n", s.FilteredOut, s.MinYear)
	}
}

func writeJSON(path string, s analysis.Summary) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
