package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/zstumgoren/executions-viz/cmd/execviewer/uihelpers"
	"github.com/zstumgoren/executions-viz/src/analysis"
	"github.com/zstumgoren/executions-viz/src/chartrender"
	"github.com/zstumgoren/executions-viz/src/records"
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string

	minYear int
	strict  bool
	summary analysis.Summary

	// toggles
	tooltipEnabled bool

	// widgets
	table         *widget.Table
	minYearLabel  *widget.Label
	yearImgCanvas *canvas.Image
	methodCanvas  *canvas.Image
	stateCanvas   *canvas.Image
	yearOverlay   *tooltipOverlay
	methodOverlay *tooltipOverlay
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag string
	var logLevel string
	flag.StringVar(&fileFlag, "file", "", "Path to executions CSV file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()
	records.SetLogLevel(logLevel)

	a := app.NewWithID("com.zstumgoren.executionsviz")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Executions Viewer")
	w.Resize(fyne.NewSize(1000, 760))

	state := &uiState{
		app:      a,
		window:   w,
		filePath: fileFlag,
		minYear:  analysis.DefaultMinYear,
	}
	state.tooltipEnabled = a.Preferences().BoolWithFallback("tooltip", true)

	fileLabel := widget.NewLabel(truncatePath(state.filePath, 60))

	// toggles; callbacks wired after the canvases exist
	tooltipChk := widget.NewCheck("Tooltip", nil)
	tooltipChk.SetChecked(state.tooltipEnabled)
	strictChk := widget.NewCheck("Strict", nil)

	// Min year control: - [label] +
	state.minYearLabel = widget.NewLabel(fmt.Sprintf("%d", state.minYear))
	decY := widget.NewButton("-", func() {
		y := state.minYear - 5
		if y < 0 {
			y = 0
		}
		if y != state.minYear {
			state.minYear = y
			state.minYearLabel.SetText(fmt.Sprintf("%d", y))
			savePrefs(state)
			loadAll(state, fileLabel)
		}
	})
	incY := widget.NewButton("+", func() {
		y := state.minYear + 5
		if y != state.minYear {
			state.minYear = y
			state.minYearLabel.SetText(fmt.Sprintf("%d", y))
			savePrefs(state)
			loadAll(state, fileLabel)
		}
	})

	// per-year table: 1 header row; columns Year / Executions / Share
	state.table = widget.NewTable(
		func() (int, int) {
			rows := len(state.summary.Years) + 1
			if rows < 1 {
				rows = 1
			}
			return rows, 3
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			if id.Row == 0 {
				switch id.Col {
				case 0:
					lbl.SetText("Year")
				case 1:
					lbl.SetText("Executions")
				case 2:
					lbl.SetText("Share (%)")
				}
				return
			}
			rix := id.Row - 1
			if rix < 0 || rix >= len(state.summary.Years) {
				lbl.SetText("")
				return
			}
			yc := state.summary.Years[rix]
			switch id.Col {
			case 0:
				lbl.SetText(strconv.Itoa(yc.Year))
			case 1:
				lbl.SetText(strconv.Itoa(yc.Count))
			case 2:
				lbl.SetText(fmt.Sprintf("%.1f", uihelpers.SharePercent(yc.Count, state.summary.Records)))
			}
		},
	)
	applyTableColumnWidths(state)

	// chart placeholders
	state.yearImgCanvas = canvas.NewImageFromImage(chartrender.Blank(100, 60))
	state.yearImgCanvas.FillMode = canvas.ImageFillContain
	state.yearImgCanvas.SetMinSize(fyne.NewSize(900, 320))
	state.methodCanvas = canvas.NewImageFromImage(chartrender.Blank(100, 60))
	state.methodCanvas.FillMode = canvas.ImageFillContain
	state.methodCanvas.SetMinSize(fyne.NewSize(900, 300))
	state.stateCanvas = canvas.NewImageFromImage(chartrender.Blank(100, 60))
	state.stateCanvas.FillMode = canvas.ImageFillContain
	state.stateCanvas.SetMinSize(fyne.NewSize(900, 300))

	state.yearOverlay = newTooltipOverlay(state, chartYears)
	state.methodOverlay = newTooltipOverlay(state, chartMethods)

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state, fileLabel) }),
		widget.NewButton("Reload", func() { loadAll(state, fileLabel) }),
		widget.NewLabel("From year:"), decY, state.minYearLabel, incY,
		strictChk, tooltipChk,
		widget.NewLabel("File:"), fileLabel,
	)

	chartsColumn := container.NewVBox(
		container.NewStack(state.yearImgCanvas, state.yearOverlay),
		widget.NewSeparator(),
		container.NewStack(state.methodCanvas, state.methodOverlay),
		widget.NewSeparator(),
		state.stateCanvas,
	)
	chartsScroll := container.NewVScroll(chartsColumn)
	chartsScroll.SetMinSize(fyne.NewSize(900, 620))

	tabs := container.NewAppTabs(
		container.NewTabItem("Years", state.table),
		container.NewTabItem("Charts", chartsScroll),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	tabs.OnSelected = func(ti *container.TabItem) {
		state.app.Preferences().SetInt("selectedTabIndex", tabs.SelectedIndex())
	}
	w.SetContent(container.NewBorder(top, nil, nil, nil, tabs))

	// Redraw charts on window resize so they scale with width
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := int(c.Size().Width)
					if curW != prevW {
						prevW = curW
						fyne.Do(func() {
							redrawCharts(state)
							applyTableColumnWidths(state)
						})
					}
				}
			}
		}()
	}

	tooltipChk.OnChanged = func(b bool) {
		state.tooltipEnabled = b
		savePrefs(state)
		for _, ov := range []*tooltipOverlay{state.yearOverlay, state.methodOverlay} {
			if ov != nil {
				ov.enabled = b
				ov.Refresh()
			}
		}
	}
	strictChk.OnChanged = func(b bool) {
		state.strict = b
		savePrefs(state)
		loadAll(state, fileLabel)
	}

	buildMenus(state, fileLabel)
	loadPrefs(state, strictChk, tooltipChk, fileLabel, tabs)
	for _, ov := range []*tooltipOverlay{state.yearOverlay, state.methodOverlay} {
		ov.enabled = state.tooltipEnabled
		ov.Refresh()
	}
	loadAll(state, fileLabel)

	w.ShowAndRun()
}

// menus and dialogs
func buildMenus(state *uiState, fileLabel *widget.Label) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(truncatePath(f, 60), func() {
			state.filePath = f
			fileLabel.SetText(truncatePath(state.filePath, 60))
			savePrefs(state)
			loadAll(state, fileLabel)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state, fileLabel) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state, fileLabel) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state, fileLabel) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Year Chart…", func() { exportChartPNG(state, state.yearImgCanvas, "executions_per_year.png") }),
		fyne.NewMenuItem("Export Method Chart…", func() { exportChartPNG(state, state.methodCanvas, "executions_by_method.png") }),
		fyne.NewMenuItem("Export State Chart…", func() { exportChartPNG(state, state.stateCanvas, "executions_by_state.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

func openFileDialog(state *uiState, fileLabel *widget.Label) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		fileLabel.SetText(truncatePath(state.filePath, 60))
		addRecentFile(state, state.filePath)
		savePrefs(state)
		loadAll(state, fileLabel)
	}, state.window)
	d.Show()
}

// load data and render
func loadAll(state *uiState, fileLabel *widget.Label) {
	if state.filePath == "" {
		if _, err := os.Stat("executions.csv"); err == nil {
			state.filePath = "executions.csv"
			if fileLabel != nil {
				fileLabel.SetText(truncatePath(state.filePath, 60))
			}
		} else {
			return
		}
	}
	threshold := state.minYear
	if threshold == 0 {
		threshold = -1 // the 0 stop on the year control means unfiltered
	}
	summary, err := analysis.AnalyzeFile(state.filePath, analysis.AnalyzeOptions{
		MinYear: threshold,
		Parse:   records.Options{Strict: state.strict},
	})
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.summary = summary
	records.Infof("loaded %d records across %d years from %s", summary.Records, len(summary.Years), state.filePath)
	if state.table != nil {
		state.table.Refresh()
	}
	redrawCharts(state)
}

func redrawCharts(state *uiState) {
	cw, chh := chartSize(state)
	title := "U.S. executions per year"
	if state.summary.FirstYear != 0 {
		title = fmt.Sprintf("U.S. executions per year (%d–%d)", state.summary.FirstYear, state.summary.LastYear)
	}
	hint := ""
	if state.tooltipEnabled {
		hint = "hover a bar for its count"
	}
	yearImg, err := chartrender.YearBarChart(state.summary.Years, chartrender.Options{
		Title: title, Width: cw, Height: chh, Hint: hint,
	})
	if err != nil {
		records.Errorf("render year chart: %v", err)
	}
	setChartImage(state.yearImgCanvas, yearImg, cw, chh)
	if state.yearOverlay != nil {
		state.yearOverlay.Refresh()
	}

	methodImg, err := chartrender.LabelBarChart(state.summary.Methods, chartrender.Options{
		Title: "By method", Width: cw, Height: chh,
	})
	if err != nil {
		records.Errorf("render method chart: %v", err)
	}
	setChartImage(state.methodCanvas, methodImg, cw, chh)
	if state.methodOverlay != nil {
		state.methodOverlay.Refresh()
	}

	stateImg, err := chartrender.LabelBarChart(state.summary.States, chartrender.Options{
		Title: "By state", Width: cw, Height: chh,
	})
	if err != nil {
		records.Errorf("render state chart: %v", err)
	}
	setChartImage(state.stateCanvas, stateImg, cw, chh)
}

func setChartImage(c *canvas.Image, img image.Image, w, h int) {
	if c == nil || img == nil {
		return
	}
	c.Image = img
	c.SetMinSize(fyne.NewSize(float32(w), float32(h)))
	c.Refresh()
}

// chartSize derives chart pixel dimensions from the current window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return 900, 320
	}
	sz := state.window.Canvas().Size()
	return uihelpers.ComputeChartDimensions(int(sz.Width*0.95) - 12)
}

func applyTableColumnWidths(state *uiState) {
	if state == nil || state.table == nil {
		return
	}
	winW := float32(1000)
	if state.window != nil && state.window.Canvas() != nil {
		winW = state.window.Canvas().Size().Width
	}
	widths := uihelpers.ComputeTableColumnWidths(winW)
	for i, w := range widths {
		state.table.SetColumnWidth(i, float32(w))
	}
	state.table.Refresh()
}

// export PNG
func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil {
		return
	}
	if img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, img.Image)
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	prefs := state.app.Preferences()
	raw := prefs.StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	prefs := state.app.Preferences()
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	prefs.SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetInt("minYear", state.minYear)
	prefs.SetBool("strict", state.strict)
	prefs.SetBool("tooltip", state.tooltipEnabled)
}

func loadPrefs(state *uiState, strictChk, tooltipChk *widget.Check, fileLabel *widget.Label, tabs *container.AppTabs) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if f := prefs.StringWithFallback("lastFile", state.filePath); f != "" {
		state.filePath = f
		if fileLabel != nil {
			fileLabel.SetText(truncatePath(state.filePath, 60))
		}
	}
	if y := prefs.IntWithFallback("minYear", state.minYear); y >= 0 {
		state.minYear = y
		if state.minYearLabel != nil {
			state.minYearLabel.SetText(fmt.Sprintf("%d", y))
		}
	}
	state.strict = prefs.BoolWithFallback("strict", state.strict)
	if strictChk != nil {
		strictChk.SetChecked(state.strict)
	}
	state.tooltipEnabled = prefs.BoolWithFallback("tooltip", state.tooltipEnabled)
	if tooltipChk != nil {
		tooltipChk.SetChecked(state.tooltipEnabled)
	}
	if tabs != nil {
		idx := prefs.IntWithFallback("selectedTabIndex", 0)
		if idx >= 0 && idx < len(tabs.Items) {
			tabs.SelectIndex(idx)
		}
	}
}

// utils
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
