package analytics

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeriesBasic(t *testing.T) {
	var buf bytes.Buffer
	series := []Series{{Name: "Revenue", Values: []float64{1, 2, 3, 4, 5, 6, 7, 8}}}
	if err := PlotSeries(&buf, "Revenue Over Time", series, 40, 5); err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Revenue Over Time") {
		t.Fatalf("title missing from output")
	}
	if !strings.Contains(out, "Legend: ") {
		t.Fatalf("legend missing from output")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title + height rows + legend
	if len(lines) != 7 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), out)
	}
}

func TestPlotSeriesEmptyProducesNothing(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", nil, 40, 5); err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty series should render nothing, got %q", buf.String())
	}
}

func TestPlotSeriesFlatSeries(t *testing.T) {
	var buf bytes.Buffer
	series := []Series{{Name: "Flat", Values: []float64{5, 5, 5, 5}}}
	if err := PlotSeries(&buf, "", series, 20, 4); err != nil {
		t.Fatalf("flat series must plot without dividing by zero: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("flat series should still produce output")
	}
}

func TestPlotSeriesNoColorToBuffer(t *testing.T) {
	var buf bytes.Buffer
	series := []Series{{Name: "S", Values: []float64{1, 9}}}
	if err := PlotSeries(&buf, "", series, 20, 4); err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("non-terminal writer must not receive ANSI color codes")
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisLabelWidth-len([]rune(axisSeparator)) {
		t.Fatalf("unexpected plot width for 80 columns: %d", got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("narrow terminals should clamp to the minimum width, got %d", got)
	}
}

func TestResampleSeries(t *testing.T) {
	out := resampleSeries([]float64{0, 10}, 5)
	if len(out) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(out))
	}
	if out[0] != 0 || out[4] != 10 {
		t.Fatalf("endpoints must be preserved: %v", out)
	}
	if down := resampleSeries([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 4); len(down) != 4 {
		t.Fatalf("downsampling length wrong: %v", down)
	}
}
