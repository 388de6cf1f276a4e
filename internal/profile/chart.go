package profile

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	speedColor  = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	heightColor = color.RGBA{R: 40, G: 110, B: 220, A: 255}
)

func (p Profile) subtitle() string {
	return fmt.Sprintf("ride=%s length=%.1fm duration=%.1fs top=%.1fm/s lift=%.1fs",
		p.RideID, p.Length, p.Duration(), p.MaxSpeed(), p.LiftTime())
}

// RenderHTML writes an interactive speed/height chart over time.
func RenderHTML(w io.Writer, p Profile) error {
	x := make([]string, len(p.Samples))
	speed := make([]opts.LineData, len(p.Samples))
	height := make([]opts.LineData, len(p.Samples))
	for i, s := range p.Samples {
		x[i] = fmt.Sprintf("%.2f", s.Time)
		speed[i] = opts.LineData{Value: s.Speed}
		height[i] = opts.LineData{Value: s.Height}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Ride profile", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Ride profile", Subtitle: p.subtitle()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "m/s, m", NameLocation: "middle", NameGap: 30}),
	)
	line.SetXAxis(x).
		AddSeries("speed", speed).
		AddSeries("height", height)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render html chart: %w", err)
	}
	return nil
}

// RenderPNG saves a static speed/height chart to path. The image format follows the
// file extension (png, svg, pdf).
func RenderPNG(path string, p Profile) error {
	pl := plot.New()
	pl.Title.Text = "Ride profile: " + p.subtitle()
	pl.X.Label.Text = "Time (s)"
	pl.Y.Label.Text = "Speed (m/s) / Height (m)"

	speedPts := make(plotter.XYs, 0, len(p.Samples))
	heightPts := make(plotter.XYs, 0, len(p.Samples))
	for _, s := range p.Samples {
		speedPts = append(speedPts, plotter.XY{X: s.Time, Y: s.Speed})
		heightPts = append(heightPts, plotter.XY{X: s.Time, Y: s.Height})
	}

	for _, series := range []struct {
		name string
		pts  plotter.XYs
		col  color.Color
	}{
		{"speed", speedPts, speedColor},
		{"height", heightPts, heightColor},
	} {
		if len(series.pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(series.pts)
		if err != nil {
			return fmt.Errorf("%s line: %w", series.name, err)
		}
		l.Width = vg.Points(1)
		l.Color = series.col
		pl.Add(l)
		pl.Legend.Add(series.name, l)
	}

	if err := pl.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}
