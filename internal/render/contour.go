package render

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/advsampling/internal/pmf"
)

// ContourOptions describes a 2D free-energy figure.
type ContourOptions struct {
	Levels int
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

func DefaultContourOptions() ContourOptions {
	return ContourOptions{
		Levels: 20,
		Title:  "Free energy surface",
		XLabel: "CV 1",
		YLabel: "CV 2 (degrees)",
		Width:  7 * vg.Inch,
		Height: 5 * vg.Inch,
	}
}

// lines is a single-colour palette for contour lines.
type lines []color.Color

func (l lines) Colors() []color.Color { return l }

// Contour draws g as a filled map quantized to the contour levels, overlaid
// with contour lines, and a separate colorbar plot.
func Contour(g *pmf.Grid, o ContourOptions) (*plot.Plot, *plot.Plot, error) {
	if o.Levels < 1 {
		return nil, nil, fmt.Errorf("render: need at least one contour level, got %d", o.Levels)
	}
	lo, hi := g.Range()
	if hi <= lo {
		return nil, nil, fmt.Errorf("render: flat surface at %g has no contours", lo)
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMax(hi)
	cm.SetMin(lo)

	p := plot.New()
	p.Title.Text = o.Title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel

	fill := plotter.NewHeatMap(g, cm.Palette(o.Levels))
	levels := g.Levels(o.Levels)
	outline := plotter.NewContour(g, levels, lines{color.Black})
	p.Add(fill, outline, plotter.NewGrid())

	bar := plot.New()
	bar.HideX()
	bar.Y.Label.Text = "kT"
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: o.Levels})
	return p, bar, nil
}

// SaveContour renders the PMF and its colorbar side by side into a PNG.
func SaveContour(g *pmf.Grid, o ContourOptions, path string) error {
	p, bar, err := Contour(g, o)
	if err != nil {
		return err
	}
	if o.Width == 0 || o.Height == 0 {
		d := DefaultContourOptions()
		o.Width, o.Height = d.Width, d.Height
	}

	img := vgimg.New(o.Width, o.Height)
	dc := draw.New(img)
	split := o.Width * 0.85
	p.Draw(draw.Crop(dc, 0, split-o.Width, 0, 0))
	bar.Draw(draw.Crop(dc, split, 0, 0, 0))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return f.Close()
}

// ContourName is the image written for a PMF file called name.
func ContourName(name string) string { return name + ".png" }

var _ palette.Palette = lines(nil)
