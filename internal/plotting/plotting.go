// Package plotting draws quick previews of lab data sets with gonum/plot.
package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
)

var (
	ErrNothingToPlot = errors.New("plotting: either scatter or line data is required")
	ErrTooFewColumns = errors.New("plotting: data set needs at least two columns")
	ErrUnknownFormat = errors.New("plotting: unsupported image format")
)

// Size is the edge of the square preview image
const Size = 6 * vg.Inch

// Watermark is drawn in the middle of every preview
const Watermark = "TEMPLATE"

// OneOrMany holds either a single value or a list of values
type OneOrMany[T any] struct {
	items []T
}

// One wraps a single value
func One[T any](v T) OneOrMany[T] {
	return OneOrMany[T]{items: []T{v}}
}

// Many wraps a list of values
func Many[T any](v ...T) OneOrMany[T] {
	return OneOrMany[T]{items: v}
}

// Items returns the wrapped values, empty for the zero value
func (o OneOrMany[T]) Items() []T {
	return o.items
}

// Options describes a quick plot
type Options struct {
	Scatter OneOrMany[*dataset.Dataset]
	Line    OneOrMany[*dataset.Dataset]
	// Columns are the axis labels, X and Y when empty
	Columns []string
	// HLine draws a dashed horizontal line at this y when set
	HLine *float64
}

// QuickPlot draws the scatter sets as points and the line sets as red
// lines, labelled Data 0, Data 1, ... in that order.
func QuickPlot(opts Options) (*plot.Plot, error) {
	scatter := nonNil(opts.Scatter.Items())
	lines := nonNil(opts.Line.Items())
	if len(scatter) == 0 && len(lines) == 0 {
		return nil, ErrNothingToPlot
	}

	p := plot.New()
	columns := opts.Columns
	if len(columns) < 2 {
		columns = []string{"X", "Y"}
	}
	p.X.Label.Text = columns[0]
	p.Y.Label.Text = columns[1]

	idx := 0
	var all plotter.XYs
	for _, ds := range scatter {
		xys, err := toXYs(ds)
		if err != nil {
			return nil, err
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("scatter %d: %w", idx, err)
		}
		s.GlyphStyle.Color = plotutil.Color(idx)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("Data %d", idx), s)
		all = append(all, xys...)
		idx++
	}
	for _, ds := range lines {
		xys, err := toXYs(ds)
		if err != nil {
			return nil, err
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", idx, err)
		}
		l.LineStyle.Color = color.RGBA{R: 255, A: 255}
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("Data %d", idx), l)
		all = append(all, xys...)
		idx++
	}

	if opts.HLine != nil {
		y := *opts.HLine
		h := plotter.NewFunction(func(float64) float64 { return y })
		h.Color = color.Black
		h.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(h)
	}

	if len(all) > 0 {
		xmin, xmax, ymin, ymax := plotter.XYRange(all)
		mark, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: (xmin + xmax) / 2, Y: (ymin + ymax) / 2}},
			Labels: []string{Watermark},
		})
		if err == nil {
			mark.TextStyle[0].Color = color.Gray{Y: 160}
			mark.TextStyle[0].Font.Size = vg.Points(40)
			mark.TextStyle[0].Rotation = 0.5236
			p.Add(mark)
		}
	}
	return p, nil
}

func nonNil(sets []*dataset.Dataset) []*dataset.Dataset {
	out := make([]*dataset.Dataset, 0, len(sets))
	for _, ds := range sets {
		if ds != nil {
			out = append(out, ds)
		}
	}
	return out
}

func toXYs(ds *dataset.Dataset) (plotter.XYs, error) {
	if ds.Len() > 0 && ds.Arity() < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewColumns, ds.Arity())
	}
	xys := make(plotter.XYs, ds.Len())
	for i, row := range ds.Rows {
		xys[i].X, xys[i].Y = row[0], row[1]
	}
	return xys, nil
}

// WritePNG encodes p as a square PNG image
func WritePNG(w io.Writer, p *plot.Plot) error {
	return Write(w, p, "png")
}

// Write encodes p in format (png, svg, pdf, ...)
func Write(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(Size, Size, format)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes p to path, the format taken from the extension
func Save(p *plot.Plot, path string) error {
	return p.Save(Size, Size, path)
}
