package report

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"wilayah-analytics/internal/models"
	"wilayah-analytics/internal/region"
	"wilayah-analytics/internal/services"
)

var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// labelChart renders a bar chart of how many items landed in each
// classification label.
func labelChart(result *services.Result) func(io.Writer) error {
	return func(w io.Writer) error {
		counts := result.LabelCounts()
		labels := []models.Label{
			models.LabelGlobal, models.LabelRegional, models.LabelLocal, models.LabelLowVolume,
		}

		values := make(plotter.Values, len(labels))
		names := make([]string, len(labels))
		for i, label := range labels {
			values[i] = float64(counts[label])
			names[i] = string(label)
		}

		return renderBarChart(w, "Distribusi Label Klasifikasi", "Jumlah Item", values, names)
	}
}

// regionChart renders a bar chart of distinct transaction counts per wilayah,
// in the fixed wilayah order.
func regionChart(result *services.Result) func(io.Writer) error {
	return func(w io.Writer) error {
		regions := region.All()
		values := make(plotter.Values, len(regions))
		names := make([]string, len(regions))
		for i, wilayah := range regions {
			values[i] = float64(result.Totals.Transactions[wilayah])
			names[i] = shortRegion(wilayah)
		}

		return renderBarChart(w, "Transaksi Unik per Wilayah", "Transaksi", values, names)
	}
}

func renderBarChart(w io.Writer, title, yLabel string, values plotter.Values, names []string) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.Add(plotter.NewGrid())
	p.NominalX(names...)

	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
