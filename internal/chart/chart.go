package chart

import (
	"fmt"
	"io"

	"github.com/christopherklint97/contribcal/internal/heatmap"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ECharts draws category y axes bottom-up, so Saturday comes first to put
// Sunday on the top row.
var weekdayAxis = []string{"Sat", "Fri", "Thu", "Wed", "Tue", "Mon", "Sun"}

// Render writes a standalone HTML page with the calendar heat map.
func Render(w io.Writer, cal heatmap.Calendar, palette heatmap.Palette, title string) error {
	hm := charts.NewHeatMap()

	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       title,
			BackgroundColor: "transparent",
			Width:           "1100px",
			Height:          "260px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%s in %d", heatmap.ContributionPhrase(cal.Total), cal.Year),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			SplitArea: &opts.SplitArea{Show: false},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      weekdayAxis,
			SplitArea: &opts.SplitArea{Show: false},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: false,
			Min:        0,
			Max:        heatmap.MaxLevel,
			Text:       []string{"More", "Less"},
			InRange: &opts.VisualMapInRange{
				Color: palette[:],
			},
		}),
	)

	hm.SetXAxis(weekAxis(cal)).
		AddSeries("contributions", cellData(cal))

	if err := hm.Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// weekAxis labels each week column with the month anchored there, if any.
func weekAxis(cal heatmap.Calendar) []string {
	labels := make([]string, len(cal.Weeks))
	for _, m := range cal.Months {
		if m.WeekIndex >= 0 && m.WeekIndex < len(labels) {
			labels[m.WeekIndex] = m.Text
		}
	}
	return labels
}

func cellData(cal heatmap.Calendar) []opts.HeatMapData {
	data := make([]opts.HeatMapData, 0, len(cal.Weeks)*7)
	for wi, week := range cal.Weeks {
		for weekday, day := range week {
			data = append(data, opts.HeatMapData{
				Name:  heatmap.ContributionPhrase(day.Count) + " on " + day.Date,
				Value: [3]interface{}{wi, len(weekdayAxis) - 1 - weekday, heatmap.ClampLevel(day.Level)},
			})
		}
	}
	return data
}
