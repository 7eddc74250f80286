package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/vitalwave/ppgkit/algorithms/spectral"
	"github.com/vitalwave/ppgkit/analysis"
)

// maxPlotPoints caps the samples drawn in the signal chart; long
// recordings are strided down so the HTML stays responsive.
const maxPlotPoints = 2000

// SignalChart plots the conditioned trace over time. When an irregular
// episode was flagged, its first and last beat are marked on the
// curve.
func SignalChart(signal []float64, samplingRate int, verdict *analysis.Verdict) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Conditioned PPG Signal"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Normalized amplitude"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	stride := 1
	if len(signal) > maxPlotPoints {
		stride = (len(signal) + maxPlotPoints - 1) / maxPlotPoints
	}

	var episodeStart, episodeEnd float64
	markEpisode := verdict != nil && verdict.EpisodeStart != nil && verdict.EpisodeEnd != nil
	if markEpisode {
		episodeStart = *verdict.EpisodeStart
		episodeEnd = *verdict.EpisodeEnd
	}

	labels := make([]string, 0, maxPlotPoints)
	data := make([]opts.LineData, 0, maxPlotPoints)
	episode := make([]opts.LineData, 0, maxPlotPoints)
	for i := 0; i < len(signal); i += stride {
		t := float64(i) / float64(samplingRate)
		labels = append(labels, strconv.FormatFloat(t, 'f', 2, 64))
		data = append(data, opts.LineData{Value: signal[i]})

		if markEpisode && t >= episodeStart && t <= episodeEnd {
			episode = append(episode, opts.LineData{Value: signal[i], Symbol: "circle"})
		} else {
			episode = append(episode, opts.LineData{Value: "-"})
		}
	}

	line.SetXAxis(labels)
	line.AddSeries("PPG", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)
	if markEpisode {
		line.AddSeries("Irregular episode", episode,
			charts.WithLineStyleOpts(opts.LineStyle{Width: 0, Opacity: opts.Float(0)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#d9534f"}),
		)
	}

	return line
}

// FeatureChart plots the feature record as a bar chart. Missing rates
// are skipped rather than drawn as zero.
func FeatureChart(features *analysis.FeatureRecord) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Feature Distribution"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := []string{}
	data := []opts.BarData{}

	appendFeature := func(name string, value float64) {
		labels = append(labels, name)
		data = append(data, opts.BarData{Value: value})
	}

	if features.HeartRate != nil {
		appendFeature("Heart Rate (BPM)", *features.HeartRate)
	}
	if features.RespiratoryRate != nil {
		appendFeature("Respiratory Rate", *features.RespiratoryRate)
	}
	appendFeature("Systolic Amplitude", features.SystolicAmplitude)
	appendFeature("SNR", features.SNR)
	appendFeature("Kurtosis", features.Kurtosis)
	appendFeature("Skewness", features.Skewness)

	bar.SetXAxis(labels)
	bar.AddSeries("Features", data)

	return bar
}

// SpectrumChart plots the one-sided power spectrum.
func SpectrumChart(spectrum *spectral.Spectrum) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Power Spectrum"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frequency (Hz)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Power"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	labels := make([]string, len(spectrum.Frequencies))
	data := make([]opts.LineData, len(spectrum.Frequencies))
	for i, f := range spectrum.Frequencies {
		labels[i] = strconv.FormatFloat(f, 'f', 3, 64)
		data[i] = opts.LineData{Value: spectrum.Power[i]}
	}

	line.SetXAxis(labels)
	line.AddSeries("Power", data)

	return line
}

// SavePlots renders the dataset's charts into a single HTML page.
func SavePlots(path string, signal []float64, samplingRate int, s Summary) error {
	spectrum := spectral.PowerSpectrum(signal, samplingRate)

	page := components.NewPage()
	page.PageTitle = s.Dataset
	page.AddCharts(
		SignalChart(signal, samplingRate, s.Verdict),
		FeatureChart(s.Features),
		SpectrumChart(spectrum),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: creating %s: %w", path, err)
	}

	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("report: rendering plots: %w", err)
	}
	return f.Close()
}
