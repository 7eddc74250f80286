// Package report serializes analysis results: per-dataset CSV files,
// console summary tables and HTML charts. It consumes plain feature
// records and verdicts and knows nothing about how they were computed.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vitalwave/ppgkit/analysis"
)

// Summary bundles everything the sinks need about one dataset.
type Summary struct {
	Dataset  string
	Features *analysis.FeatureRecord
	Verdict  *analysis.Verdict
}

// Row is one name/value pair in the tabular export.
type Row struct {
	Feature string
	Value   string
}

// Rows flattens a summary into the export table: the six features
// first, then the screening flags, the mean-value recap rows and the
// overall verdict. Missing values export as empty strings, never as
// fabricated numbers.
func (s Summary) Rows() []Row {
	f := s.Features
	v := s.Verdict

	verdictText := "No"
	if v.IrregularHeartRate {
		verdictText = "Yes"
	}

	return []Row{
		{"Heart Rate (BPM)", formatNullable(f.HeartRate)},
		{"Respiratory Rate (breaths/min)", formatNullable(f.RespiratoryRate)},
		{"Systolic Amplitude", formatValue(f.SystolicAmplitude)},
		{"SNR", formatValue(f.SNR)},
		{"Kurtosis", formatValue(f.Kurtosis)},
		{"Skewness", formatValue(f.Skewness)},
		{"Irregular Heart Rate", formatBool(v.IrregularHeartRate)},
		{"Abnormal Waveform", formatBool(v.AbnormalWaveform)},
		{"Mean Heart Rate", formatNullable(f.HeartRate)},
		{"Mean Respiratory Rate", formatNullable(f.RespiratoryRate)},
		{"Mean Systolic Amplitude", formatValue(f.SystolicAmplitude)},
		{"Arrhythmia Detected", verdictText},
		{"Segment Time Start", formatNullable(v.EpisodeStart)},
		{"Segment Time End", formatNullable(v.EpisodeEnd)},
	}
}

// WriteCSV writes the summary as Feature,Value rows.
func WriteCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Feature", "Value"}); err != nil {
		return fmt.Errorf("report: writing csv header: %w", err)
	}
	for _, row := range s.Rows() {
		if err := cw.Write([]string{row.Feature, row.Value}); err != nil {
			return fmt.Errorf("report: writing csv row %q: %w", row.Feature, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flushing csv: %w", err)
	}
	return nil
}

// SaveCSV writes the summary to a results file on disk.
func SaveCSV(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: creating %s: %w", path, err)
	}

	if err := WriteCSV(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatBool uses capitalized True/False, keeping result files
// byte-compatible with previously exported datasets.
func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return formatValue(*v)
}
