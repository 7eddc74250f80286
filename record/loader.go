// Package record loads raw PPG recordings from disk. A recording file
// starts with a one-line header carrying the sampling rate and
// duration, followed by comma-separated time/amplitude rows. The
// loader strips rows that fail to parse so the pipeline only ever sees
// finite numeric samples.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vitalwave/ppgkit/logging"
)

// Header parsing errors.
var (
	ErrMissingHeader       = errors.New("record: missing header line")
	ErrMissingSamplingRate = errors.New("record: unable to extract sampling rate from header")
	ErrMissingDuration     = errors.New("record: unable to extract duration from header")
	ErrInvalidSamplingRate = errors.New("record: sampling rate must be positive")
)

// Recording is one loaded PPG trace.
type Recording struct {
	Name         string    // Dataset name, the file base name when loaded from disk
	SamplingRate int       // Samples per second
	Duration     float64   // Recorded duration in seconds, as declared by the header
	Times        []float64 // Row timestamps in seconds
	Samples      []float64 // Raw PPG amplitudes
}

// Load reads a recording file from disk.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("record: opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(filepath.Base(path), f)
}

// Read parses a recording from a stream. Data rows that are incomplete
// or non-numeric are dropped rather than failing the load.
func Read(name string, r io.Reader) (*Recording, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("record: reading header: %w", err)
		}
		return nil, ErrMissingHeader
	}

	rate, duration, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	rec := &Recording{
		Name:         name,
		SamplingRate: rate,
		Duration:     duration,
	}

	dropped := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		t, v, ok := parseRow(line)
		if !ok {
			dropped++
			continue
		}
		rec.Times = append(rec.Times, t)
		rec.Samples = append(rec.Samples, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("record: reading samples: %w", err)
	}

	if dropped > 0 {
		logging.Warn("dropped unparseable rows", logging.Fields{
			"recording": name,
			"rows":      dropped,
		})
	}

	return rec, nil
}

// parseHeader extracts the sampling rate and duration from the header
// line, e.g. "Sampling Rate : 100 Hz , Duration : 60.0 s".
func parseHeader(line string) (rate int, duration float64, err error) {
	rateField, ok := fieldAfter(line, "Sampling Rate :")
	if !ok {
		return 0, 0, ErrMissingSamplingRate
	}
	rateText, _, found := strings.Cut(rateField, "Hz")
	if !found {
		return 0, 0, ErrMissingSamplingRate
	}
	rate, err = strconv.Atoi(strings.TrimSpace(rateText))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMissingSamplingRate, err)
	}
	if rate <= 0 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidSamplingRate, rate)
	}

	durField, ok := fieldAfter(line, "Duration :")
	if !ok {
		return 0, 0, ErrMissingDuration
	}
	tokens := strings.Fields(durField)
	if len(tokens) == 0 {
		return 0, 0, ErrMissingDuration
	}
	duration, err = strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMissingDuration, err)
	}

	return rate, duration, nil
}

// fieldAfter returns the remainder of line following the first
// occurrence of marker.
func fieldAfter(line, marker string) (string, bool) {
	_, rest, found := strings.Cut(line, marker)
	if !found {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// parseRow parses a "time,ppg" data row.
func parseRow(line string) (t, v float64, ok bool) {
	timeText, valueText, found := strings.Cut(line, ",")
	if !found {
		return 0, 0, false
	}

	t, err := strconv.ParseFloat(strings.TrimSpace(timeText), 64)
	if err != nil {
		return 0, 0, false
	}
	v, err = strconv.ParseFloat(strings.TrimSpace(valueText), 64)
	if err != nil {
		return 0, 0, false
	}
	return t, v, true
}
