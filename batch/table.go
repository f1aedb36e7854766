package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	mscanner "github.com/satoshi-pes/modscanner"

	"github.com/satoshi-pes/geoloc/geodesy"
)

// batch logger
var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

// tableColumns is the input layout:
// name, dist1, dist2, dist3, long1, lat1, long2, lat2, long3, lat3
const tableColumns = 10

// RowError records one skipped input row. Line counts from 1 including the
// header row.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

// ReadTable reads a delimited sample table: one header row, then one data
// row per sample. Malformed rows (wrong column count, non-numeric value,
// non-positive distance) are skipped, logged, and returned as RowErrors;
// only a missing header is fatal. Row order is preserved.
func ReadTable(r io.Reader, delim rune) ([]Sample, []RowError, error) {
	s := mscanner.NewScanner(r)

	if !s.Scan() {
		return nil, nil, fmt.Errorf("empty input: missing header row")
	}

	var (
		samples []Sample
		rowErrs []RowError
	)

	line := 1
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}

		smp, err := parseRow(text, delim)
		if err != nil {
			logger.Printf("warning: skipping row %d: %v\n", line, err)
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		samples = append(samples, smp)
	}
	if err := s.Err(); err != nil {
		// a failed read mid-stream must not pass off a truncated table
		// as a complete one
		return nil, nil, err
	}

	return samples, rowErrs, nil
}

func parseRow(text string, delim rune) (Sample, error) {
	fields := strings.Split(text, string(delim))
	if len(fields) != tableColumns {
		return Sample{}, fmt.Errorf("got %d columns, want %d", len(fields), tableColumns)
	}

	var vals [tableColumns - 1]float64
	for k := 1; k < tableColumns; k++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[k]), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("column %d: %w", k+1, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Sample{}, fmt.Errorf("column %d: value %v is not finite", k+1, v)
		}
		vals[k-1] = v
	}

	smp := Sample{Name: strings.TrimSpace(fields[0])}
	for a := 0; a < 3; a++ {
		if vals[a] <= 0 {
			return Sample{}, fmt.Errorf("dist%d must be > 0, got %v", a+1, vals[a])
		}
		smp.Anchors[a] = Anchor{
			Point: geodesy.Geodetic{Lon: vals[3+2*a], Lat: vals[4+2*a]},
			Dist:  vals[a],
		}
	}

	return smp, nil
}

// WriteTable writes the result table: a header row, then one row per
// solution in order. Failed rows keep their name and status but leave the
// coordinate columns empty, so downstream consumers can tell trustworthy
// results from approximate and failed ones.
func WriteTable(w io.Writer, delim rune, sols []Solution) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	if err := cw.Write([]string{"name", "longitude", "latitude", "status"}); err != nil {
		return err
	}

	for _, sol := range sols {
		rec := []string{sol.Name, "", "", sol.Status.String()}
		if sol.Status.Solved() {
			rec[1] = strconv.FormatFloat(sol.Point.Lon, 'f', -1, 64)
			rec[2] = strconv.FormatFloat(sol.Point.Lat, 'f', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
