package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/TomTonic/discrepancy"
)

// readPoints parses one point per CSV record. A first record that is not fully numeric is
// taken as a header. Records with a non-numeric or non-finite field ("nan", "inf") or the
// wrong number of columns are dropped and counted.
func readPoints(r io.Reader) (points *discrepancy.PointSet, dropped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]float64
	width := -1
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, dropped, fmt.Errorf("read csv: %w", err)
		}
		row, ok := parseRecord(rec)
		if first && !ok {
			width = len(rec)
			continue
		}
		if width < 0 {
			width = len(rec)
		}
		if !ok || len(row) != width {
			dropped++
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, dropped, fmt.Errorf("%w: no numeric rows", discrepancy.ErrInvalidArgument)
	}
	points, err = discrepancy.NewPointSet(rows)
	return points, dropped, err
}

func parseRecord(rec []string) ([]float64, bool) {
	row := make([]float64, len(rec))
	for i, f := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		row[i] = v
	}
	return row, true
}

// writePoints writes a header x1..xd followed by one record per point.
func writePoints(w io.Writer, points *discrepancy.PointSet) error {
	n, d := points.Dims()
	cw := csv.NewWriter(w)
	rec := make([]string, d)
	for j := range d {
		rec[j] = "x" + strconv.Itoa(j+1)
	}
	if err := cw.Write(rec); err != nil {
		return err
	}
	for i := range n {
		for j := range d {
			rec[j] = strconv.FormatFloat(points.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
