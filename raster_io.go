package pops

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ReadIntRaster parses a comma-delimited grid of integers, one row per
// line, into a Raster[int]. Every line must carry the same number of
// fields. This is a convenience reader for the CLI entrypoint, not
// part of the engine's in-memory contract (§6 leaves raster I/O to the
// caller); it is hand-rolled rather than built on a third-party CSV
// parser to match the manual line/field splitting network.go already
// uses for the node and segment streams.
func ReadIntRaster(r io.Reader, ewRes, nsRes float64) (*Raster[int], error) {
	rows, err := readGridRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NewRaster[int](0, 0, ewRes, nsRes), nil
	}
	cols := len(rows[0])
	data := make([]int, 0, len(rows)*cols)
	for _, fields := range rows {
		for _, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, err
			}
			data = append(data, v)
		}
	}
	return NewRasterFrom(data, len(rows), cols, ewRes, nsRes), nil
}

// ReadFloatRaster is ReadIntRaster's float64 counterpart, used for
// weather, lethal-temperature, and survival-rate series entries.
func ReadFloatRaster(r io.Reader, ewRes, nsRes float64) (*Raster[float64], error) {
	rows, err := readGridRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NewRaster[float64](0, 0, ewRes, nsRes), nil
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for _, fields := range rows {
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
			data = append(data, v)
		}
	}
	return NewRasterFrom(data, len(rows), cols, ewRes, nsRes), nil
}

func readGridRows(r io.Reader) ([][]string, error) {
	var rows [][]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, ","))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
