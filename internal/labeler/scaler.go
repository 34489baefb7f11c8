// Package labeler trains a small tree ensemble on seed-labeled feature
// vectors and infers style labels, with confidence, for the rest of the
// driver population.
package labeler

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes feature columns to zero mean and unit variance using
// the statistics of the data it was fitted on.
type Scaler struct {
	mean []float64
	std  []float64
}

// FitScaler computes per-column mean and population standard deviation.
// Constant columns scale by 1 so they pass through centered.
func FitScaler(x [][]float64) (*Scaler, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("scaler: no rows to fit")
	}
	cols := len(x[0])

	s := &Scaler{
		mean: make([]float64, cols),
		std:  make([]float64, cols),
	}

	column := make([]float64, len(x))
	for c := 0; c < cols; c++ {
		for r, row := range x {
			if len(row) != cols {
				return nil, fmt.Errorf("scaler: ragged row %d (%d columns, want %d)", r, len(row), cols)
			}
			column[r] = row[c]
		}
		s.mean[c] = stat.Mean(column, nil)
		s.std[c] = stat.PopStdDev(column, nil)
		if s.std[c] == 0 {
			s.std[c] = 1
		}
	}
	return s, nil
}

// Transform standardizes one row.
func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for c, v := range row {
		out[c] = (v - s.mean[c]) / s.std[c]
	}
	return out
}

// TransformAll standardizes a matrix.
func (s *Scaler) TransformAll(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.Transform(row)
	}
	return out
}
