package metrics

import (
	"math"

	"github.com/montanaflynn/stats"
	"go.uber.org/multierr"
)

// Stats summarizes one kind of error over a trajectory.
type Stats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	RMSE   float64 `json:"rmse"`
	Max    float64 `json:"max"`
}

// Summary holds the statistics of both error kinds.
type Summary struct {
	Count       int   `json:"count"`
	Translation Stats `json:"translation"`
	RotationDeg Stats `json:"rotation_deg"`
}

func split(errs []PoseError) (translations, rotations stats.Float64Data) {
	translations = make(stats.Float64Data, len(errs))
	rotations = make(stats.Float64Data, len(errs))
	for i, e := range errs {
		translations[i] = e.Translation
		rotations[i] = e.RotationDeg
	}
	return translations, rotations
}

// MedianErrors returns the median translation and rotation errors.
func MedianErrors(errs []PoseError) (translation, rotationDeg float64, err error) {
	if len(errs) == 0 {
		return 0, 0, ErrNoErrors
	}
	translations, rotations := split(errs)
	translation, errT := stats.Median(translations)
	rotationDeg, errR := stats.Median(rotations)
	if err := multierr.Combine(errT, errR); err != nil {
		return 0, 0, err
	}
	return translation, rotationDeg, nil
}

// Summarize returns mean, median, RMSE and maximum of both error kinds.
func Summarize(errs []PoseError) (Summary, error) {
	if len(errs) == 0 {
		return Summary{}, ErrNoErrors
	}
	translations, rotations := split(errs)
	t, errT := describe(translations)
	r, errR := describe(rotations)
	if err := multierr.Combine(errT, errR); err != nil {
		return Summary{}, err
	}
	return Summary{Count: len(errs), Translation: t, RotationDeg: r}, nil
}

func describe(data stats.Float64Data) (Stats, error) {
	mean, err1 := stats.Mean(data)
	median, err2 := stats.Median(data)
	maximum, err3 := stats.Max(data)

	squares := make(stats.Float64Data, len(data))
	for i, v := range data {
		squares[i] = v * v
	}
	meanSquare, err4 := stats.Mean(squares)

	if err := multierr.Combine(err1, err2, err3, err4); err != nil {
		return Stats{}, err
	}
	return Stats{Mean: mean, Median: median, RMSE: math.Sqrt(meanSquare), Max: maximum}, nil
}
