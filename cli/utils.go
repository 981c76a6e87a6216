package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	putils "github.com/pose-utils/poseutils/utils"
)

// mapOver applies fn over a slice and returns a new slice. It stops at the first error.
func mapOver[T, U any](items []T, fn func(T) (U, error)) ([]U, error) {
	ret := make([]U, 0, len(items))
	for _, item := range items {
		newItem, err := fn(item)
		if err != nil {
			return nil, err
		}
		ret = append(ret, newItem)
	}
	return ret, nil
}

// samePath returns true if abs(path1) and abs(path2) are the same.
func samePath(path1, path2 string) (bool, error) {
	abs1, err := filepath.Abs(path1)
	if err != nil {
		return false, err
	}
	abs2, err := filepath.Abs(path2)
	if err != nil {
		return false, err
	}
	return abs1 == abs2, nil
}

func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: ")
	printf(w, format, a...)
}

// parseVector parses "x,y,z".
func parseVector(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vector{}, errors.Errorf("expected x,y,z but got %q", s)
	}
	values, err := mapOver(parts, func(part string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(part), 64)
	})
	if err != nil {
		return r3.Vector{}, errors.Wrapf(err, "parsing %q", s)
	}
	return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
}

func formatVector(v r3.Vector) string {
	return fmt.Sprintf("%g %g %g", v.X, v.Y, v.Z)
}

// createFile writes a new file at path, creating its directory if needed.
func createFile(path string, write func(io.Writer) error) (err error) {
	if err := putils.EnsureParentDir(path); err != nil {
		return err
	}
	//nolint:gosec
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, file.Close())
	}()
	return write(file)
}
