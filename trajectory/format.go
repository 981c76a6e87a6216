package trajectory

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/num/quat"

	"github.com/pose-utils/poseutils/spatialmath"
	putils "github.com/pose-utils/poseutils/utils"
)

// Format is an on-disk trajectory encoding.
type Format string

const (
	// FormatJSON is a JSON array of 4x4 row-major matrices.
	FormatJSON Format = "json"
	// FormatKITTI has one pose per line: the top three rows of the matrix, 12 values row-major.
	FormatKITTI Format = "kitti"
	// FormatTUM has one pose per line: timestamp tx ty tz qx qy qz qw.
	FormatTUM Format = "tum"
)

const commentChar = "#"

// ErrUnknownFormat is returned for formats, or file extensions, that are not supported.
var ErrUnknownFormat = errors.New("unknown trajectory format")

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatKITTI, FormatTUM:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
}

// FormatFromPath guesses the format of a file from its extension.
func FormatFromPath(path string) (Format, error) {
	switch putils.Ext(path) {
	case "json":
		return FormatJSON, nil
	case "kitti", "txt":
		return FormatKITTI, nil
	case "tum":
		return FormatTUM, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "cannot tell the format of %q", path)
	}
}

// ReadFile reads a trajectory from path. An empty format is guessed from the extension.
func ReadFile(path string, f Format) (Trajectory, error) {
	if f == "" {
		var err error
		if f, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}
	//nolint:gosec
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(file.Close)

	tr, err := Read(file, f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	return tr, nil
}

// Read decodes a trajectory in the given format.
func Read(r io.Reader, f Format) (Trajectory, error) {
	switch f {
	case FormatJSON:
		return readJSON(r)
	case FormatKITTI:
		return readLines(r, 12, parseKITTI)
	case FormatTUM:
		return readLines(r, 8, parseTUM)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
}

func readJSON(r io.Reader) (Trajectory, error) {
	var raw [][][]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding json trajectory")
	}
	tr := make(Trajectory, 0, len(raw))
	for i, matrix := range raw {
		if len(matrix) != 4 {
			return nil, errors.Errorf("pose %d: expected 4 rows, got %d", i, len(matrix))
		}
		values := make([]float64, 0, 16)
		for j, row := range matrix {
			if len(row) != 4 {
				return nil, errors.Errorf("pose %d row %d: expected 4 values, got %d", i, j, len(row))
			}
			values = append(values, row...)
		}
		pose, err := spatialmath.NewRigidTransformFromRows(values)
		if err != nil {
			return nil, errors.Wrapf(err, "pose %d", i)
		}
		tr = append(tr, pose)
	}
	return tr, nil
}

func readLines(r io.Reader, fields int, parse func([]float64) (spatialmath.RigidTransform, error)) (Trajectory, error) {
	var tr Trajectory
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line, _, _ := strings.Cut(scanner.Text(), commentChar)
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) != fields {
			return nil, errors.Errorf("line %d: expected %d values, got %d", lineNumber, fields, len(tokens))
		}
		values := make([]float64, len(tokens))
		for i, token := range tokens {
			v, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: invalid value %q", lineNumber, token)
			}
			values[i] = v
		}
		pose, err := parse(values)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		tr = append(tr, pose)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tr, nil
}

func parseKITTI(values []float64) (spatialmath.RigidTransform, error) {
	return spatialmath.NewRigidTransformFromRows(append(values, 0, 0, 0, 1))
}

func parseTUM(values []float64) (spatialmath.RigidTransform, error) {
	q := quat.Number{Real: values[7], Imag: values[4], Jmag: values[5], Kmag: values[6]}
	if quat.Abs(q) == 0 {
		return spatialmath.RigidTransform{}, errors.New("zero quaternion")
	}
	t := r3.Vector{X: values[1], Y: values[2], Z: values[3]}
	return spatialmath.NewRigidTransformFromQuat(q, t), nil
}

// WriteFile writes a trajectory to path, creating parent directories as needed. An empty format
// is guessed from the extension.
func WriteFile(path string, tr Trajectory, f Format) (err error) {
	if f == "" {
		if f, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	if err := putils.EnsureParentDir(path); err != nil {
		return err
	}
	//nolint:gosec
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Wrapf(multierr.Combine(err, file.Close()), "writing %q", path)
	}()
	return Write(file, tr, f)
}

// Write encodes a trajectory in the given format. TUM timestamps are the pose indices.
func Write(w io.Writer, tr Trajectory, f Format) error {
	switch f {
	case FormatJSON:
		raw := make([][][]float64, len(tr))
		for i, pose := range tr {
			raw[i] = pose.Rows()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)
	case FormatKITTI:
		bw := bufio.NewWriter(w)
		for _, pose := range tr {
			rows := pose.Rows()
			values := append(append(append([]float64{}, rows[0]...), rows[1]...), rows[2]...)
			if _, err := fmt.Fprintln(bw, joinFloats(values)); err != nil {
				return err
			}
		}
		return bw.Flush()
	case FormatTUM:
		bw := bufio.NewWriter(w)
		for i, pose := range tr {
			t := pose.Translation()
			q := pose.Quaternion()
			values := []float64{float64(i), t.X, t.Y, t.Z, q.Imag, q.Jmag, q.Kmag, q.Real}
			if _, err := fmt.Fprintln(bw, joinFloats(values)); err != nil {
				return err
			}
		}
		return bw.Flush()
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
