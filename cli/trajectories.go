package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/pose-utils/poseutils/metrics"
	"github.com/pose-utils/poseutils/trajectory"
)

const histogramWidth = 40

// ErrorsAction is the corresponding Action for 'errors'.
func ErrorsAction(c *cli.Context) error {
	pc, err := newPoseutilsCLI(c)
	if err != nil {
		return err
	}
	return pc.errorsAction(c)
}

func (pc *poseutilsCLI) errorsAction(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return errors.New("expected a ground truth and a predicted trajectory")
	}
	f, err := pc.format(c)
	if err != nil {
		return err
	}
	truth, err := pc.readTrajectory(c.Args().Get(0), f)
	if err != nil {
		return err
	}
	pred, err := pc.readTrajectory(c.Args().Get(1), f)
	if err != nil {
		return err
	}

	errs, err := metrics.RotationAndTranslationErrors(truth, pred)
	if err != nil {
		return err
	}
	summary, err := metrics.Summarize(errs)
	if err != nil {
		return err
	}

	if c.Bool(flagJSON) {
		out := struct {
			Errors  []metrics.PoseError `json:"errors,omitempty"`
			Summary metrics.Summary     `json:"summary"`
		}{Summary: summary}
		if !c.Bool(flagSummary) {
			out.Errors = errs
		}
		encoder := json.NewEncoder(c.App.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	if !c.Bool(flagSummary) {
		t := table.NewWriter()
		t.AppendHeader(table.Row{"#", "Translation", "Rotation (deg)"})
		for i, e := range errs {
			t.AppendRow(table.Row{i, fmt.Sprintf("%.6f", e.Translation), fmt.Sprintf("%.4f", e.RotationDeg)})
		}
		printf(c.App.Writer, "%s", t.Render())
	}

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%d poses", summary.Count))
	t.AppendHeader(table.Row{"", "Mean", "Median", "RMSE", "Max"})
	for _, row := range []struct {
		name  string
		stats metrics.Stats
	}{
		{"Translation", summary.Translation},
		{"Rotation (deg)", summary.RotationDeg},
	} {
		t.AppendRow(table.Row{
			row.name,
			fmt.Sprintf("%.6f", row.stats.Mean),
			fmt.Sprintf("%.6f", row.stats.Median),
			fmt.Sprintf("%.6f", row.stats.RMSE),
			fmt.Sprintf("%.6f", row.stats.Max),
		})
	}
	printf(c.App.Writer, "%s", t.Render())

	if bins := c.Int(flagBins); bins > 0 {
		return printHistograms(c.App.Writer, errs, bins)
	}
	return nil
}

func printHistograms(w io.Writer, errs []metrics.PoseError, bins int) error {
	for _, h := range []struct {
		name   string
		values []float64
	}{
		{"translation", lo.Map(errs, func(e metrics.PoseError, _ int) float64 { return e.Translation })},
		{"rotation (deg)", lo.Map(errs, func(e metrics.PoseError, _ int) float64 { return e.RotationDeg })},
	} {
		printf(w, "%s error", h.name)
		if err := histogram.Fprint(w, histogram.Hist(bins, h.values), histogram.Linear(histogramWidth)); err != nil {
			return err
		}
	}
	return nil
}

// FlipAction is the corresponding Action for 'flip'.
func FlipAction(c *cli.Context) error {
	pc, err := newPoseutilsCLI(c)
	if err != nil {
		return err
	}
	return pc.flipAction(c)
}

func (pc *poseutilsCLI) flipAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("expected exactly one trajectory")
	}
	in, out := c.Args().First(), c.String(flagOut)
	f, err := pc.format(c)
	if err != nil {
		return err
	}
	tr, err := pc.readTrajectory(in, f)
	if err != nil {
		return err
	}
	flipped, err := tr.Flip(c.Int(flagAxis))
	if err != nil {
		return err
	}

	outFormat := f
	if outFormat == "" {
		if outFormat, err = trajectory.FormatFromPath(out); err != nil {
			return err
		}
	}
	if outFormat == trajectory.FormatTUM {
		// a flipped rotation has determinant -1, which no unit quaternion represents
		warningf(c.App.ErrWriter, "%s files store quaternions and cannot hold flipped rotations", outFormat)
	}
	if same, err := samePath(in, out); err == nil && same {
		warningf(c.App.ErrWriter, "overwriting %q", in)
	}
	if err := trajectory.WriteFile(out, flipped, outFormat); err != nil {
		return err
	}
	pc.logger.Infow("wrote flipped trajectory", "path", out, "axis", c.Int(flagAxis), "poses", len(flipped))
	return nil
}

// ShowAction is the corresponding Action for 'show'.
func ShowAction(c *cli.Context) error {
	pc, err := newPoseutilsCLI(c)
	if err != nil {
		return err
	}
	return pc.showAction(c)
}

func (pc *poseutilsCLI) showAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("expected exactly one trajectory")
	}
	f, err := pc.format(c)
	if err != nil {
		return err
	}
	tr, err := pc.readTrajectory(c.Args().First(), f)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Translation", "Quaternion (w, x, y, z)"})
	for i, pose := range tr {
		p, q := pose.Translation(), pose.Quaternion()
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", p.X, p.Y, p.Z),
			fmt.Sprintf("%.4f, %.4f, %.4f, %.4f", q.Real, q.Imag, q.Jmag, q.Kmag),
		})
	}
	printf(c.App.Writer, "%s", t.Render())

	if len(tr) > 0 {
		minPt, maxPt := tr.Bounds()
		printf(c.App.Writer, "path length: %.6g", tr.PathLength())
		printf(c.App.Writer, "bounds: (%s) to (%s)", formatVector(minPt), formatVector(maxPt))
	}
	return nil
}
