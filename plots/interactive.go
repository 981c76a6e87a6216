package plots

import (
	"image/color"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotutil"

	"github.com/pose-utils/poseutils/trajectory"
)

func chart3DData(points ...r3.Vector) []opts.Chart3DData {
	data := make([]opts.Chart3DData, len(points))
	for i, p := range points {
		data[i] = opts.Chart3DData{Value: []interface{}{p.X, p.Y, p.Z}}
	}
	return data
}

func new3DLine(title, subtitle string) *charts.Line3D {
	line := charts.NewLine3D()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z"}),
	)
	return line
}

func lineStyle(c color.Color) charts.SeriesOpts {
	return charts.WithLineStyleOpts(opts.LineStyle{Color: hexColor(c), Width: 2})
}

func markers(name string, c color.Color, points ...r3.Vector) *charts.Scatter3D {
	scatter := charts.NewScatter3D()
	scatter.AddSeries(name, chart3DData(points...), charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(c)}))
	return scatter
}

// RenderTrajectories3D writes an interactive HTML page showing the camera centers of every
// trajectory as a 3D line.
func RenderTrajectories3D(w io.Writer, trajs []trajectory.Trajectory, o TrajectoryOptions) error {
	if len(o.Legends) != 0 && len(o.Legends) != len(trajs) {
		return errors.Wrapf(ErrLabelCount, "%d legends for %d trajectories", len(o.Legends), len(trajs))
	}
	title := o.Title
	if title == "" {
		title = "Trajectories"
	}
	line := new3DLine(title, "")

	var extra []*charts.Scatter3D
	for i, tr := range trajs {
		if len(tr) == 0 {
			return errors.Errorf("trajectory %d is empty", i)
		}
		name := trajectoryName(o.Legends, i)
		ts := tr.Translations()
		line.AddSeries(name, chart3DData(ts...), lineStyle(plotutil.Color(i)))
		if o.PlotStart {
			extra = append(extra, markers(name+" start", startColor, ts[0]))
		}
		if o.PlotEnd {
			extra = append(extra, markers(name+" end", endColor, ts[len(ts)-1]))
		}
	}
	for _, s := range extra {
		line.MultiSeries = append(line.MultiSeries, s.MultiSeries...)
	}
	return line.Render(w)
}

func trajectoryName(legends []string, i int) string {
	if len(legends) != 0 {
		return legends[i]
	}
	return "trajectory " + strconv.Itoa(i)
}

// RenderCameras3D writes an interactive HTML page with every pose drawn as its center and its
// three local axes.
func RenderCameras3D(w io.Writer, poses trajectory.Trajectory, labels []string, o AxisOptions) error {
	if len(labels) != 0 && len(labels) != len(poses) {
		return errors.Wrapf(ErrLabelCount, "%d labels for %d poses", len(labels), len(poses))
	}
	title := o.Title
	if title == "" {
		title = "Cameras"
	}
	line := new3DLine(title, "")
	size := o.cameraSize()

	centers := make([]r3.Vector, 0, len(poses))
	for i, pose := range poses {
		t := pose.Translation()
		if o.NormalizeTranslation {
			n := t.Norm()
			if n == 0 {
				return errors.Errorf("pose %d: cannot normalize a zero translation", i)
			}
			t = t.Mul(1 / n)
		}
		centers = append(centers, t)
		for axis, name := range []string{"x axis", "y axis", "z axis"} {
			dir := pose.RotationColumn(axis)
			n := dir.Norm()
			if n == 0 {
				return errors.Errorf("pose %d: rotation column %d has zero length", i, axis)
			}
			line.AddSeries(name, chart3DData(t, t.Add(dir.Mul(size/n))), lineStyle(axisColors[axis]))
		}
	}

	scatter := charts.NewScatter3D()
	data := chart3DData(centers...)
	for i := range data {
		if len(labels) != 0 {
			data[i].Name = labels[i]
		}
	}
	scatter.AddSeries("centers", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(o.pointColor())}))
	line.MultiSeries = append(line.MultiSeries, scatter.MultiSeries...)
	return line.Render(w)
}
