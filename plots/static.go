package plots

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pose-utils/poseutils/trajectory"
	"github.com/pose-utils/poseutils/utils"
)

var (
	startColor = color.RGBA{R: 255, A: 255}
	endColor   = color.RGBA{R: 255, G: 255, A: 255}
	axisColors = [3]color.Color{
		color.RGBA{R: 255, A: 255},
		color.RGBA{G: 128, A: 255},
		color.RGBA{B: 255, A: 255},
	}
	faceColor = color.NRGBA{R: 31, G: 119, B: 180, A: 26}
)

const markerRadius = 3.5

// TrajectoryOptions controls PlotTrajectories.
type TrajectoryOptions struct {
	// Legends names each trajectory. Leave empty for no legend.
	Legends []string
	// PlotStart marks the first pose of each trajectory in red.
	PlotStart bool
	// PlotEnd marks the last pose of each trajectory in yellow.
	PlotEnd bool
	View    *View
	Title   string
}

// AxisOptions controls PlotAxis and PlotAxisMany.
type AxisOptions struct {
	// PointColor is the color of the camera center. Defaults to black.
	PointColor color.Color
	// NormalizeTranslation scales the camera center to unit length.
	NormalizeTranslation bool
	// CameraSize is the drawn length of each camera axis. Defaults to 1.
	CameraSize float64
	View       *View
	Title      string
}

func viewOrDefault(v *View) View {
	if v == nil {
		return DefaultView()
	}
	return *v
}

func (o AxisOptions) cameraSize() float64 {
	if o.CameraSize <= 0 {
		return 1
	}
	return o.CameraSize
}

func (o AxisOptions) pointColor() color.Color {
	if o.PointColor == nil {
		return color.Black
	}
	return o.PointColor
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(plotter.NewGrid())
	return p
}

// addAxesTriad draws short world X, Y and Z axes at origin so the projection can be read.
func addAxesTriad(p *plot.Plot, view View, origin r3.Vector, size float64) error {
	var labels plotter.XYLabels
	for i, axis := range []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}} {
		tip := origin.Add(axis.Mul(size))
		line, err := plotter.NewLine(view.ProjectAll([]r3.Vector{origin, tip}))
		if err != nil {
			return err
		}
		line.Color = color.Gray{Y: 150}
		line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(line)
		labels.XYs = append(labels.XYs, view.Project(tip))
		labels.Labels = append(labels.Labels, []string{"X", "Y", "Z"}[i])
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

func marker(xy plotter.XY, c color.Color) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(plotter.XYs{xy})
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(markerRadius)
	return s, nil
}

// PlotTrajectories draws the camera centers of every trajectory as a line.
func PlotTrajectories(trajs []trajectory.Trajectory, opts TrajectoryOptions) (*plot.Plot, error) {
	if len(opts.Legends) != 0 && len(opts.Legends) != len(trajs) {
		return nil, errors.Wrapf(ErrLabelCount, "%d legends for %d trajectories", len(opts.Legends), len(trajs))
	}
	view := viewOrDefault(opts.View)
	p := newPlot(opts.Title)

	var all trajectory.Trajectory
	for i, tr := range trajs {
		if len(tr) == 0 {
			return nil, errors.Errorf("trajectory %d is empty", i)
		}
		all = append(all, tr...)

		frames := view.ProjectAll(tr.Translations())
		line, err := plotter.NewLine(frames)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		if len(opts.Legends) != 0 {
			p.Legend.Add(opts.Legends[i], line)
		}

		if opts.PlotStart {
			s, err := marker(frames[0], startColor)
			if err != nil {
				return nil, err
			}
			p.Add(s)
		}
		if opts.PlotEnd {
			s, err := marker(frames[len(frames)-1], endColor)
			if err != nil {
				return nil, err
			}
			p.Add(s)
		}
	}

	if len(all) != 0 {
		lo, hi := all.Bounds()
		size := max(hi.Sub(lo).Norm()*0.1, 1e-3)
		if err := addAxesTriad(p, view, lo, size); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// PlotAxis draws a camera as its center, its three local axes in red, green and blue, the mean
// of those axes in black and a translucent triangle through the axis tips that shows where the
// camera faces. A nil p starts a new plot. The label, if any, is written next to the center.
func PlotAxis(p *plot.Plot, translation r3.Vector, rotation mgl64.Mat3, label string, opts AxisOptions) (*plot.Plot, error) {
	view := viewOrDefault(opts.View)
	if p == nil {
		p = newPlot(opts.Title)
	}

	if opts.NormalizeTranslation {
		n := translation.Norm()
		if n == 0 {
			return nil, errors.New("cannot normalize a zero translation")
		}
		translation = translation.Mul(1 / n)
	}

	size := opts.cameraSize()
	var tips [3]r3.Vector
	var segments [3][2]r3.Vector
	for i := 0; i < 3; i++ {
		col := rotation.Col(i)
		axis := r3.Vector{X: col.X(), Y: col.Y(), Z: col.Z()}
		n := axis.Norm()
		if n == 0 {
			return nil, errors.Errorf("rotation column %d has zero length", i)
		}
		tips[i] = translation.Add(axis.Mul(size / n))
		segments[i] = [2]r3.Vector{translation, tips[i]}
	}
	// the mean of the three segments starts at the center and ends at the centroid of the tips
	center := [2]r3.Vector{translation, tips[0].Add(tips[1]).Add(tips[2]).Mul(1. / 3)}

	face, err := plotter.NewPolygon(view.ProjectAll(tips[:]))
	if err != nil {
		return nil, err
	}
	face.Color = faceColor
	face.LineStyle.Width = 0
	p.Add(face)

	for i, seg := range segments {
		line, err := plotter.NewLine(view.ProjectAll(seg[:]))
		if err != nil {
			return nil, err
		}
		line.Color = axisColors[i]
		p.Add(line)
	}
	mean, err := plotter.NewLine(view.ProjectAll(center[:]))
	if err != nil {
		return nil, err
	}
	mean.Color = color.Black
	p.Add(mean)

	s, err := marker(view.Project(translation), opts.pointColor())
	if err != nil {
		return nil, err
	}
	p.Add(s)

	if label != "" {
		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{view.Project(translation)},
			Labels: []string{label},
		})
		if err != nil {
			return nil, err
		}
		l.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
		p.Add(l)
	}
	return p, nil
}

// PlotAxisMany draws every pose of a trajectory with PlotAxis on one plot. labels must be
// empty or hold one label per pose.
func PlotAxisMany(poses trajectory.Trajectory, labels []string, opts AxisOptions) (*plot.Plot, error) {
	if len(labels) != 0 && len(labels) != len(poses) {
		return nil, errors.Wrapf(ErrLabelCount, "%d labels for %d poses", len(labels), len(poses))
	}
	p := newPlot(opts.Title)
	for i, pose := range poses {
		label := ""
		if len(labels) != 0 {
			label = labels[i]
		}
		if _, err := PlotAxis(p, pose.Translation(), pose.Rotation(), label, opts); err != nil {
			return nil, errors.Wrapf(err, "pose %d", i)
		}
	}
	return p, nil
}

// Save writes the plot to path, creating parent directories as needed. The image format follows
// the extension (png, svg, pdf, ...).
func Save(p *plot.Plot, width, height vg.Length, path string) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	return errors.Wrapf(p.Save(width, height, path), "saving plot to %q", path)
}
