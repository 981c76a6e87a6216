package cli

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot"

	"github.com/pose-utils/poseutils/openpose"
	"github.com/pose-utils/poseutils/plots"
	"github.com/pose-utils/poseutils/trajectory"
)

func (pc *poseutilsCLI) savePlot(p *plot.Plot, out string) error {
	width, height := pc.cfg.Plot.Size()
	if err := plots.Save(p, width, height, out); err != nil {
		return err
	}
	pc.logger.Infow("saved plot", "path", out)
	return nil
}

func (pc *poseutilsCLI) savePage(out string, render func(io.Writer) error) error {
	if err := createFile(out, render); err != nil {
		return errors.Wrapf(err, "writing %q", out)
	}
	pc.logger.Infow("saved page", "path", out)
	return nil
}

// PlotTrajectoriesAction is the corresponding Action for 'plot-trajectories'.
func PlotTrajectoriesAction(c *cli.Context) error {
	pc, err := newPoseutilsCLI(c)
	if err != nil {
		return err
	}
	return pc.plotTrajectoriesAction(c)
}

func (pc *poseutilsCLI) plotTrajectoriesAction(c *cli.Context) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return errors.New("expected at least one trajectory")
	}
	f, err := pc.format(c)
	if err != nil {
		return err
	}
	trajs, err := mapOver(paths, func(path string) (trajectory.Trajectory, error) {
		return pc.readTrajectory(path, f)
	})
	if err != nil {
		return err
	}

	o := pc.cfg.Plot.TrajectoryOptions()
	o.Title = c.String(flagTitle)
	o.Legends = c.StringSlice(flagLegends)
	if len(o.Legends) == 0 {
		for _, path := range paths {
			o.Legends = append(o.Legends, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		}
	}
	if c.IsSet(flagStart) {
		o.PlotStart = c.Bool(flagStart)
	}
	if c.IsSet(flagEnd) {
		o.PlotEnd = c.Bool(flagEnd)
	}

	out := c.String(flagOut)
	if pc.html(c, out) {
		return pc.savePage(out, func(w io.Writer) error {
			return plots.RenderTrajectories3D(w, trajs, o)
		})
	}
	p, err := plots.PlotTrajectories(trajs, o)
	if err != nil {
		return err
	}
	return pc.savePlot(p, out)
}

// PlotCamerasAction is the corresponding Action for 'plot-cameras'.
func PlotCamerasAction(c *cli.Context) error {
	pc, err := newPoseutilsCLI(c)
	if err != nil {
		return err
	}
	return pc.plotCamerasAction(c)
}

func (pc *poseutilsCLI) plotCamerasAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("expected exactly one trajectory")
	}
	f, err := pc.format(c)
	if err != nil {
		return err
	}
	poses, err := pc.readTrajectory(c.Args().First(), f)
	if err != nil {
		return err
	}

	o := pc.cfg.Plot.AxisOptions()
	o.Title = c.String(flagTitle)
	if c.IsSet(flagCameraSize) {
		o.CameraSize = c.Float64(flagCameraSize)
	}
	if c.IsSet(flagNormalize) {
		o.NormalizeTranslation = c.Bool(flagNormalize)
	}
	if c.IsSet(flagColor) {
		if o.PointColor, err = plots.ParseColor(c.String(flagColor)); err != nil {
			return err
		}
	}
	labels := c.StringSlice(flagLabels)

	out := c.String(flagOut)
	if pc.html(c, out) {
		return pc.savePage(out, func(w io.Writer) error {
			return plots.RenderCameras3D(w, poses, labels, o)
		})
	}
	p, err := plots.PlotAxisMany(poses, labels, o)
	if err != nil {
		return err
	}
	return pc.savePlot(p, out)
}

// DrawPoseAction is the corresponding Action for 'draw-pose'.
func DrawPoseAction(c *cli.Context) error {
	pc, err := newPoseutilsCLI(c)
	if err != nil {
		return err
	}
	return pc.drawPoseAction(c)
}

func (pc *poseutilsCLI) drawPoseAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("expected exactly one keypoints file")
	}
	joints, err := openpose.ReadJSON(c.Args().First())
	if err != nil {
		return err
	}

	o := openpose.DrawOptions{
		ShowLegend:    c.Bool(flagLegend),
		BoneWidth:     c.Float64(flagBoneWidth),
		MinConfidence: c.Float64(flagMinConfidence),
		Title:         c.String(flagTitle),
	}
	if c.Bool(flagAllBones) {
		o.Bones = openpose.Bones
	}

	out := c.String(flagOut)
	if imagePath := c.String(flagImage); imagePath != "" {
		img, err := openpose.LoadImage(imagePath)
		if err != nil {
			return err
		}
		if err := openpose.SaveImage(out, img, joints, o); err != nil {
			return err
		}
		pc.logger.Infow("saved image", "path", out)
		return nil
	}
	p, err := openpose.DrawPose(joints, o)
	if err != nil {
		return err
	}
	return pc.savePlot(p, out)
}
