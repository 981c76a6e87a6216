package cli

import (
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/pose-utils/poseutils/spatialmath"
)

// rayJSON is one entry of an intersect-rays input file. The file is JSON5 so
// that hand-written ray lists may carry comments.
type rayJSON struct {
	Start [3]float64 `json:"start"`
	End   [3]float64 `json:"end"`
}

func (r rayJSON) ray() spatialmath.Ray {
	return spatialmath.NewRay(
		r3.Vector{X: r.Start[0], Y: r.Start[1], Z: r.Start[2]},
		r3.Vector{X: r.End[0], Y: r.End[1], Z: r.End[2]},
	)
}

// IntersectAction is the corresponding Action for 'intersect'.
func IntersectAction(c *cli.Context) error {
	pc, err := newPoseutilsCLI(c)
	if err != nil {
		return err
	}
	return pc.intersectAction(c)
}

func (pc *poseutilsCLI) intersectAction(c *cli.Context) error {
	points, err := mapOver([]string{flagP1, flagP2, flagP3, flagP4}, func(name string) (r3.Vector, error) {
		p, err := parseVector(c.String(name))
		return p, errors.Wrapf(err, "--%s", name)
	})
	if err != nil {
		return err
	}

	eps := pc.cfg.Epsilon()
	if c.IsSet(flagEpsilon) {
		eps = c.Float64(flagEpsilon)
	}
	pc.logger.Debugw("intersecting lines", "points", points, "epsilon", eps)
	p, err := spatialmath.LineLineIntersectionTolerance(points[0], points[1], points[2], points[3], eps)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", formatVector(p))
	return nil
}

// IntersectRaysAction is the corresponding Action for 'intersect-rays'.
func IntersectRaysAction(c *cli.Context) error {
	pc, err := newPoseutilsCLI(c)
	if err != nil {
		return err
	}
	return pc.intersectRaysAction(c)
}

func (pc *poseutilsCLI) intersectRaysAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("expected exactly one rays file")
	}
	path := c.Args().First()
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var entries []rayJSON
	if err := json5.Unmarshal(data, &entries); err != nil {
		return errors.Wrapf(err, "reading %q", path)
	}
	rays := make([]spatialmath.Ray, 0, len(entries))
	for _, entry := range entries {
		rays = append(rays, entry.ray())
	}
	pc.logger.Debugw("read rays", "path", path, "rays", len(rays))

	p, err := spatialmath.IntersectRays(rays)
	if err != nil {
		return err
	}
	residual, err := spatialmath.SumSquaredRayDistances(p, rays)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "point: %s", formatVector(p))
	printf(c.App.Writer, "residual: %g", residual)
	return nil
}
