// Package plots visualizes camera trajectories and camera poses in 3D.
//
// Static plots are drawn with gonum/plot by projecting the scene orthographically through a
// View, the same way an interactive 3D axes would show it from a fixed viewpoint. Interactive
// plots are rendered as standalone HTML pages with go-echarts.
package plots

import (
	"image/color"
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/plotter"

	"github.com/pose-utils/poseutils/utils"
)

// ErrLabelCount is returned when the number of labels does not match the number of plotted items.
var ErrLabelCount = errors.New("label count does not match item count")

// A View is the direction the scene is looked at from, in degrees. Azimuth rotates around the
// Z axis starting from +X; Elevation is the angle above the XY plane.
type View struct {
	Azimuth   float64 `json:"azimuth"`
	Elevation float64 `json:"elevation"`
}

// DefaultView matches the usual default of 3D plotting tools.
func DefaultView() View {
	return View{Azimuth: -60, Elevation: 30}
}

// basis returns the screen right and up directions in world coordinates.
func (v View) basis() (right, up r3.Vector) {
	az := utils.DegToRad(v.Azimuth)
	el := utils.DegToRad(v.Elevation)
	right = r3.Vector{X: -math.Sin(az), Y: math.Cos(az)}
	up = r3.Vector{X: -math.Cos(az) * math.Sin(el), Y: -math.Sin(az) * math.Sin(el), Z: math.Cos(el)}
	return right, up
}

// Project maps a world point to plot coordinates.
func (v View) Project(p r3.Vector) plotter.XY {
	right, up := v.basis()
	return plotter.XY{X: p.Dot(right), Y: p.Dot(up)}
}

// ProjectAll maps world points to plot coordinates.
func (v View) ProjectAll(points []r3.Vector) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i] = v.Project(p)
	}
	return xys
}

// ParseColor accepts an SVG color name ("black", "tomato") or a hex triplet ("#1f77b4").
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown color %q", s)
	}
	return c, nil
}

func hexColor(c color.Color) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cc.Hex()
}
