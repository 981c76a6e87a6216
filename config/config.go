// Package config defines the configuration file of the poseutils tool.
package config

import (
	"github.com/pkg/errors"
	"go.viam.com/utils"
	"gonum.org/v1/plot/vg"

	"github.com/pose-utils/poseutils/logging"
	"github.com/pose-utils/poseutils/plots"
	"github.com/pose-utils/poseutils/spatialmath"
	"github.com/pose-utils/poseutils/trajectory"
)

const (
	defaultPlotInches = 6
	maxElevation      = 90
)

// Config is the top level poseutils configuration. Every field is optional.
type Config struct {
	ConfigFilePath string `json:"-"`

	LineEpsilon      float64           `json:"line_epsilon,omitempty"`
	TrajectoryFormat trajectory.Format `json:"trajectory_format,omitempty"`
	LogLevel         *logging.Level    `json:"log_level,omitempty"`
	Plot             PlotConfig        `json:"plot"`
}

// PlotConfig holds the defaults of the plotting commands.
type PlotConfig struct {
	WidthInches          float64  `json:"width_inches,omitempty"`
	HeightInches         float64  `json:"height_inches,omitempty"`
	Azimuth              *float64 `json:"azimuth,omitempty"`
	Elevation            *float64 `json:"elevation,omitempty"`
	CameraSize           float64  `json:"camera_size,omitempty"`
	NormalizeTranslation bool     `json:"normalize_translation,omitempty"`
	PointColor           string   `json:"point_color,omitempty"`
	PlotStart            bool     `json:"plot_start,omitempty"`
	PlotEnd              bool     `json:"plot_end,omitempty"`
	// HTML renders interactive 3D pages instead of images.
	HTML bool `json:"html,omitempty"`
}

// Validate returns an error if the config is invalid. The trajectory format is normalized.
func (c *Config) Validate(path string) error {
	if c.LineEpsilon < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("line_epsilon must be non-negative, got %v", c.LineEpsilon))
	}
	if c.TrajectoryFormat != "" {
		format, err := trajectory.ParseFormat(string(c.TrajectoryFormat))
		if err != nil {
			return utils.NewConfigValidationError(path, err)
		}
		c.TrajectoryFormat = format
	}
	return c.Plot.Validate(path + ".plot")
}

// Validate returns an error if the plot config is invalid.
func (pc *PlotConfig) Validate(path string) error {
	if pc.WidthInches < 0 || pc.HeightInches < 0 {
		return utils.NewConfigValidationError(path, errors.New("plot size must be non-negative"))
	}
	if pc.CameraSize < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("camera_size must be non-negative, got %v", pc.CameraSize))
	}
	if pc.Elevation != nil {
		if pc.Azimuth == nil {
			return utils.NewConfigValidationFieldRequiredError(path, "azimuth")
		}
		if *pc.Elevation < -maxElevation || *pc.Elevation > maxElevation {
			return utils.NewConfigValidationError(path, errors.Errorf("elevation must be within [-90, 90], got %v", *pc.Elevation))
		}
	}
	if pc.PointColor != "" {
		if _, err := plots.ParseColor(pc.PointColor); err != nil {
			return utils.NewConfigValidationError(path, err)
		}
	}
	return nil
}

// Epsilon returns the line intersection tolerance.
func (c *Config) Epsilon() float64 {
	if c.LineEpsilon == 0 {
		return spatialmath.DefaultLineEpsilon
	}
	return c.LineEpsilon
}

// Size returns the plot width and height.
func (pc *PlotConfig) Size() (width, height vg.Length) {
	width, height = defaultPlotInches*vg.Inch, defaultPlotInches*vg.Inch
	if pc.WidthInches > 0 {
		width = vg.Length(pc.WidthInches) * vg.Inch
	}
	if pc.HeightInches > 0 {
		height = vg.Length(pc.HeightInches) * vg.Inch
	}
	return width, height
}

// View returns the configured camera, or nil for the default one.
func (pc *PlotConfig) View() *plots.View {
	if pc.Azimuth == nil {
		return nil
	}
	view := plots.DefaultView()
	view.Azimuth = *pc.Azimuth
	if pc.Elevation != nil {
		view.Elevation = *pc.Elevation
	}
	return &view
}

// TrajectoryOptions converts the config into trajectory plotting options.
func (pc *PlotConfig) TrajectoryOptions() plots.TrajectoryOptions {
	return plots.TrajectoryOptions{
		PlotStart: pc.PlotStart,
		PlotEnd:   pc.PlotEnd,
		View:      pc.View(),
	}
}

// AxisOptions converts the config into camera plotting options. The config must be valid.
func (pc *PlotConfig) AxisOptions() plots.AxisOptions {
	o := plots.AxisOptions{
		NormalizeTranslation: pc.NormalizeTranslation,
		CameraSize:           pc.CameraSize,
		View:                 pc.View(),
	}
	if pc.PointColor != "" {
		//nolint:errcheck
		o.PointColor, _ = plots.ParseColor(pc.PointColor)
	}
	return o
}
