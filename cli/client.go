package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/pose-utils/poseutils/config"
	"github.com/pose-utils/poseutils/logging"
	"github.com/pose-utils/poseutils/trajectory"
	putils "github.com/pose-utils/poseutils/utils"
)

// poseutilsCLI holds what every command needs: the loaded configuration and a logger.
type poseutilsCLI struct {
	cfg    *config.Config
	logger logging.Logger
}

func newPoseutilsCLI(c *cli.Context) (*poseutilsCLI, error) {
	cfg := &config.Config{}
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Read(path); err != nil {
			return nil, err
		}
	}

	level := logging.INFO
	if cfg.LogLevel != nil {
		level = *cfg.LogLevel
	}
	if c.Bool(flagDebug) {
		level = logging.DEBUG
	}
	logger := logging.NewWriterLogger("poseutils", level, c.App.ErrWriter)
	if cfg.ConfigFilePath != "" {
		logger.Debugw("loaded config", "path", cfg.ConfigFilePath)
	}
	return &poseutilsCLI{cfg: cfg, logger: logger}, nil
}

// format returns the trajectory format from the flag, then the config. Empty means guess from
// the file name.
func (pc *poseutilsCLI) format(c *cli.Context) (trajectory.Format, error) {
	if c.IsSet(flagFormat) {
		return trajectory.ParseFormat(c.String(flagFormat))
	}
	return pc.cfg.TrajectoryFormat, nil
}

func (pc *poseutilsCLI) readTrajectory(path string, f trajectory.Format) (trajectory.Trajectory, error) {
	tr, err := trajectory.ReadFile(path, f)
	if err != nil {
		return nil, err
	}
	pc.logger.Debugw("read trajectory", "path", path, "poses", len(tr))
	return tr, nil
}

// html reports whether a plot should be an interactive page.
func (pc *poseutilsCLI) html(c *cli.Context, out string) bool {
	if c.IsSet(flagHTML) {
		return c.Bool(flagHTML)
	}
	return pc.cfg.Plot.HTML || putils.Ext(out) == "html"
}
