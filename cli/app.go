// Package cli contains the poseutils command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Global flags.
	flagConfig = "config"
	flagDebug  = "debug"

	flagOut    = "out"
	flagFormat = "format"
	flagTitle  = "title"
	flagHTML   = "html"

	flagP1      = "p1"
	flagP2      = "p2"
	flagP3      = "p3"
	flagP4      = "p4"
	flagEpsilon = "epsilon"

	flagSummary = "summary"
	flagJSON    = "json"
	flagBins    = "histogram"
	flagAxis    = "axis"

	flagLegends    = "legends"
	flagStart      = "start"
	flagEnd        = "end"
	flagLabels     = "labels"
	flagCameraSize = "camera-size"
	flagNormalize  = "normalize"
	flagColor      = "color"

	flagImage         = "image"
	flagLegend        = "legend"
	flagBoneWidth     = "bone-width"
	flagMinConfidence = "min-confidence"
	flagAllBones      = "all-bones"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagFormat,
		Usage: "trajectory file format: json, kitti or tum. Guessed from the file extension when unset",
	}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     flagOut,
		Aliases:  []string{"o"},
		Required: true,
		Usage:    "write the result to `FILE`",
	}
}

func titleFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagTitle,
		Usage: "plot title",
	}
}

func htmlFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  flagHTML,
		Usage: "write an interactive 3D HTML page instead of an image. Implied by a .html output",
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "poseutils",
		Usage:           "work with camera poses, trajectories and OpenPose skeletons",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				EnvVars: []string{"POSEUTILS_CONFIG"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				EnvVars: []string{"POSEUTILS_DEBUG"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "intersect",
				Usage: "intersect the line through p1 and p2 with the line through p3 and p4",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagP1, Required: true, Usage: "first point of the first line as `x,y,z`"},
					&cli.StringFlag{Name: flagP2, Required: true, Usage: "second point of the first line as `x,y,z`"},
					&cli.StringFlag{Name: flagP3, Required: true, Usage: "first point of the second line as `x,y,z`"},
					&cli.StringFlag{Name: flagP4, Required: true, Usage: "second point of the second line as `x,y,z`"},
					&cli.Float64Flag{Name: flagEpsilon, Usage: "tolerance for parallel or degenerate lines"},
				},
				Action: IntersectAction,
			},
			{
				Name:      "intersect-rays",
				Usage:     "find the point closest to a set of rays in the least squares sense",
				ArgsUsage: "<rays.json>",
				Action:    IntersectRaysAction,
			},
			{
				Name:      "errors",
				Usage:     "compare a predicted trajectory against the ground truth",
				ArgsUsage: "<truth> <predicted>",
				Flags: []cli.Flag{
					formatFlag(),
					&cli.BoolFlag{Name: flagSummary, Usage: "only print the summary"},
					&cli.BoolFlag{Name: flagJSON, Usage: "print the errors and summary as JSON"},
					&cli.IntFlag{Name: flagBins, Usage: "print histograms of the errors with this many `BINS`"},
				},
				Action: ErrorsAction,
			},
			{
				Name:      "flip",
				Usage:     "mirror every pose of a trajectory across one axis",
				ArgsUsage: "<trajectory>",
				Flags: []cli.Flag{
					formatFlag(),
					outFlag(),
					&cli.IntFlag{Name: flagAxis, Value: 2, Usage: "axis to flip: 0, 1 or 2"},
				},
				Action: FlipAction,
			},
			{
				Name:      "show",
				Usage:     "print the poses of a trajectory",
				ArgsUsage: "<trajectory>",
				Flags:     []cli.Flag{formatFlag()},
				Action:    ShowAction,
			},
			{
				Name:      "plot-trajectories",
				Usage:     "plot the camera centers of one or more trajectories",
				ArgsUsage: "<trajectory> [trajectory...]",
				Flags: []cli.Flag{
					formatFlag(),
					outFlag(),
					titleFlag(),
					htmlFlag(),
					&cli.StringSliceFlag{Name: flagLegends, Usage: "legend of each trajectory. Defaults to the file names"},
					&cli.BoolFlag{Name: flagStart, Usage: "mark the first pose of each trajectory"},
					&cli.BoolFlag{Name: flagEnd, Usage: "mark the last pose of each trajectory"},
				},
				Action: PlotTrajectoriesAction,
			},
			{
				Name:      "plot-cameras",
				Usage:     "plot every pose of a trajectory as a camera center and its axes",
				ArgsUsage: "<trajectory>",
				Flags: []cli.Flag{
					formatFlag(),
					outFlag(),
					titleFlag(),
					htmlFlag(),
					&cli.StringSliceFlag{Name: flagLabels, Usage: "label of each camera"},
					&cli.Float64Flag{Name: flagCameraSize, Usage: "length of the drawn camera axes"},
					&cli.BoolFlag{Name: flagNormalize, Usage: "scale every camera center to unit length"},
					&cli.StringFlag{Name: flagColor, Usage: "camera center color, by name or #rrggbb"},
				},
				Action: PlotCamerasAction,
			},
			{
				Name:      "draw-pose",
				Usage:     "draw an OpenPose skeleton on a plot or over its video frame",
				ArgsUsage: "<keypoints.json>",
				Flags: []cli.Flag{
					outFlag(),
					titleFlag(),
					&cli.StringFlag{Name: flagImage, Usage: "draw over the frame in `FILE` instead of a plot"},
					&cli.BoolFlag{Name: flagLegend, Usage: "name every joint"},
					&cli.Float64Flag{Name: flagBoneWidth, Value: 1, Usage: "stroke width of the bones"},
					&cli.Float64Flag{Name: flagMinConfidence, Usage: "hide bones with a joint detected below this confidence"},
					&cli.BoolFlag{Name: flagAllBones, Usage: "also draw the face bones"},
				},
				Action: DrawPoseAction,
			},
			{
				Name:  "config",
				Usage: "work with poseutils config files",
				Subcommands: []*cli.Command{
					{
						Name:      "validate",
						Usage:     "read and validate a config file",
						ArgsUsage: "<config.json>",
						Action:    ConfigValidateAction,
					},
					{
						Name:   "schema",
						Usage:  "print the JSON schema of the config file",
						Action: ConfigSchemaAction,
					},
				},
			},
		},
	}
}
