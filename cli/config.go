package cli

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/pose-utils/poseutils/config"
)

// ConfigValidateAction is the corresponding Action for 'config validate'.
func ConfigValidateAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("expected exactly one config file")
	}
	cfg, err := config.Read(c.Args().First())
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s is valid", cfg.ConfigFilePath)
	return nil
}

// ConfigSchemaAction is the corresponding Action for 'config schema'.
func ConfigSchemaAction(c *cli.Context) error {
	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonschema.Reflect(&config.Config{}))
}
