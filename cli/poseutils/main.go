// Package main is the poseutils command itself.
package main

import (
	"log"
	"os"

	"github.com/pose-utils/poseutils/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
