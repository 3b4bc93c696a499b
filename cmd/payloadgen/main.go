package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// app carries the process dependencies commands run against.
type app struct {
	fs      afero.Fs
	stdout  io.Writer
	stderr  io.Writer
	environ []string
	confirm confirmer
}

func main() {
	a := &app{
		fs:      afero.NewOsFs(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ(),
		confirm: surveyConfirm,
	}
	if err := a.command().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "payloadgen:", err)
		os.Exit(1)
	}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "payloadgen",
		Usage:     "Generate Go-ready JSON Schema from Payload CMS field definitions",
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Commands: []*cli.Command{
			a.generateTypesCommand(),
		},
	}
}
