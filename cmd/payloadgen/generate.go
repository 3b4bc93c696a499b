package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-payloadgen/internal/output"
	"github.com/goliatone/go-payloadgen/pkg/config"
	"github.com/goliatone/go-payloadgen/pkg/jsonschema"
	"github.com/goliatone/go-payloadgen/pkg/orchestrator"
	"github.com/goliatone/go-payloadgen/pkg/source"
)

const defaultOutput = "payload-types.ts"

func (a *app) generateTypesCommand() *cli.Command {
	return &cli.Command{
		Name:        "generate-types",
		Usage:       "Annotate the field forest and write the JSON Schema document",
		Description: "Reads a JSON or YAML field forest, or post-processes a base document produced by Payload, and writes the schema a Go type generator consumes. A .ts output path is written as .json.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Field forest file or URL (JSON or YAML)",
			},
			&cli.StringFlag{
				Name:  "schema",
				Usage: "Base JSON Schema document to post-process instead of building one",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path; " + config.OutputPathKey + " takes precedence",
				Value:   defaultOutput,
			},
			&cli.StringFlag{
				Name:  "overlay",
				Usage: "JSON or YAML overlay merged into the final document",
			},
			&cli.BoolFlag{
				Name:  "opaque-media",
				Usage: "Type uploads as the adapter Media type and drop the media collection",
			},
			&cli.BoolFlag{
				Name:  "relationship-meta",
				Usage: "Attach the payload metadata sidecar to every data field",
				Value: true,
			},
			&cli.StringFlag{
				Name:  "adapter-import",
				Usage: "Go import path of the adapter package",
			},
			&cli.StringFlag{
				Name:  "id-type",
				Usage: "JSON type of document ids (string or number)",
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Dotenv files to read settings from",
				Value: []string{".env"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for URL sources",
				Value: 30 * time.Second,
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Print the document instead of writing a file",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite the output file without asking",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log every pipeline stage",
			},
		},
		Action: a.generateTypes,
	}
}

func (a *app) generateTypes(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadFrom(a.fs, a.environ, cmd.StringSlice("env-file")...)
	if err != nil {
		return err
	}
	if cmd.IsSet("opaque-media") {
		cfg.UseOpaqueMediaType = cmd.Bool("opaque-media")
	}
	if cmd.IsSet("relationship-meta") {
		cfg.AssignRelationshipMetadata = cmd.Bool("relationship-meta")
	}
	if cmd.IsSet("adapter-import") {
		cfg.AdapterImport = cmd.String("adapter-import")
	}
	if cmd.IsSet("id-type") {
		cfg.IDType = cmd.String("id-type")
	}

	req, err := buildRequest(cmd.String("config"), cmd.String("schema"))
	if err != nil {
		return err
	}

	options := []orchestrator.Option{
		orchestrator.WithOptions(cfg.Options()),
		orchestrator.WithLogger(logger),
		orchestrator.WithFS(a.fs),
		orchestrator.WithHTTP(cmd.Duration("timeout")),
		orchestrator.WithBuilder(jsonschema.NewBuilder(jsonschema.WithIDType(cfg.IDType))),
	}
	if path := strings.TrimSpace(cmd.String("overlay")); path != "" {
		overlay, err := orchestrator.NewOverlayTransformerFromFS(a.fs, path)
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithTransformers(overlay))
	}
	gen := orchestrator.New(options...)

	doc, err := gen.Generate(ctx, req)
	if err != nil {
		return errors.Wrap(err, "generating types")
	}

	if cmd.Bool("stdout") {
		data, err := output.Encode(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, string(data))
		return err
	}

	path := cfg.ResolveOutputPath(cmd.String("output"))
	if !cmd.Bool("force") {
		exists, err := gen.Exists(path)
		if err != nil {
			return errors.Wrapf(err, "checking %s", path)
		}
		if exists {
			ok, err := a.confirm(ctx, fmt.Sprintf("%s already exists. Overwrite?", path))
			if err != nil {
				return err
			}
			if !ok {
				logger.Info("kept existing file", slog.String("path", path))
				return nil
			}
		}
	}

	return gen.Write(ctx, doc, path)
}

func buildRequest(configRaw, schemaRaw string) (orchestrator.Request, error) {
	var req orchestrator.Request
	if strings.TrimSpace(configRaw) != "" {
		src, err := source.Parse(configRaw)
		if err != nil {
			return req, errors.Wrap(err, "invalid --config")
		}
		req.Source = src
	}
	if strings.TrimSpace(schemaRaw) != "" {
		src, err := source.Parse(schemaRaw)
		if err != nil {
			return req, errors.Wrap(err, "invalid --schema")
		}
		req.DocumentSource = src
	}
	if req.Source == nil && req.DocumentSource == nil {
		return req, errors.New("one of --config or --schema is required")
	}
	return req, nil
}
