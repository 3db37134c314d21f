package main

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/asciidoc-go/adoc/adocconf"
	"github.com/asciidoc-go/adoc/ascii"
	"github.com/asciidoc-go/adoc/backend"
)

var debug bool

func process(c *cli.Context) error {
	inputFileName := "-"
	if c.Args().Present() {
		inputFileName = c.Args().First()
	}

	outputFileName := c.String("out-file")
	backendName := c.String("backend")
	debug = c.Bool("debug")

	var z *zap.Logger
	var err error
	if debug {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	sugar := z.Sugar()
	defer sugar.Sync()

	cfgPath := c.String("config")
	if cfgPath == "" {
		if _, err := os.Stat(".asciidocrc.yaml"); err == nil {
			cfgPath = ".asciidocrc.yaml"
		}
	}
	cfg, err := adocconf.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sugar.Infow("parsing", "input", inputFileName, "backend", backendName)

	doc, err := ascii.ParseFile(inputFileName)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputFileName, err)
	}
	doc.Attrs.Missing = cfg.MissingAttributePolicy()

	for _, d := range doc.Diagnostics {
		if d.Kind == ascii.KindWarning {
			sugar.Warnw("diagnostic", "msg", d.Error())
		} else {
			sugar.Errorw("diagnostic", "msg", d.Error())
		}
	}

	b, err := backend.ByName(backendName, backend.Options{
		CodeStyle:      cfg.CodeStyle(),
		DiagramBackend: cfg.DiagramBackend(),
		AssetsDir:      cfg.AssetsDir(),
	})
	if err != nil {
		return err
	}

	if len(outputFileName) == 0 {
		outputFileName = defaultOutputName(inputFileName, backendName)
	}

	var renderErr error
	if outputFileName == "-" {
		renderErr = b.Render(os.Stdout, doc)
	} else {
		f, err := os.Create(outputFileName)
		if err != nil {
			return err
		}
		defer f.Close()
		renderErr = b.Render(f, doc)
	}

	sugar.Infow("done", "backend", backendName, "out", outputFileName, "diagnostics", len(doc.Diagnostics), "err", renderErr)
	return renderErr
}

func defaultOutputName(inputFileName, backendName string) string {
	ext := map[string]string{"json": ".json", "docx": ".docx"}[backendName]
	if ext == "" {
		ext = ".html"
	}
	if inputFileName == "-" {
		return "out" + ext
	}
	if orig := path.Ext(inputFileName); orig != "" {
		return strings.TrimSuffix(inputFileName, orig) + ext
	}
	return inputFileName + ext
}

func main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
	app := &cli.App{
		Name:      "adoc",
		Version:   "v0.1.0",
		Compiled:  time.Now(),
		Usage:     "parse an AsciiDoc document and render it to HTML, JSON, or DOCX",
		UsageText: "adoc [options] FILE (use - for standard input)",
		Action:    process,
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out-file",
				Aliases: []string{"o"},
				Usage:   "write output to `FILE` (use - for stdout; default derives from the input name)",
			},
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"b"},
				Value:   "htmlbook",
				Usage:   "output backend: htmlbook, docx, json",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read tool configuration from `FILE` (default: .asciidocrc.yaml if present)",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode with verbose logging",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
