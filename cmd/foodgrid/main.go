package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/foodgrid"
	"github.com/bodgit/foodgrid/grid"
	"github.com/bodgit/foodgrid/manifest"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}
	return logger
}

func config(c *cli.Context) (foodgrid.Config, error) {
	cfg := foodgrid.DefaultConfig()
	cfg.InputDir = c.String("input")
	cfg.GridDir = c.String("foods")
	cfg.ImageDir = c.String("png")

	cfg.Manifest = c.String("manifest")
	if cfg.Manifest == "" {
		cfg.Manifest = filepath.Join(cfg.GridDir, manifest.Filename)
	}

	p, err := grid.ParsePalette(c.StringSlice("palette")...)
	if err != nil {
		return cfg, err
	}
	cfg.Palette = p

	return cfg, nil
}

// newConverter builds a converter from the global flags. The returned
// function releases the ledger, if one was opened.
func newConverter(c *cli.Context) (*foodgrid.Converter, func(), error) {
	cfg, err := config(c)
	if err != nil {
		return nil, nil, err
	}

	var ledger *foodgrid.Ledger
	closer := func() {}
	if db := c.String("db"); db != "" {
		if ledger, err = foodgrid.NewLedger(db); err != nil {
			return nil, nil, err
		}
		closer = func() { ledger.Close() }
	}

	return foodgrid.New(cfg, ledger, newLogger(c)), closer, nil
}

func printFailures(w io.Writer, s *foodgrid.Summary) {
	for _, r := range s.Results {
		if r.Outcome == foodgrid.Failed {
			fmt.Fprintf(w, "%s: %v\n", r.Source, r.Err)
		}
	}
}

// usage prints the help for the current command and fails with exit code 1
func usage(c *cli.Context) error {
	if err := cli.ShowSubcommandHelp(c); err != nil {
		return err
	}
	return cli.Exit("", 1)
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "foodgrid"
	app.Usage = "Four color image to grid conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "input",
			Value: foodgrid.DefaultConfig().InputDir,
			Usage: "directory of images to convert",
		},
		&cli.StringFlag{
			Name:  "foods",
			Value: foodgrid.DefaultConfig().GridDir,
			Usage: "directory of grid files",
		},
		&cli.StringFlag{
			Name:  "png",
			Value: foodgrid.DefaultConfig().ImageDir,
			Usage: "directory of decoded images",
		},
		&cli.StringFlag{
			Name:  "manifest",
			Usage: "path to manifest (default: FOODS/" + manifest.Filename + ")",
		},
		&cli.StringSliceFlag{
			Name:  "palette",
			Value: cli.NewStringSlice(grid.DefaultPalette().Hex()...),
			Usage: "palette colors in label order",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "path to conversion history database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a single image to a grid",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return usage(c)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				file := c.Args().First()
				dst, err := conv.Convert(file)
				if err != nil {
					if errors.Is(err, foodgrid.ErrMissingInput) {
						return cli.Exit(fmt.Sprintf("File not found: %s", file), 1)
					}
					return cli.Exit(err, 1)
				}
				fmt.Fprintf(c.App.Writer, "Saved grid -> %s\n", dst)

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Convert every new image in the input directory",
			Description: "",
			Action: func(c *cli.Context) error {
				if c.NArg() != 0 {
					return usage(c)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				s, err := conv.Batch()
				if s != nil {
					printFailures(c.App.ErrWriter, s)
				}
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Fprintln(c.App.Writer, s)

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Convert grids back to images",
			Description: "With no arguments the built-in list of foods is decoded.",
			ArgsUsage:   "[NAME...]",
			Action: func(c *cli.Context) error {
				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				names := c.Args().Slice()
				if len(names) == 0 {
					names = foodgrid.DefaultFoods
				}

				s := conv.DecodeAll(names)
				for _, r := range s.Results {
					switch {
					case r.Err == nil:
						fmt.Fprintf(c.App.Writer, "Converted %s -> %s\n", r.Source, r.Output)
					case errors.Is(r.Err, foodgrid.ErrMissingInput):
						fmt.Fprintf(c.App.ErrWriter, "%s not found\n", r.Source)
					default:
						fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", r.Source, r.Err)
					}
				}
				fmt.Fprintln(c.App.Writer, s)

				return nil
			},
		},
		{
			Name:        "palette",
			Usage:       "Suggest a palette from an image",
			Description: "Prints colors suitable for the --palette flag.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "method",
					Value: grid.MedianCut.String(),
					Usage: "extraction method (mediancut, dominant, kmeans)",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return usage(c)
				}

				method, err := grid.ParseMethod(c.String("method"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				p, err := foodgrid.SuggestPalette(c.Args().First(), method)
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Fprintln(c.App.Writer, strings.Join(p.Hex(), ","))

				return nil
			},
		},
		{
			Name:        "history",
			Usage:       "List recorded conversions",
			Description: "Requires the --db flag.",
			Action: func(c *cli.Context) error {
				db := c.String("db")
				if db == "" {
					return cli.Exit("history requires --db", 1)
				}

				ledger, err := foodgrid.NewLedger(db)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer ledger.Close()

				entries, err := ledger.History()
				if err != nil {
					return cli.Exit(err, 1)
				}
				for _, e := range entries {
					fmt.Fprintf(c.App.Writer, "%s %s %s\n", e.Time.Format("2006-01-02 15:04:05"), e.SHA1, e.Name)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
