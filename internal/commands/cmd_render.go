package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/phroun/hiddencols"
	"github.com/phroun/hiddencols/internal/logutils"
	"github.com/phroun/hiddencols/internal/render"
	"github.com/urfave/cli/v3"
)

type RenderCmd struct {
	flags *Flags
	out   io.Writer

	// flags
	hide       []string
	hideGapsOf int
	width      int
	plain      bool
	noRuler    bool
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags, out: os.Stdout}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Print alignments with hidden columns collapsed",
		UsageText: "hidecols render [options] <file|glob>...",
		Description: `Reads FASTA alignments and prints them with hidden columns replaced by a
marker. Arguments may be doublestar globs such as 'data/**/*.fa'.

Examples:
  hidecols render --hide 10-19 aln.fa
  hidecols render --hide-gaps-of 1 --width 60 'msa/**/*.fasta'`,
		Flags: append(hideFlags(&cmd.hide, &cmd.hideGapsOf),
			&cli.IntFlag{
				Name:        "width",
				Aliases:     []string{"w"},
				Usage:       "visible columns per block (0 uses the config or terminal width)",
				Destination: &cmd.width,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "disable colors",
				Sources:     cli.EnvVars("HIDECOLS_PLAIN"),
				Destination: &cmd.plain,
			},
			&cli.BoolFlag{
				Name:        "no-ruler",
				Usage:       "omit the column ruler",
				Destination: &cmd.noRuler,
			},
		),
		Action: cmd.run,
	})

	return app
}

// hideFlags returns the flags shared by the commands that hide columns.
func hideFlags(hide *[]string, hideGapsOf *int) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "hide",
			Usage:       "0-based column ranges to hide, e.g. 3-5,9 (repeatable)",
			Destination: hide,
		},
		&cli.IntFlag{
			Name:        "hide-gaps-of",
			Usage:       "hide the gap columns of the n-th sequence (1-based)",
			Sources:     cli.EnvVars("HIDECOLS_HIDE_GAPS_OF"),
			Destination: hideGapsOf,
		},
	}
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("no input files. Run 'hidecols render --help' for usage")
	}

	cfg := cmd.flags.config()
	hideGapsOf := cmd.hideGapsOf
	if !c.IsSet("hide-gaps-of") {
		hideGapsOf = cfg.HideGapsOf
	}

	ranges, err := parseRanges(cmd.hide)
	if err != nil {
		return err
	}

	paths, err := expandPaths(c.Args().Slice())
	if err != nil {
		return err
	}

	opts := render.FromConfig(cfg.Render)
	opts.Plain = opts.Plain || cmd.plain
	opts.ShowRuler = opts.ShowRuler && !cmd.noRuler
	if cmd.width > 0 {
		opts.Width = cmd.width
	}

	log := logutils.Component(cmd.flags.Logger, "render")
	engineLog := cmd.flags.Logger

	for i, path := range paths {
		a, err := readAlignment(path, cfg.GapChars)
		if err != nil {
			return err
		}
		hc, err := hiddenFor(a, hideGapsOf, ranges, hiddencols.Options{Logger: &engineLog})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		blockOpts := opts
		if blockOpts.Width <= 0 {
			blockOpts.Width = max(render.TerminalWidth(0)-render.NameWidth(a)-hc.NumberOfRegions()-1, 0)
		}

		log.Debug().
			Str("path", path).
			Int("sequences", a.Height()).
			Int("width", a.Width()).
			Int("hidden", hc.Size()).
			Msg("render alignment")

		if len(paths) > 1 {
			if i > 0 {
				fmt.Fprintln(cmd.out)
			}
			fmt.Fprintf(cmd.out, "==> %s <==\n", path)
		}
		if err := render.New(blockOpts).Render(cmd.out, a, hc); err != nil {
			return err
		}
	}
	return nil
}
