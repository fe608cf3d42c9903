package commands

import (
	"context"
	"fmt"

	"github.com/phroun/hiddencols"
	"github.com/phroun/hiddencols/internal/logutils"
	"github.com/phroun/hiddencols/internal/render"
	"github.com/phroun/hiddencols/internal/viewer"
	"github.com/urfave/cli/v3"
)

type ViewCmd struct {
	flags *Flags

	// flags
	hide       []string
	hideGapsOf int
}

// NewViewCmd creates a new view command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Register adds the view command to the application
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Browse an alignment interactively",
		UsageText: "hidecols view [options] <file>",
		Description: `Opens a FASTA alignment in a terminal viewer where columns can be
selected, hidden and revealed. Press ? inside the viewer for key bindings.`,
		Flags:  hideFlags(&cmd.hide, &cmd.hideGapsOf),
		Action: cmd.run,
	})

	return app
}

func (cmd *ViewCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("view takes exactly one file. Run 'hidecols view --help' for usage")
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

	a, err := readAlignment(c.Args().First(), cfg.GapChars)
	if err != nil {
		return err
	}

	engineLog := cmd.flags.Logger
	hc, err := hiddenFor(a, hideGapsOf, ranges, hiddencols.Options{Logger: &engineLog})
	if err != nil {
		return err
	}

	return viewer.Run(a, hc, viewer.Options{
		Render:     render.FromConfig(cfg.Render),
		ScrollStep: cfg.Viewer.ScrollStep,
		Logger:     logutils.Component(cmd.flags.Logger, "viewer"),
	})
}
