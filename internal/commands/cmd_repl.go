package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/phroun/hiddencols"
	"github.com/phroun/hiddencols/internal/logutils"
	"github.com/phroun/hiddencols/internal/repl"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type ReplCmd struct {
	flags *Flags
	in    io.Reader
	out   io.Writer

	// flags
	hide []string
}

// NewReplCmd creates a new repl command
func NewReplCmd(flags *Flags) *ReplCmd {
	return &ReplCmd{flags: flags, in: os.Stdin, out: os.Stdout}
}

// Register adds the repl command to the application
func (cmd *ReplCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "repl",
		Usage:     "Experiment with hidden columns interactively",
		UsageText: "hidecols repl [--hide ranges]",
		Description: `Starts a shell over an empty set of hidden columns and a column selection.
Commands are read from standard input, so scripts can be piped in.
Type 'help' at the prompt for the list of commands.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "hide",
				Usage:       "0-based column ranges to hide before the session starts",
				Destination: &cmd.hide,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReplCmd) run(ctx context.Context, c *cli.Command) error {
	ranges, err := parseRanges(cmd.hide)
	if err != nil {
		return err
	}

	engineLog := cmd.flags.Logger
	hc := hiddencols.NewWithOptions(hiddencols.Options{Logger: &engineLog})
	if err := hc.HideList(ranges); err != nil {
		return err
	}

	r := repl.New(hc, nil, cmd.in, cmd.out, logutils.Component(cmd.flags.Logger, "repl"))
	if f, ok := cmd.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.Prompt = true
		fmt.Fprintln(cmd.out, "hidecols REPL - type 'help' for available commands, 'quit' to exit")
	}
	return r.Run()
}
