package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/phroun/hiddencols"
	"github.com/urfave/cli/v3"
)

type RegionsCmd struct {
	flags *Flags
	out   io.Writer

	// flags
	sequence int
}

// NewRegionsCmd creates a new regions command
func NewRegionsCmd(flags *Flags) *RegionsCmd {
	return &RegionsCmd{flags: flags, out: os.Stdout}
}

// Register adds the regions command to the application
func (cmd *RegionsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "regions",
		Usage:     "Print the hidden regions that hiding gaps would produce",
		UsageText: "hidecols regions [--seq n] <file|glob>...",
		Description: `For every sequence (or only the n-th with --seq) prints the column ranges
that hiding its gaps hides, with the number of hidden and visible columns.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "seq",
				Usage:       "only report the n-th sequence (1-based)",
				Destination: &cmd.sequence,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RegionsCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("no input files. Run 'hidecols regions --help' for usage")
	}

	paths, err := expandPaths(c.Args().Slice())
	if err != nil {
		return err
	}

	cfg := cmd.flags.config()
	w := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSEQUENCE\tHIDDEN\tVISIBLE\tREGIONS")

	for _, path := range paths {
		a, err := readAlignment(path, cfg.GapChars)
		if err != nil {
			return err
		}

		first, last := 0, a.Height()-1
		if cmd.sequence > 0 {
			if cmd.sequence > a.Height() {
				return fmt.Errorf("%s: sequence %d of %d", path, cmd.sequence, a.Height())
			}
			first, last = cmd.sequence-1, cmd.sequence-1
		}

		for i := first; i <= last; i++ {
			hc := hiddencols.New()
			if err := a.HideInsertionsOf(i, hc); err != nil {
				return err
			}
			regions := hc.RegionsToString(",", "-")
			if regions == "" {
				regions = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				path, a.Sequences[i].Name, hc.Size(), a.Width()-hc.Size(), regions)
		}
	}
	return w.Flush()
}
