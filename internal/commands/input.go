package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/phroun/hiddencols"
	"github.com/phroun/hiddencols/internal/alignment"
)

// expandPaths resolves each argument as a doublestar glob. Arguments without
// glob syntax are kept as they are so that missing files are reported when
// they are opened.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// readAlignment loads a FASTA file.
func readAlignment(path, gapChars string) (*alignment.Alignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	a, err := alignment.ReadFASTA(f, gapChars)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// parseRanges parses hidden ranges written as "start-end" or a single
// column. Columns are 0-based and inclusive.
func parseRanges(args []string) ([]hiddencols.Region, error) {
	var ranges []hiddencols.Region
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			startText, endText, isRange := strings.Cut(part, "-")
			start, err := strconv.Atoi(startText)
			if err != nil {
				return nil, fmt.Errorf("invalid range %q: %w", part, err)
			}
			end := start
			if isRange {
				if end, err = strconv.Atoi(endText); err != nil {
					return nil, fmt.Errorf("invalid range %q: %w", part, err)
				}
			}
			ranges = append(ranges, hiddencols.Region{Start: start, End: end})
		}
	}
	return ranges, nil
}

// hiddenFor builds the hidden columns for a: the gap columns of sequence
// hideGapsOf (1-based, zero for none) and the given ranges.
func hiddenFor(a *alignment.Alignment, hideGapsOf int, ranges []hiddencols.Region, opts hiddencols.Options) (*hiddencols.HiddenColumns, error) {
	hc := hiddencols.NewWithOptions(opts)
	if hideGapsOf > 0 {
		if err := a.HideInsertionsOf(hideGapsOf-1, hc); err != nil {
			return nil, fmt.Errorf("hide gaps of sequence %d: %w", hideGapsOf, err)
		}
	}
	if err := hc.HideList(ranges); err != nil {
		return nil, err
	}
	return hc, nil
}
