package cli

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

// CLIArgs are the command-line arguments for one page session.
type CLIArgs struct {
	// Target is the secretariat page URL to load.
	Target string

	// Backend names the webclient backend; empty means the config default.
	Backend string

	// Headful shows the browser window when Backend is chromedp.
	Headful bool

	// Toggle presses every table toggle once after ready.
	Toggle bool

	// Search feeds a term to the people autocomplete.
	Search string

	// Select picks an autocomplete label, loading that person's emails.
	Select string

	// Area changes the primary area select to this value.
	Area string

	// Order is a reordered list of slide row ids; Move is the dragged row.
	Order []string
	Move  string

	// Trace prints the document changes the scripts made.
	Trace bool

	// Timeout overrides the run timeout; 0 means "use config default".
	Timeout time.Duration

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("secrglue", flag.ContinueOnError)
	var (
		target  = fs.String("target", "", "Secretariat page URL to load (required)")
		backend = fs.String("backend", "", "Page backend: nethttp|chromedp")
		headful = fs.Bool("headful", false, "Show the browser window (chromedp only)")
		toggle  = fs.Bool("toggle", false, "Press the table toggle buttons once")
		search  = fs.String("search", "", "People search term for the autocomplete field")
		sel     = fs.String("select", "", "Autocomplete label to select, e.g. \"Jane Doe (100)\"")
		area    = fs.String("area", "", "Value to choose in the primary area select")
		order   = fs.String("order", "", "Comma separated slide row ids in their new order")
		move    = fs.String("move", "", "Row id of the dragged slide (defaults to the first in -order)")
		trace   = fs.Bool("trace", false, "Print document changes made by the page scripts")
		timeout = fs.Duration("timeout", 0, "Run timeout (0=use default)")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if strings.TrimSpace(*target) == "" {
		return nil, fmt.Errorf("missing required -target argument")
	}
	if *backend != "" && *backend != "nethttp" && *backend != "chromedp" {
		return nil, fmt.Errorf("unknown -backend %q", *backend)
	}
	if *timeout < 0 {
		return nil, fmt.Errorf("-timeout must not be negative")
	}

	var ids []string
	for _, id := range strings.Split(*order, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	moved := strings.TrimSpace(*move)
	if moved == "" && len(ids) > 0 {
		moved = ids[0]
	}
	if moved != "" && len(ids) == 0 {
		return nil, fmt.Errorf("-move needs -order")
	}
	if moved != "" && !slices.Contains(ids, moved) {
		return nil, fmt.Errorf("-move %q is not listed in -order", moved)
	}

	return &CLIArgs{
		Target:  *target,
		Backend: *backend,
		Headful: *headful,
		Toggle:  *toggle,
		Search:  *search,
		Select:  *sel,
		Area:    *area,
		Order:   ids,
		Move:    moved,
		Trace:   *trace,
		Timeout: *timeout,
		RawArgs: args,
	}, nil
}
