package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/raysh454/secrglue/internal/cli"
	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/page"
	"github.com/raysh454/secrglue/internal/scripts"
	"github.com/raysh454/secrglue/internal/webclient"
)

// Application is the global runtime state container.
// It holds config, parsed CLI args and the logger. Pass Application into
// modules that need access to the global state rather than using
// package-level variables.
type Application struct {
	Config *Config
	Args   *cli.CLIArgs
	Logger logging.Logger

	// Out receives the run report.
	Out io.Writer
}

// Report is what a run prints: where focus landed, what the autocomplete
// offered and, with -trace, what changed.
type Report struct {
	URL         string               `json:"url"`
	Focus       string               `json:"focus,omitempty"`
	Suggestions []scripts.Suggestion `json:"suggestions,omitempty"`
	Toggles     map[string]string    `json:"toggles,omitempty"`
	Changes     []page.Change        `json:"changes,omitempty"`
	Bound       map[string]any       `json:"bound"`
}

// NewApplication constructs an Application from the provided parts.
// CLI overrides are applied to a copy of cfg.
func NewApplication(cfg *Config, args *cli.CLIArgs, logger logging.Logger, out io.Writer) *Application {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	merged := *cfg
	if args != nil {
		if args.Backend != "" {
			merged.WebClient.Client = webclient.Client(args.Backend)
		}
		if args.Headful {
			merged.WebClient.Headful = true
		}
		if args.Timeout > 0 {
			merged.Timeout = args.Timeout
		}
	}
	if out == nil {
		out = io.Discard
	}
	return &Application{
		Config: &merged,
		Args:   args,
		Logger: logging.OrNop(logger),
		Out:    out,
	}
}

// Run loads the target page, performs the interactions the arguments ask
// for and writes a JSON report to Out.
func (a *Application) Run(ctx context.Context) error {
	if a == nil || a.Args == nil {
		return errors.New("application has no arguments")
	}
	if a.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancel()
	}

	a.Logger.Info("application starting", logging.Field{Key: "target", Value: a.Args.Target})

	s, err := Open(ctx, a.Config, a.Args.Target, a.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	report := Report{
		URL:   s.Location().String(),
		Focus: s.Scripts.Focused,
		Bound: bound(s.Scripts),
	}

	if err := a.interact(s, &report); err != nil {
		return err
	}
	s.Flush()

	if a.Args.Trace {
		report.Changes = s.Changes()
	}

	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return ctx.Err()
}

func (a *Application) interact(s *Session, report *Report) error {
	p, b := s.Page, s.Scripts

	if a.Args.Toggle {
		report.Toggles = map[string]string{}
		for _, tt := range []*scripts.TableToggle{b.AreaToggle, b.ProceedingsToggle} {
			if tt == nil {
				continue
			}
			tt.Click(p)
			report.Toggles[tt.ButtonID] = tt.Label(p)
		}
	}

	if a.Args.Area != "" {
		if len(b.Dropdowns) == 0 {
			return fmt.Errorf("-area: page has no area select")
		}
		for _, d := range b.Dropdowns {
			p.SetVal(p.Find(d.Primary), a.Args.Area)
			p.Trigger(d.Primary, "change")
		}
	}

	if a.Args.Search != "" || a.Args.Select != "" {
		if b.Autocomplete == nil {
			return fmt.Errorf("-search/-select: page has no name autocomplete field")
		}
	}
	if a.Args.Search != "" {
		if !b.Autocomplete.Search(p, a.Args.Search, nil) {
			a.Logger.Warn("search term too short", logging.Field{Key: "term", Value: a.Args.Search})
		}
		s.Flush()
		report.Suggestions = b.Autocomplete.Suggestions()
	}
	if a.Args.Select != "" {
		if !b.Autocomplete.Select(p, a.Args.Select) {
			a.Logger.Warn("label carries no person id", logging.Field{Key: "label", Value: a.Args.Select})
		}
	}

	if len(a.Args.Order) > 0 {
		if b.Slides == nil {
			return fmt.Errorf("-order: page has no sortable slides")
		}
		if !b.Slides.Reorder(p, a.Args.Order, a.Args.Move) {
			return fmt.Errorf("-move: no slide row %q", a.Args.Move)
		}
	}
	return nil
}

func bound(b *scripts.Bindings) map[string]any {
	out := map[string]any{
		"area_toggle":        b.AreaToggle != nil,
		"proceedings_toggle": b.ProceedingsToggle != nil,
		"autocomplete":       b.Autocomplete != nil,
		"upload_help":        b.Upload != nil,
		"slides":             b.Slides != nil,
		"current_tab":        b.CurrentTab,
	}
	var dropdowns []string
	for _, d := range b.Dropdowns {
		dropdowns = append(dropdowns, d.Primary)
	}
	if dropdowns != nil {
		out["dropdowns"] = dropdowns
	}
	return out
}
