package scripts

import (
	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/page"
)

// Bindings holds the behaviours Ready installed. Nil fields were not
// applicable to the page.
type Bindings struct {
	Focused           string
	AreaToggle        *TableToggle
	ProceedingsToggle *TableToggle
	Autocomplete      *NameAutocomplete
	Dropdowns         []DependentDropdown
	Upload            *UploadHelp
	Slides            *SlideSorter
	CurrentTab        bool
}

// Ready wires every behaviour that applies to p, as the page would on
// document ready.
func Ready(p *page.Page) *Bindings {
	b := &Bindings{}

	b.Focused = SetInitialFocus(p, DefaultFocusRules)

	if tt := AreaTableToggle; tt.Init(p) {
		b.AreaToggle = &tt
	}

	if ac := NewNameAutocomplete(); ac.Bind(p) {
		b.Autocomplete = ac
	}

	b.CurrentTab = StyleCurrentTab(p)

	for _, d := range []DependentDropdown{AddFormAreaDirectors, EditFormAreaDirectors} {
		if d.Bind(p) > 0 {
			b.Dropdowns = append(b.Dropdowns, d)
		}
	}

	if tt := ProceedingsTableToggle; tt.Init(p) {
		b.ProceedingsToggle = &tt
	}

	if p.Exists("#proceedings-upload-table") {
		u := ProceedingsUploadHelp
		u.Bind(p)
		b.Upload = &u
		s := ProceedingsSlideSorter
		b.Slides = &s
	}

	p.Logger().Debug("page scripts ready",
		logging.Field{Key: "focus", Value: b.Focused},
		logging.Field{Key: "dropdowns", Value: len(b.Dropdowns)})
	return b
}
