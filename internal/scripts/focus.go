package scripts

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/secrglue/internal/page"
)

// FocusRule focuses Target when the page contains When.
type FocusRule struct {
	When   string
	Target string
}

// DefaultFocusRules is checked in order; the first rule whose form is on the
// page decides focus even when its target is missing.
var DefaultFocusRules = []FocusRule{
	{When: "form[id^=group-role-assignment-form]", Target: "#id_role_type"},
	{When: "form[id=draft-search-form]", Target: "#id_filename"},
	{When: "form[id=drafts-add-form]", Target: "#id_title"},
	{When: "form[id=proceedings-add-form]", Target: "#id_start_date"},
	{When: "form[id=proceedings-upload-form]", Target: "#id_group_name"},
	{When: "form[id=session-request-form]", Target: "#id_num_session"},
	{When: ".rooms-times-nav", Target: "li.selected a"},
}

// SetInitialFocus applies rules and falls back to the first visible,
// enabled text input. It returns the selector that was used, or "" when
// no rule matched and no fallback input exists. A matched rule whose
// target is absent still ends the search.
func SetInitialFocus(p *page.Page, rules []FocusRule) string {
	for _, r := range rules {
		if p.Exists(r.When) {
			p.Focus(p.Find(r.Target))
			return r.Target
		}
	}

	first := p.Visible(p.Find("input")).FilterFunction(func(_ int, in *goquery.Selection) bool {
		typ, ok := in.Attr("type")
		return (!ok || strings.EqualFold(typ, "text")) && p.IsEnabled(in)
	}).First()
	if first.Length() == 0 {
		return ""
	}
	p.Focus(first)
	return "input:text"
}
