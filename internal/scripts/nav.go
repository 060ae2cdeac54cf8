package scripts

import (
	"regexp"
	"strings"

	"github.com/raysh454/secrglue/internal/page"
)

// StyleCurrentTab marks the nav tab for the current section. The section is
// the second-to-last path segment, so /secr/areas/ selects #nav-areas.
func StyleCurrentTab(p *page.Page) bool {
	if !p.Exists("ul#list-nav") {
		return false
	}
	segs := strings.Split(p.Location().Path, "/")
	if len(segs) < 2 {
		return false
	}
	name := segs[len(segs)-2]
	if name == "" {
		return false
	}
	p.Find("#nav-" + name + " a").AddClass("current")
	return true
}

// GetParam returns the raw value of name in href's query, or "".
func GetParam(href, name string) string {
	re, err := regexp.Compile(`[?&]` + regexp.QuoteMeta(name) + `=([^&#]*)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[1]
}
