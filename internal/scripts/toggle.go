package scripts

import (
	"fmt"
	"html"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/secrglue/internal/page"
)

const (
	LabelShowAll    = "Show All"
	LabelShowActive = "Show Active"
)

// TableToggle adds a button that flips a table between showing every row
// and only rows carrying Marker. The button's value attribute is the state.
type TableToggle struct {
	// Requires lists selectors that must all be present for Init to run.
	Requires   []string
	ButtonList string
	ButtonID   string
	Table      string
	Marker     string
}

var (
	AreaTableToggle = TableToggle{
		Requires:   []string{"#areas-button-list"},
		ButtonList: "#areas-button-list",
		ButtonID:   "areas-list-toggle",
		Table:      "#areas-list-table",
		Marker:     "active",
	}

	// The proceedings button goes into #proceedings-meeting-buttons even
	// though the page is detected by #proceedings-button-list.
	ProceedingsTableToggle = TableToggle{
		Requires:   []string{"#proceedings-button-list", "table.secretariat"},
		ButtonList: "#proceedings-meeting-buttons",
		ButtonID:   "proceedings-list-toggle",
		Table:      "#proceedings-list-table",
		Marker:     "open",
	}
)

// Init installs the button, hides unmarked rows and restripes. It reports
// false, doing nothing, when the page lacks a required element.
func (tt TableToggle) Init(p *page.Page) bool {
	for _, sel := range tt.Requires {
		if !p.Exists(sel) {
			return false
		}
	}

	p.Find(tt.ButtonList).AppendHtml(fmt.Sprintf(
		`<li><button type="button" id="%s" value="%s">%s</button></li>`,
		html.EscapeString(tt.ButtonID), LabelShowAll, LabelShowAll))
	p.On(tt.button(), "click", tt.onClick)

	p.Hide(tt.unmarkedRows(p))
	Restripe(p, tt.Table)
	return true
}

// Click presses the toggle button.
func (tt TableToggle) Click(p *page.Page) int {
	return p.Trigger(tt.button(), "click")
}

// Label returns the button's current label.
func (tt TableToggle) Label(p *page.Page) string {
	return p.Find(tt.button()).Text()
}

func (tt TableToggle) button() string { return "#" + tt.ButtonID }

func (tt TableToggle) unmarkedRows(p *page.Page) *goquery.Selection {
	return p.Find(tt.Table + " tbody tr:not(." + tt.Marker + ")")
}

func (tt TableToggle) onClick(p *page.Page, btn *goquery.Selection) {
	switch btn.AttrOr("value", "") {
	case LabelShowAll:
		p.Show(tt.unmarkedRows(p))
		btn.SetAttr("value", LabelShowActive)
		btn.SetText(LabelShowActive)
	case LabelShowActive:
		p.Hide(tt.unmarkedRows(p))
		btn.SetAttr("value", LabelShowAll)
		btn.SetText(LabelShowAll)
	}
	Restripe(p, tt.Table)
}
