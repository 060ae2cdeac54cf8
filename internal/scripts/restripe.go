// Package scripts holds the secretariat page behaviours: table toggles,
// restriping, dependent dropdowns, people autocomplete, focus on load,
// upload help and slide reordering. Each one only talks to a page.Page.
package scripts

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/secrglue/internal/page"
)

const (
	firstRowClass  = "row1"
	secondRowClass = "row2"
)

// Restripe reassigns row1/row2 to the visible body rows of table so the
// stripes stay contiguous after rows are hidden or moved.
func Restripe(p *page.Page, table string) {
	rows := p.Visible(p.Find(table + " tbody tr"))
	rows.Each(func(i int, row *goquery.Selection) {
		row.RemoveClass(firstRowClass, secondRowClass)
		if i%2 == 0 {
			row.AddClass(firstRowClass)
		} else {
			row.AddClass(secondRowClass)
		}
	})
}
