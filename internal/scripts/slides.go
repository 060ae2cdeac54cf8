package scripts

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/page"
)

// SlideSorter mirrors a drag-and-drop reorder of the slides table: rows are
// moved, the new position of the dragged slide is posted, stripes redone.
type SlideSorter struct {
	Table    string
	Endpoint string
}

var ProceedingsSlideSorter = SlideSorter{
	Table:    "#slides.sortable",
	Endpoint: "/secr/proceedings/ajax/order-slide/",
}

// Rows returns the ids of the table's body rows in document order.
func (s SlideSorter) Rows(p *page.Page) []string {
	var ids []string
	p.Find(s.Table + " tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if id, ok := tr.Attr("id"); ok {
			ids = append(ids, id)
		}
	})
	return ids
}

// Reorder moves the rows whose ids appear in order to the end of the body,
// in that order, then posts moved's index among the rows as they now stand.
// It returns false, posting nothing, when moved is not a row of the table
// or is missing from order.
func (s SlideSorter) Reorder(p *page.Page, order []string, moved string) bool {
	tbody := p.Find(s.Table + " tbody").First()
	row := func(id string) *goquery.Selection {
		return tbody.ChildrenFiltered("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
			return tr.AttrOr("id", "") == id
		})
	}

	movedRow := row(moved)
	if movedRow.Length() == 0 {
		p.Logger().Debug("reorder of unknown slide row", logging.Field{Key: "row", Value: moved})
		return false
	}
	if !slices.Contains(order, moved) {
		p.Logger().Debug("dragged slide row missing from order", logging.Field{Key: "row", Value: moved})
		return false
	}
	slideName := movedRow.Find("td.hidden").Text()

	for _, id := range order {
		if r := row(id); r.Length() > 0 {
			tbody.AppendSelection(r)
		}
	}
	index := slices.Index(s.Rows(p), moved)

	p.Post(s.Endpoint, url.Values{
		"slide_name": {slideName},
		"order":      {strconv.Itoa(index)},
	}, nil)
	Restripe(p, s.Table)
	return true
}
