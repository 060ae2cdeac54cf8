package scripts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/page"
)

// Option is one {id, value} item returned by the lookup endpoints.
type Option struct {
	ID    string
	Value string
}

// DecodeOptions parses a JSON array of {id, value} items. Numeric ids keep
// their literal form.
func DecodeOptions(body []byte) ([]Option, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	out := make([]Option, 0, len(raw))
	for _, item := range raw {
		out = append(out, Option{ID: scalar(item["id"]), Value: scalar(item["value"])})
	}
	return out, nil
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// ReplaceOptions clears the options of the select matched by target and
// appends opts in the order given.
func ReplaceOptions(p *page.Page, target string, opts []Option) {
	sel := p.Find(target)
	sel.Find("option").Remove()
	for _, o := range opts {
		sel.AppendHtml(fmt.Sprintf(`<option value="%s">%s</option>`,
			html.EscapeString(o.ID), html.EscapeString(o.Value)))
	}
}

// DependentDropdown repopulates Dependent whenever Primary changes, using
// the items Endpoint returns for the selected value.
type DependentDropdown struct {
	Primary   string
	Dependent string
	Endpoint  string
	Param     string
}

const areaDirectorsEndpoint = "/secr/groups/get_ads/"

var (
	// AddFormAreaDirectors drives the group add form.
	AddFormAreaDirectors = DependentDropdown{
		Primary:   "#id_primary_area",
		Dependent: "#id_primary_area_director",
		Endpoint:  areaDirectorsEndpoint,
		Param:     "area",
	}
	// EditFormAreaDirectors drives the group edit formset.
	EditFormAreaDirectors = DependentDropdown{
		Primary:   "#id_ietfwg-0-primary_area",
		Dependent: "#id_ietfwg-0-area_director",
		Endpoint:  areaDirectorsEndpoint,
		Param:     "area",
	}
)

// Bind subscribes to change events on Primary and returns how many
// elements were bound.
func (d DependentDropdown) Bind(p *page.Page) int {
	return p.On(d.Primary, "change", d.onChange)
}

func (d DependentDropdown) onChange(p *page.Page, primary *goquery.Selection) {
	params := url.Values{d.Param: {p.Val(primary)}}
	p.GetJSON(d.Endpoint, params, func(body []byte) {
		opts, err := DecodeOptions(body)
		if err != nil {
			p.Logger().Debug("ignoring malformed lookup response",
				logging.Field{Key: "endpoint", Value: d.Endpoint}, logging.Err(err))
			return
		}
		ReplaceOptions(p, d.Dependent, opts)
	})
}
