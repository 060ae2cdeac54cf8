package scripts

import (
	"encoding/json"
	"net/url"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/page"
)

// Suggestion is one {label, value} item from the people search.
type Suggestion struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var personIDPattern = regexp.MustCompile(`\(\d+\)`)

// PersonID extracts the digits of the first "(N)" group in label.
func PersonID(label string) (string, bool) {
	m := personIDPattern.FindString(label)
	if m == "" {
		return "", false
	}
	return m[1 : len(m)-1], true
}

// NameAutocomplete searches people as the user types and, once a person is
// chosen, loads their addresses into the email select.
type NameAutocomplete struct {
	Input          string
	Source         string
	Param          string
	MinLength      int
	EmailsEndpoint string
	EmailTarget    string

	mu   sync.Mutex
	last []Suggestion
}

// NewNameAutocomplete returns the people lookup used by the area forms.
func NewNameAutocomplete() *NameAutocomplete {
	return &NameAutocomplete{
		Input:          "input.name-autocomplete",
		Source:         "/secr/areas/getpeople/",
		Param:          "q",
		MinLength:      3,
		EmailsEndpoint: "/secr/areas/getemails/",
		EmailTarget:    "#id_email",
	}
}

// Bind searches on every input event of the autocomplete field. It returns
// false when the page has no such field.
func (a *NameAutocomplete) Bind(p *page.Page) bool {
	return p.On(a.Input, "input", func(p *page.Page, field *goquery.Selection) {
		a.Search(p, p.Val(field), nil)
	}) > 0
}

// Search asks the people endpoint for term. Terms shorter than MinLength
// runes send nothing. Results are kept for Suggestions and passed to cb.
func (a *NameAutocomplete) Search(p *page.Page, term string, cb func([]Suggestion)) bool {
	if utf8.RuneCountInString(term) < a.MinLength {
		return false
	}
	p.GetJSON(a.Source, url.Values{a.Param: {term}}, func(body []byte) {
		var found []Suggestion
		if err := json.Unmarshal(body, &found); err != nil {
			p.Logger().Debug("ignoring malformed people response", logging.Err(err))
			return
		}
		a.mu.Lock()
		a.last = found
		a.mu.Unlock()
		if cb != nil {
			cb(found)
		}
	})
	return true
}

// Suggestions returns the results of the latest completed search.
func (a *NameAutocomplete) Suggestions() []Suggestion {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Suggestion(nil), a.last...)
}

// Select reacts to the user picking label: it loads that person's emails
// into EmailTarget. Labels without a "(N)" group are ignored.
func (a *NameAutocomplete) Select(p *page.Page, label string) bool {
	id, ok := PersonID(label)
	if !ok {
		return false
	}
	p.GetJSON(a.EmailsEndpoint, url.Values{"id": {id}}, func(body []byte) {
		opts, err := DecodeOptions(body)
		if err != nil {
			p.Logger().Debug("ignoring malformed email response", logging.Err(err))
			return
		}
		ReplaceOptions(p, a.EmailTarget, opts)
	})
	return true
}
