package page

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// On binds h to event on the elements selector matches now. Elements added
// later are not bound, as with a direct jQuery binding.
func (p *Page) On(selector, event string, h Handler) int {
	if h == nil {
		return 0
	}
	bound := 0
	p.doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
		n := el.Get(0)
		byEvent := p.handlers[n]
		if byEvent == nil {
			byEvent = make(map[string][]Handler)
			p.handlers[n] = byEvent
		}
		byEvent[event] = append(byEvent[event], h)
		bound++
	})
	return bound
}

// Trigger fires event on every element selector matches, running bound
// handlers synchronously in binding order. It returns how many ran.
func (p *Page) Trigger(selector, event string) int {
	return p.TriggerOn(p.doc.Find(selector), event)
}

// TriggerOn is Trigger for an existing selection.
func (p *Page) TriggerOn(s *goquery.Selection, event string) int {
	var nodes []*html.Node
	s.Each(func(_ int, el *goquery.Selection) {
		nodes = append(nodes, el.Get(0))
	})

	ran := 0
	for _, n := range nodes {
		hs := append([]Handler(nil), p.handlers[n][event]...)
		for _, h := range hs {
			h(p, p.wrap(n))
			ran++
		}
	}
	return ran
}
