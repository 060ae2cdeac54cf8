package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Hide sets an inline display:none on every element in s, like jQuery's hide().
func (p *Page) Hide(s *goquery.Selection) {
	s.Each(func(_ int, el *goquery.Selection) {
		setDisplayNone(el, true)
	})
}

// Show removes an inline display:none from every element in s.
func (p *Page) Show(s *goquery.Selection) {
	s.Each(func(_ int, el *goquery.Selection) {
		setDisplayNone(el, false)
	})
}

// IsVisible reports whether the first element of s would be rendered: no
// inline display:none on it or any ancestor, no hidden attribute, and not a
// hidden input.
func (p *Page) IsVisible(s *goquery.Selection) bool {
	if s.Length() == 0 {
		return false
	}
	n := s.Get(0)
	if n.DataAtom == atom.Input && strings.EqualFold(attr(n, "type"), "hidden") {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		switch cur.DataAtom {
		case atom.Head, atom.Script, atom.Style, atom.Template:
			return false
		}
		if _, ok := attrOK(cur, "hidden"); ok {
			return false
		}
		if hasDisplayNone(attr(cur, "style")) {
			return false
		}
	}
	return true
}

// Visible filters s down to its visible elements, in document order.
func (p *Page) Visible(s *goquery.Selection) *goquery.Selection {
	return s.FilterFunction(func(_ int, el *goquery.Selection) bool {
		return p.IsVisible(el)
	})
}

// Val returns the current value of the first form control in s.
func (p *Page) Val(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	el := s.First()
	switch goquery.NodeName(el) {
	case "select":
		opt := el.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = el.Find("option").First()
		}
		return optionValue(opt)
	case "textarea":
		return el.Text()
	case "option":
		return optionValue(el)
	default:
		return el.AttrOr("value", "")
	}
}

// SetVal sets the value of every form control in s. For a select, the
// option carrying that value becomes the only selected one.
func (p *Page) SetVal(s *goquery.Selection, v string) {
	s.Each(func(_ int, el *goquery.Selection) {
		switch goquery.NodeName(el) {
		case "select":
			el.Find("option").Each(func(_ int, opt *goquery.Selection) {
				if optionValue(opt) == v {
					opt.SetAttr("selected", "selected")
				} else {
					opt.RemoveAttr("selected")
				}
			})
		case "textarea":
			el.SetText(v)
		default:
			el.SetAttr("value", v)
		}
	})
}

// Enable and Disable toggle the disabled attribute.
func (p *Page) Enable(s *goquery.Selection) { s.RemoveAttr("disabled") }

func (p *Page) Disable(s *goquery.Selection) { s.SetAttr("disabled", "disabled") }

// IsEnabled reports whether the first element of s lacks a disabled attribute.
func (p *Page) IsEnabled(s *goquery.Selection) bool {
	if s.Length() == 0 {
		return false
	}
	_, disabled := s.First().Attr("disabled")
	return !disabled
}

// Focus moves input focus to the first element of s. An empty selection
// leaves focus where it was.
func (p *Page) Focus(s *goquery.Selection) {
	if s.Length() == 0 {
		return
	}
	p.focused = s.Get(0)
}

// Focused returns the focused element, or an empty selection.
func (p *Page) Focused() *goquery.Selection {
	if p.focused == nil {
		return p.doc.FindNodes()
	}
	return p.wrap(p.focused)
}

func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.Text())
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// styleDecls splits an inline style into its non-empty declarations.
func styleDecls(style string) []string {
	var out []string
	for _, d := range strings.Split(style, ";") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func declProperty(decl string) (string, string) {
	k, v, _ := strings.Cut(decl, ":")
	return strings.ToLower(strings.TrimSpace(k)), strings.ToLower(strings.TrimSpace(v))
}

func hasDisplayNone(style string) bool {
	for _, d := range styleDecls(style) {
		if k, v := declProperty(d); k == "display" && v == "none" {
			return true
		}
	}
	return false
}

func setDisplayNone(el *goquery.Selection, hidden bool) {
	var kept []string
	for _, d := range styleDecls(el.AttrOr("style", "")) {
		if k, _ := declProperty(d); k == "display" {
			continue
		}
		kept = append(kept, d)
	}
	if hidden {
		kept = append(kept, "display: none")
	}
	if len(kept) == 0 {
		el.RemoveAttr("style")
		return
	}
	el.SetAttr("style", strings.Join(kept, "; ")+";")
}
