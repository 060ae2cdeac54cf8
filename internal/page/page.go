// Package page is the capability-abstracted browser page the secretariat
// scripts run against: an HTML document held in memory, its location and
// cookies, event subscription, and a network that answers through callbacks.
package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/webclient"
)

var ErrNoLocation = errors.New("page location must be an absolute URL")

// Handler reacts to an event on target, a single-element selection.
type Handler func(p *Page, target *goquery.Selection)

// Options configures a Page.
type Options struct {
	// Location is the absolute URL the document was loaded from.
	Location *url.URL
	// Cookie is the document.cookie view of the cookies for Location.
	Cookie string
	// Client carries the page's network calls. Any interceptors and base URL
	// resolution are expected to be wired into it already.
	Client webclient.WebClient
	Logger logging.Logger
}

// Page is not safe for concurrent use. Everything except network work runs
// on one goroutine: the one that calls Trigger, scripts and Flush.
type Page struct {
	ctx      context.Context
	doc      *goquery.Document
	location *url.URL
	cookie   string
	client   webclient.WebClient
	loop     *Loop
	logger   logging.Logger

	handlers map[*html.Node]map[string][]Handler
	focused  *html.Node
}

// New wraps an already parsed document.
func New(ctx context.Context, doc *goquery.Document, opts Options) (*Page, error) {
	if doc == nil {
		return nil, errors.New("page document is nil")
	}
	if opts.Location == nil || !opts.Location.IsAbs() {
		return nil, ErrNoLocation
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Page{
		ctx:      ctx,
		doc:      doc,
		location: opts.Location,
		cookie:   opts.Cookie,
		client:   opts.Client,
		loop:     NewLoop(),
		logger:   logging.OrNop(opts.Logger).With(logging.Field{Key: "component", Value: "page"}),
		handlers: make(map[*html.Node]map[string][]Handler),
	}, nil
}

// Parse builds a Page from an HTML body.
func Parse(ctx context.Context, body []byte, opts Options) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return New(ctx, doc, opts)
}

func (p *Page) Document() *goquery.Document { return p.doc }

func (p *Page) Location() *url.URL { return p.location }

// Cookie returns the document.cookie string the page was bound with.
func (p *Page) Cookie() string { return p.cookie }

func (p *Page) Logger() logging.Logger { return p.logger }

func (p *Page) Loop() *Loop { return p.loop }

// Flush runs every callback the page's network calls produce, until idle.
func (p *Page) Flush() { p.loop.Flush() }

// Find runs a CSS selector against the whole document.
func (p *Page) Find(selector string) *goquery.Selection {
	return p.doc.Find(selector)
}

// Exists reports whether selector matches anything.
func (p *Page) Exists(selector string) bool {
	return p.doc.Find(selector).Length() > 0
}

// HTML serialises the current document.
func (p *Page) HTML() string {
	out, err := goquery.OuterHtml(p.doc.Selection)
	if err != nil {
		p.logger.Warn("serialising document", logging.Err(err))
		return ""
	}
	return out
}

// wrap returns a selection holding exactly n, rooted in this document.
func (p *Page) wrap(n *html.Node) *goquery.Selection {
	return p.doc.FindNodes(n)
}
