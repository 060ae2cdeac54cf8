package scripts_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/secrglue/internal/page"
	"github.com/raysh454/secrglue/internal/testutil"
)

func newPage(t *testing.T, location, body string, wc *testutil.DummyWebClient) (*page.Page, *testutil.DummyLogger) {
	t.Helper()
	loc, err := url.Parse(location)
	if err != nil {
		t.Fatalf("bad location: %v", err)
	}
	log := &testutil.DummyLogger{}
	opts := page.Options{Location: loc, Cookie: "csrftoken=abc", Logger: log}
	if wc != nil {
		opts.Client = wc
	}
	p, err := page.Parse(context.Background(), []byte(body), opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p, log
}

// stripes returns "id:class" for every visible body row of table.
func stripes(p *page.Page, table string) []string {
	var out []string
	p.Visible(p.Find(table+" tbody tr")).Each(func(_ int, tr *goquery.Selection) {
		class := ""
		if tr.HasClass("row1") {
			class = "row1"
		} else if tr.HasClass("row2") {
			class = "row2"
		}
		out = append(out, tr.AttrOr("id", "")+":"+class)
	})
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
