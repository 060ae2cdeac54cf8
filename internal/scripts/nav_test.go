package scripts_test

import (
	"testing"

	"github.com/raysh454/secrglue/internal/scripts"
)

func TestStyleCurrentTab(t *testing.T) {
	t.Parallel()
	p, _ := newPage(t, "https://datatracker.example/secr/areas/", areasHTML, nil)
	if !scripts.StyleCurrentTab(p) {
		t.Fatal("expected the nav to be styled")
	}
	if !p.Find("#nav-areas a").HasClass("current") {
		t.Error("areas tab should be current")
	}
	if p.Find("#nav-groups a").HasClass("current") {
		t.Error("groups tab should not be current")
	}

	p2, _ := newPage(t, "https://datatracker.example/secr/areas/", "<p>no nav</p>", nil)
	if scripts.StyleCurrentTab(p2) {
		t.Error("no nav, nothing to style")
	}
}

func TestGetParam(t *testing.T) {
	t.Parallel()
	cases := []struct {
		href, name, want string
	}{
		{"/secr/x/?id=12&area=3", "area", "3"},
		{"/secr/x/?id=12&area=3", "id", "12"},
		{"/secr/x/?name=a%20b#frag", "name", "a%20b"},
		{"/secr/x/?xid=5", "id", ""},
		{"/secr/x/", "id", ""},
		{"/secr/x/?id=", "id", ""},
		{"/secr/x/?a.b=1", "a.b", "1"},
		{"/secr/x/?aXb=1", "a.b", ""},
	}
	for _, tc := range cases {
		if got := scripts.GetParam(tc.href, tc.name); got != tc.want {
			t.Errorf("GetParam(%q, %q) = %q, want %q", tc.href, tc.name, got, tc.want)
		}
	}
}
