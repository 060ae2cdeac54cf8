package scripts_test

import (
	"testing"

	"github.com/raysh454/secrglue/internal/scripts"
	"github.com/raysh454/secrglue/internal/testutil"
)

func TestReady_AreasPage(t *testing.T) {
	t.Parallel()
	p, _ := newPage(t, "https://datatracker.example/secr/areas/", areasHTML, nil)

	b := scripts.Ready(p)

	if b.AreaToggle == nil || b.ProceedingsToggle != nil {
		t.Fatalf("unexpected toggles: %+v", b)
	}
	if !b.CurrentTab {
		t.Error("nav tab should be styled")
	}
	if b.Autocomplete != nil || b.Upload != nil || b.Slides != nil || len(b.Dropdowns) != 0 {
		t.Errorf("unexpected bindings: %+v", b)
	}
	if p.Visible(p.Find("#areas-list-table tbody tr")).Length() != 2 {
		t.Error("inactive areas should start hidden")
	}
}

func TestReady_UploadPage(t *testing.T) {
	t.Parallel()
	wc := testutil.NewDummyWebClient(map[string]string{"/secr/proceedings/ajax/order-slide/": "ok"})
	p, _ := newPage(t, "https://datatracker.example/secr/proceedings/upload/", uploadHTML, wc)

	b := scripts.Ready(p)

	if b.Focused != "#id_group_name" || p.Focused().AttrOr("id", "") != "id_group_name" {
		t.Errorf("focus = %q on %q", b.Focused, p.Focused().AttrOr("id", ""))
	}
	if b.Upload == nil || b.Slides == nil {
		t.Fatal("upload page should bind help and slides")
	}
	b.Slides.Reorder(p, []string{"s2", "s1", "s3"}, "s2")
	p.Flush()
	if len(wc.RecordedTo(b.Slides.Endpoint)) != 1 {
		t.Error("expected the reorder to post")
	}
}

func TestReady_GroupAddPage(t *testing.T) {
	t.Parallel()
	p, _ := newPage(t, "https://datatracker.example/secr/groups/add/", groupAddHTML, nil)
	b := scripts.Ready(p)
	if len(b.Dropdowns) != 1 || b.Dropdowns[0].Dependent != "#id_primary_area_director" {
		t.Errorf("dropdowns = %+v", b.Dropdowns)
	}
}
