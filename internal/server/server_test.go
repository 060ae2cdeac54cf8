package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/raysh454/secrglue/internal/csrf"
	"github.com/raysh454/secrglue/internal/server"
	"github.com/raysh454/secrglue/internal/testutil"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	cfg := server.DefaultConfig()
	cfg.Logger = &testutil.DummyLogger{}
	s, err := server.NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func do(t *testing.T, s http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

func tokenCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == csrf.CookieName {
			return c
		}
	}
	return nil
}

// ─── Pages ─────────────────────────────────────────────────────────────

func TestServer_PagesIssueTokenAndCarryContracts(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	cases := []struct {
		path     string
		contains []string
	}{
		{"/secr/areas/", []string{`id="areas-button-list"`, `id="areas-list-table"`, `class="active"`, `class="name-autocomplete"`, `id="id_email"`}},
		{"/secr/groups/add/", []string{`id="id_primary_area"`, `id="id_primary_area_director"`, `<option value="1">art</option>`}},
		{"/secr/proceedings/", []string{`id="proceedings-button-list"`, `id="proceedings-meeting-buttons"`, `class="secretariat"`, `class="open"`}},
		{"/secr/proceedings/upload/", []string{`id="proceedings-upload-form"`, `id="proceedings-upload-table"`, `id="slides" class="sortable"`, `<td class="hidden">slides-120-httpbis-chairs</td>`}},
	}
	for _, tc := range cases {
		rec := do(t, s, http.MethodGet, tc.path, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.path, rec.Code)
		}
		c := tokenCookie(rec)
		if c == nil || len(c.Value) != 32 || c.HttpOnly {
			t.Fatalf("%s: expected a script-readable csrftoken cookie, got %+v", tc.path, c)
		}
		body := rec.Body.String()
		for _, want := range tc.contains {
			if !strings.Contains(body, want) {
				t.Errorf("%s: body missing %s", tc.path, want)
			}
		}
		// Nothing on the page may point at a route the server does not serve.
		for _, dead := range []string{"<script", "action="} {
			if strings.Contains(body, dead) {
				t.Errorf("%s: body references an unserved route via %s", tc.path, dead)
			}
		}
	}
}

func TestServer_ExistingCookieIsKept(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/secr/areas/", "", http.Header{"Cookie": {"csrftoken=known"}})
	if tokenCookie(rec) != nil {
		t.Error("no new cookie when one is present")
	}
	if !strings.Contains(rec.Body.String(), `value="known"`) {
		t.Error("form token should echo the cookie")
	}
}

// ─── Lookups ───────────────────────────────────────────────────────────

func TestServer_GetPeople(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/secr/areas/getpeople/?q=jan", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []server.Suggestion
	decodeJSON(t, rec, &got)
	if len(got) != 2 || got[0].Label != "Jane Doe (100)" || got[0].Value != got[0].Label {
		t.Fatalf("unexpected suggestions %+v", got)
	}

	rec = do(t, s, http.MethodGet, "/secr/areas/getpeople/?term=ravi", "", nil)
	decodeJSON(t, rec, &got)
	if len(got) != 1 || got[0].Label != "Ravi Iyer (103)" {
		t.Errorf("term alias: %+v", got)
	}

	rec = do(t, s, http.MethodGet, "/secr/areas/getpeople/?q=ja", "", nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("short term should give [], got %s", rec.Body.String())
	}
}

func TestServer_GetEmailsAndADs(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/secr/areas/getemails/?id=100", "", nil)
	var emails []server.Option
	decodeJSON(t, rec, &emails)
	if len(emails) != 2 || emails[0].ID != "jane@example.org" {
		t.Errorf("unexpected emails %+v", emails)
	}

	rec = do(t, s, http.MethodGet, "/secr/groups/get_ads/?area=1", "", nil)
	var ads []server.Option
	decodeJSON(t, rec, &ads)
	if len(ads) != 2 || ads[0].ID != "100" || ads[0].Value != "Jane Doe" {
		t.Errorf("unexpected ADs %+v", ads)
	}

	cases := []struct {
		path string
		code int
	}{
		{"/secr/areas/getemails/?id=abc", http.StatusBadRequest},
		{"/secr/areas/getemails/?id=999", http.StatusNotFound},
		{"/secr/groups/get_ads/", http.StatusBadRequest},
		{"/secr/groups/get_ads/?area=42", http.StatusNotFound},
	}
	for _, tc := range cases {
		if rec := do(t, s, http.MethodGet, tc.path, "", nil); rec.Code != tc.code {
			t.Errorf("%s: expected %d, got %d", tc.path, tc.code, rec.Code)
		}
	}
}

// ─── CSRF ──────────────────────────────────────────────────────────────

func TestServer_OrderSlide_CSRF(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	const path = "/secr/proceedings/ajax/order-slide/"
	form := "slide_name=slides-120-httpbis-cache-groups&order=0"
	formType := "application/x-www-form-urlencoded"

	cases := []struct {
		name   string
		header http.Header
		body   string
		code   int
	}{
		{"no cookie", http.Header{"Content-Type": {formType}, "X-CSRFToken": {"tok"}}, form, http.StatusForbidden},
		{"no header", http.Header{"Content-Type": {formType}, "Cookie": {"csrftoken=tok"}}, form, http.StatusForbidden},
		{"wrong header", http.Header{"Content-Type": {formType}, "Cookie": {"csrftoken=tok"}, "X-CSRFToken": {"nope"}}, form, http.StatusForbidden},
		{"empty header", http.Header{"Content-Type": {formType}, "Cookie": {"csrftoken=tok"}, "X-CSRFToken": {""}}, form, http.StatusForbidden},
		{"header matches", http.Header{"Content-Type": {formType}, "Cookie": {"csrftoken=tok"}, "X-CSRFToken": {"tok"}}, form, http.StatusOK},
		{"form field matches", http.Header{"Content-Type": {formType}, "Cookie": {"csrftoken=tok"}}, form + "&csrfmiddlewaretoken=tok", http.StatusOK},
	}
	for _, tc := range cases {
		rec := do(t, s, http.MethodPost, path, tc.body, tc.header)
		if rec.Code != tc.code {
			t.Errorf("%s: expected %d, got %d (%s)", tc.name, tc.code, rec.Code, rec.Body.String())
		}
	}

	rec := do(t, s, http.MethodPost, path, form, http.Header{
		"Content-Type": {formType}, "Cookie": {"csrftoken=tok"}, "X-CSRFToken": {"tok"},
	})
	var resp server.OrderSlideResponse
	decodeJSON(t, rec, &resp)
	if len(resp.Slides) != 3 || resp.Slides[0] != "slides-120-httpbis-cache-groups" {
		t.Errorf("unexpected order %+v", resp)
	}
}

func TestServer_OrderSlide_BadInput(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	h := http.Header{
		"Content-Type": {"application/x-www-form-urlencoded"},
		"Cookie":       {"csrftoken=tok"},
		"X-CSRFToken":  {"tok"},
	}
	cases := []struct {
		body string
		code int
	}{
		{"order=1", http.StatusBadRequest},
		{"slide_name=slides-120-httpbis-chairs&order=x", http.StatusBadRequest},
		{"slide_name=missing&order=0", http.StatusNotFound},
	}
	for _, tc := range cases {
		if rec := do(t, s, http.MethodPost, "/secr/proceedings/ajax/order-slide/", tc.body, h); rec.Code != tc.code {
			t.Errorf("%q: expected %d, got %d", tc.body, tc.code, rec.Code)
		}
	}
}

func TestServer_OrderSlide_ReportsClampedIndex(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	h := http.Header{
		"Content-Type": {"application/x-www-form-urlencoded"},
		"Cookie":       {"csrftoken=tok"},
		"X-CSRFToken":  {"tok"},
	}
	cases := []struct {
		order string
		want  int
	}{
		{"99", 2},
		{"-5", 0},
	}
	for _, tc := range cases {
		rec := do(t, s, http.MethodPost, "/secr/proceedings/ajax/order-slide/",
			"slide_name=slides-120-httpbis-chairs&order="+tc.order, h)
		if rec.Code != http.StatusOK {
			t.Fatalf("order=%s: %d %s", tc.order, rec.Code, rec.Body.String())
		}
		var resp server.OrderSlideResponse
		decodeJSON(t, rec, &resp)
		if resp.Order != tc.want {
			t.Errorf("order=%s: reported %d, want %d", tc.order, resp.Order, tc.want)
		}
		if resp.Order < 0 || resp.Order >= len(resp.Slides) || resp.Slides[resp.Order] != "slides-120-httpbis-chairs" {
			t.Errorf("order=%s: reported index does not match slides %v", tc.order, resp.Slides)
		}
	}
}

// TestServer_AuthenticatedClient drives the server with a plain http.Client
// whose transport echoes the cookie the way the page glue does.
func TestServer_AuthenticatedClient(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ts := httptest.NewServer(s)
	defer ts.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	pageURL, _ := url.Parse(ts.URL + "/secr/proceedings/upload/")
	resp, err := client.Get(pageURL.String())
	if err != nil {
		t.Fatalf("GET page: %v", err)
	}
	resp.Body.Close()

	var cookie []string
	for _, c := range jar.Cookies(pageURL) {
		cookie = append(cookie, c.Name+"="+c.Value)
	}
	auth := csrf.NewAuthenticator(pageURL, strings.Join(cookie, "; "))
	if _, ok := auth.Token(); !ok {
		t.Fatal("authenticator found no token")
	}

	plain, err := client.PostForm(ts.URL+"/secr/proceedings/ajax/order-slide/",
		url.Values{"slide_name": {"slides-120-httpbis-chairs"}, "order": {"2"}})
	if err != nil {
		t.Fatalf("plain POST: %v", err)
	}
	plain.Body.Close()
	if plain.StatusCode != http.StatusForbidden {
		t.Fatalf("POST without header: expected 403, got %d", plain.StatusCode)
	}

	client.Transport = &csrf.Transport{Auth: auth}
	authed, err := client.PostForm(ts.URL+"/secr/proceedings/ajax/order-slide/",
		url.Values{"slide_name": {"slides-120-httpbis-chairs"}, "order": {"2"}})
	if err != nil {
		t.Fatalf("authenticated POST: %v", err)
	}
	defer authed.Body.Close()
	if authed.StatusCode != http.StatusOK {
		t.Fatalf("authenticated POST: expected 200, got %d", authed.StatusCode)
	}
}

// ─── WebSocket ─────────────────────────────────────────────────────────

func TestServer_SlidesFeed(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ts := httptest.NewServer(s)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/secr/ws/slides"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.Hub().Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	rec := do(t, s, http.MethodPost, "/secr/proceedings/ajax/order-slide/",
		"slide_name=slides-120-httpbis-resumable-uploads&order=0",
		http.Header{
			"Content-Type": {"application/x-www-form-urlencoded"},
			"Cookie":       {"csrftoken=tok"},
			"X-CSRFToken":  {"tok"},
		})
	if rec.Code != http.StatusOK {
		t.Fatalf("order-slide: %d %s", rec.Code, rec.Body.String())
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev server.SlideOrderEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != "slide_order" || ev.Meeting != "120" || ev.Group != "httpbis" || ev.Slides[0] != "slides-120-httpbis-resumable-uploads" {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestServer_SlidesFeed_RejectsForeignOrigin(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ts := httptest.NewServer(s)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/secr/ws/slides"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"https://evil.example"}})
	if err == nil {
		t.Fatal("expected the upgrade to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %+v", resp)
	}
}

// ─── Swagger ───────────────────────────────────────────────────────────

func TestServer_SwaggerDoc(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/swagger/doc.json", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/secr/proceedings/ajax/order-slide/") {
		t.Error("doc.json should describe the order-slide endpoint")
	}
}
