package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/raysh454/secrglue/internal/csrf"
	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/page"
	"github.com/raysh454/secrglue/internal/scripts"
	"github.com/raysh454/secrglue/internal/utils"
	"github.com/raysh454/secrglue/internal/webclient"
)

var ErrPageStatus = errors.New("page load failed")

// Session is one loaded secretariat page with its scripts bound. Requests
// the scripts make share the page's cookies and carry the CSRF header when
// the rules call for it.
type Session struct {
	Page    *page.Page
	Auth    *csrf.Authenticator
	Scripts *scripts.Bindings

	initial string
	loader  webclient.WebClient
	api     webclient.WebClient
	logger  logging.Logger
}

// Open loads target with the configured backend and runs the page scripts
// as document ready would. Callbacks from requests made during ready have
// run by the time Open returns.
func Open(ctx context.Context, cfg *Config, target string, logger logging.Logger) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger = logging.OrNop(logger).With(logging.Field{Key: "component", Value: "session"})

	loc, err := utils.CanonicalURL(target, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", target, err)
	}

	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	jar := newCookieJar(inner)
	wcCfg := cfg.WebClient
	wcCfg.Jar = jar

	loader, err := webclient.NewWebClient(wcCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("page backend: %w", err)
	}

	resp, err := loader.Get(ctx, loc.String())
	if err != nil {
		loader.Close()
		return nil, fmt.Errorf("loading %s: %w", loc, err)
	}
	if !resp.OK() {
		loader.Close()
		return nil, fmt.Errorf("%w: %s returned %d", ErrPageStatus, loc, resp.StatusCode)
	}

	// Redirects move the document; scripts resolve against where it landed.
	if final := resp.Location(); final != "" && final != loc.String() {
		moved, err := utils.CanonicalURL(final, cfg.URL)
		if err != nil {
			loader.Close()
			return nil, fmt.Errorf("final url %q: %w", final, err)
		}
		logger.Debug("page redirected",
			logging.Field{Key: "from", Value: loc.String()},
			logging.Field{Key: "to", Value: moved.String()})
		loc = moved
	}

	// The browser backend keeps its own cookies; copy them into the jar so
	// script requests made over net/http see the same state.
	jar.SetCookies(loc, resp.Cookies())
	cookie := DocumentCookie(jar.Cookies(loc), jar.HTTPOnly())

	auth := csrf.NewAuthenticator(loc, cookie)
	if _, ok := auth.Token(); !ok {
		logger.Warn("page has no csrf cookie; unsafe requests will carry an empty token",
			logging.Field{Key: "url", Value: loc.String()})
	}

	api := loader
	if wcCfg.Client == webclient.ClientChromedp {
		if api, err = webclient.NewNetHTTPClient(wcCfg, logger, nil); err != nil {
			loader.Close()
			return nil, fmt.Errorf("script client: %w", err)
		}
	}
	client := webclient.WithInterceptors(webclient.WithBaseURL(api, loc), auth)

	p, err := page.Parse(ctx, resp.Body, page.Options{
		Location: loc,
		Cookie:   cookie,
		Client:   client,
		Logger:   logger,
	})
	if err != nil {
		closeBoth(loader, api)
		return nil, fmt.Errorf("parsing %s: %w", loc, err)
	}

	s := &Session{
		Page:    p,
		Auth:    auth,
		initial: p.HTML(),
		loader:  loader,
		api:     api,
		logger:  logger,
	}
	s.Scripts = scripts.Ready(p)
	p.Flush()

	logger.Info("page bound",
		logging.Field{Key: "url", Value: loc.String()},
		logging.Field{Key: "backend", Value: string(wcCfg.Client)})
	return s, nil
}

// DocumentCookie renders cookies the way document.cookie shows them:
// "name=value" pairs joined by "; ", leaving out any cookie whose name
// appears in httpOnly.
func DocumentCookie(cookies []*http.Cookie, httpOnly []*http.Cookie) string {
	hidden := make(map[string]bool)
	for _, c := range httpOnly {
		if c.HttpOnly {
			hidden[c.Name] = true
		}
	}
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if hidden[c.Name] {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// Location returns the canonical page URL.
func (s *Session) Location() *url.URL { return s.Page.Location() }

// Flush runs pending script callbacks.
func (s *Session) Flush() { s.Page.Flush() }

// Changes lists what the scripts changed in the document since it loaded.
func (s *Session) Changes() []page.Change {
	s.Page.Flush()
	return page.Diff(s.initial, s.Page.HTML())
}

// Close releases the backends.
func (s *Session) Close() error {
	return closeBoth(s.loader, s.api)
}

func closeBoth(loader, api webclient.WebClient) error {
	err := loader.Close()
	if api != nil && api != loader {
		err = errors.Join(err, api.Close())
	}
	return err
}
