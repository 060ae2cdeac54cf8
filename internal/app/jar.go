package app

import (
	"net/http"
	"net/url"
	"sync"
)

// cookieJar remembers which cookie names were last set HttpOnly, across
// every response it sees, redirect hops included. The stored cookies lose
// that flag once inside the jar.
type cookieJar struct {
	http.CookieJar

	mu       sync.Mutex
	httpOnly map[string]*http.Cookie
}

func newCookieJar(inner http.CookieJar) *cookieJar {
	return &cookieJar{CookieJar: inner, httpOnly: make(map[string]*http.Cookie)}
}

func (j *cookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	for _, c := range cookies {
		if c.HttpOnly {
			j.httpOnly[c.Name] = c
		} else {
			delete(j.httpOnly, c.Name)
		}
	}
	j.mu.Unlock()
	j.CookieJar.SetCookies(u, cookies)
}

// HTTPOnly returns the cookies currently known to be HttpOnly.
func (j *cookieJar) HTTPOnly() []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]*http.Cookie, 0, len(j.httpOnly))
	for _, c := range j.httpOnly {
		out = append(out, c)
	}
	return out
}
