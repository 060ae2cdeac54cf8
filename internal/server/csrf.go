package server

import (
	"context"
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/raysh454/secrglue/internal/csrf"
	"github.com/raysh454/secrglue/internal/logging"
)

// formTokenField is the hidden form input carrying the token for
// non-AJAX submissions.
const formTokenField = "csrfmiddlewaretoken"

type ctxKey int

const tokenKey ctxKey = iota

// newToken returns a fresh 32 character token.
func newToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// tokenFrom returns the token the middleware settled on for r.
func tokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

// csrfMiddleware issues the csrftoken cookie and rejects unsafe requests
// that do not echo it in X-CSRFToken or the form field. The cookie is
// readable by page scripts.
func (s *Server) csrfMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cookieToken string
		if c, err := r.Cookie(csrf.CookieName); err == nil {
			cookieToken = c.Value
		}

		if !csrf.IsSafeMethod(r.Method) {
			if cookieToken == "" {
				s.reject(w, r, "CSRF cookie not set.")
				return
			}
			sent := r.Header.Get(csrf.HeaderName)
			if sent == "" {
				sent = r.PostFormValue(formTokenField)
			}
			if subtle.ConstantTimeCompare([]byte(sent), []byte(cookieToken)) != 1 {
				s.reject(w, r, "CSRF token missing or incorrect.")
				return
			}
		}

		if cookieToken == "" {
			cookieToken = newToken()
			http.SetCookie(w, &http.Cookie{
				Name:     csrf.CookieName,
				Value:    cookieToken,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				Secure:   s.cfg.SecureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenKey, cookieToken)))
	})
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request, reason string) {
	s.logger.Warn("csrf rejected",
		logging.Field{Key: "method", Value: r.Method},
		logging.Field{Key: "path", Value: r.URL.Path},
		logging.Field{Key: "reason", Value: reason})
	writeError(w, http.StatusForbidden, reason)
}

// sameHost reports whether an Origin header names host.
func sameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, host)
}
