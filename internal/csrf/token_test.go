package csrf_test

import (
	"testing"

	"github.com/raysh454/secrglue/internal/csrf"
)

func TestReadToken(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cookies string
		want    string
		wantOK  bool
	}{
		{"among others", "sessionid=abc; csrftoken=XYZ123", "XYZ123", true},
		{"first of several", "csrftoken=one; other=2", "one", true},
		{"no surrounding space", "a=1;csrftoken=tight;b=2", "tight", true},
		{"percent decoded", "csrftoken=a%2Fb%3Dc", "a/b=c", true},
		{"plus is literal", "csrftoken=a+b", "a+b", true},
		{"malformed escape kept raw", "csrftoken=50%zz", "50%zz", true},
		{"empty value", "csrftoken=; x=1", "", true},
		{"first match wins", "csrftoken=first; csrftoken=second", "first", true},
		{"suffix of another name", "xcsrftoken=nope", "", false},
		{"prefix of another name", "csrftokenx=nope", "", false},
		{"name without equals", "csrftoken; a=b", "", false},
		{"absent", "sessionid=abc", "", false},
		{"empty cookie string", "", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := csrf.ReadToken(tt.cookies, csrf.CookieName)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ReadToken(%q) = (%q, %v), want (%q, %v)", tt.cookies, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestReadToken_EmptyName(t *testing.T) {
	t.Parallel()
	if _, ok := csrf.ReadToken("=x; a=b", ""); ok {
		t.Error("empty name must never match")
	}
}
