package page

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/webclient"
)

// Callback receives a successful response body on the page's loop.
type Callback func(body []byte)

// GetJSON issues a GET for rawURL with params appended to its query and
// returns immediately. cb runs on the loop only if the call succeeds.
func (p *Page) GetJSON(rawURL string, params url.Values, cb Callback) {
	p.send(&webclient.Request{
		Method: http.MethodGet,
		URL:    withQuery(rawURL, params),
		Headers: http.Header{
			"Accept":           {"application/json, text/javascript, */*; q=0.01"},
			"X-Requested-With": {"XMLHttpRequest"},
		},
	}, cb)
}

// Post issues a form-encoded POST and returns immediately.
func (p *Page) Post(rawURL string, form url.Values, cb Callback) {
	p.send(&webclient.Request{
		Method: http.MethodPost,
		URL:    rawURL,
		Headers: http.Header{
			"Content-Type":     {"application/x-www-form-urlencoded; charset=UTF-8"},
			"X-Requested-With": {"XMLHttpRequest"},
		},
		Body: []byte(form.Encode()),
	}, cb)
}

func (p *Page) send(req *webclient.Request, cb Callback) {
	if p.client == nil {
		p.logger.Warn("page has no network client", logging.Field{Key: "url", Value: req.URL})
		return
	}
	ctx := p.ctx
	client := p.client
	logger := p.logger
	method, target := req.Method, req.URL

	p.loop.Go(func() func() {
		resp, err := client.Do(ctx, req)
		if err != nil {
			logger.Warn("page request failed",
				logging.Field{Key: "method", Value: method},
				logging.Field{Key: "url", Value: target},
				logging.Err(err))
			return nil
		}
		if !resp.OK() {
			logger.Warn("page request rejected",
				logging.Field{Key: "method", Value: method},
				logging.Field{Key: "url", Value: target},
				logging.Field{Key: "status", Value: resp.StatusCode})
			return nil
		}
		if cb == nil {
			return nil
		}
		body := resp.Body
		return func() { cb(body) }
	})
}

// withQuery appends params the way jQuery does for GET data.
func withQuery(rawURL string, params url.Values) string {
	if len(params) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + params.Encode()
}
