package webclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/raysh454/secrglue/internal/logging"
)

// ErrUnsupportedMethod is returned by the chromedp backend for anything but GET.
var ErrUnsupportedMethod = errors.New("chromedp backend only renders GET requests")

// ChromeDPClient loads pages in headless Chrome so the document handed to
// the page glue is the one a browser would build, cookies included.
type ChromeDPClient struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	idleAfter   time.Duration
	logger      logging.Logger
}

func NewChromeDPClient(idleAfter time.Duration, logger logging.Logger, opts ...chromedp.ExecAllocatorOption) (*ChromeDPClient, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], opts...)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	componentLogger := logging.OrNop(logger).With(logging.Field{Key: "backend", Value: "chromedp"})
	componentLogger.Debug("created chromedp webclient", logging.Field{Key: "idle_after", Value: idleAfter.String()})

	return &ChromeDPClient{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		idleAfter:   idleAfter,
		logger:      componentLogger,
	}, nil
}

// waitNetworkIdle fires once no request has been in flight for idleAfter.
// The returned kick func arms the timer when nothing else has.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) (<-chan struct{}, func()) {
	idleChan := make(chan struct{})
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() {
					close(idleChan)
				})
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) <= 0 {
				atomic.StoreInt32(&activeReqs, 0)
				startTimer()
			}
		}
	})

	return idleChan, startTimer
}

func (cdc *ChromeDPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if req.Method != "" && req.Method != http.MethodGet {
		return nil, ErrUnsupportedMethod
	}

	tabCtx, cancel := chromedp.NewContext(cdc.allocCtx)
	defer cancel()
	if dl, ok := ctx.Deadline(); ok {
		var dlCancel context.CancelFunc
		tabCtx, dlCancel = context.WithDeadline(tabCtx, dl)
		defer dlCancel()
	}

	status := 0
	headers := http.Header{}
	var docMu sync.Mutex
	var docOnce sync.Once
	chromedp.ListenTarget(tabCtx, func(ev any) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			docOnce.Do(func() {
				docMu.Lock()
				defer docMu.Unlock()
				status = int(e.Response.Status)
				for k, v := range e.Response.Headers {
					headers.Set(k, fmt.Sprint(v))
				}
			})
		}
	})

	idle, kick := waitNetworkIdle(tabCtx, cdc.idleAfter)

	extra := network.Headers{}
	for k := range req.Headers {
		extra[k] = req.Headers.Get(k)
	}

	cdc.logger.Debug("rendering page", logging.Field{Key: "url", Value: req.URL})
	if err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(extra),
		chromedp.Navigate(req.URL),
	); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", req.URL, err)
	}

	kick()
	select {
	case <-idle:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var html, final string
	var cookies []*network.Cookie
	err := chromedp.Run(tabCtx,
		chromedp.Location(&final),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			urls := []string{req.URL}
			if final != "" && final != req.URL {
				urls = append(urls, final)
			}
			cookies, err = network.GetCookies().WithURLs(urls).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}

	docMu.Lock()
	defer docMu.Unlock()
	headers.Del("Set-Cookie")
	for _, c := range cookies {
		headers.Add("Set-Cookie", browserCookie(c).String())
	}
	if status == 0 {
		status = http.StatusOK
	}

	return &Response{
		Request:    req,
		FinalURL:   final,
		Headers:    headers,
		Body:       []byte(html),
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func browserCookie(c *network.Cookie) *http.Cookie {
	hc := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   c.Domain,
		HttpOnly: c.HTTPOnly,
		Secure:   c.Secure,
	}
	if c.Expires > 0 {
		hc.Expires = time.Unix(int64(c.Expires), 0)
	}
	return hc
}

func (cdc *ChromeDPClient) Get(ctx context.Context, url string) (*Response, error) {
	return cdc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (cdc *ChromeDPClient) Close() error {
	cdc.logger.Debug("closing chromedp webclient")
	cdc.allocCancel()
	return nil
}
