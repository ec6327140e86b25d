// Package github wraps the GitHub API client used to fetch remote matrix
// definitions, plus access-token resolution.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

type Client struct {
	Client *github.Client
	HTTP   *http.Client
}

// loggingRoundTripper emits one line per request and response (with latency)
// when verbose diagnostics are enabled. Logs go to a stderr-style writer so
// report output on stdout stays clean.
type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	fmt.Fprintf(t.w, "[verbose] github api: %s %s\n", req.Method, req.URL.String())
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start).Truncate(time.Millisecond)
	if err != nil {
		fmt.Fprintf(t.w, "[verbose] github api: error after %s: %v\n", dur, err)
	} else {
		fmt.Fprintf(t.w, "[verbose] github api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur)
	}
	return resp, err
}

// NewClient builds a GitHub client. An empty token yields an unauthenticated
// client, which is enough for public repositories. A non-nil verboseLog
// writer enables per-request logging.
func NewClient(ctx context.Context, token string, verboseLog io.Writer) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("github client: ctx is nil")
	}

	transport := http.DefaultTransport
	if verboseLog != nil {
		transport = &loggingRoundTripper{base: transport, w: verboseLog}
	}
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: src, Base: transport}
	}
	hc := &http.Client{Transport: transport}

	return &Client{
		Client: github.NewClient(hc),
		HTTP:   hc,
	}, nil
}
