package webdav

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/imroc/req/v3"

	"github.com/switchbox-dev/switchbox/internal/version"
)

const (
	// Some WebDAV providers are slow to answer large PROPFIND listings, hence
	// the generous overall timeout.
	connectTimeout = 15 * time.Second
	requestTimeout = 60 * time.Second

	headerDepth = "Depth"

	propfindBody = `<?xml version="1.0" encoding="utf-8"?><propfind xmlns="DAV:"><prop><displayname/><resourcetype/></prop></propfind>`
)

var userAgent = fmt.Sprintf("Switchbox/%s (%s; %s)", version.Version, runtime.GOOS, runtime.GOARCH)

// Client issues WebDAV requests with basic auth and bounded timeouts. It does
// no retries; a failed item is recorded by the caller, not retried.
type Client struct {
	http *req.Client
}

func NewClient() *Client {
	dialer := &net.Dialer{Timeout: connectTimeout}
	client := req.C().
		SetTimeout(requestTimeout).
		SetUserAgent(userAgent).
		SetDial(dialer.DialContext).
		SetRedirectPolicy(req.NoRedirectPolicy())

	return &Client{http: client}
}

// Do issues a single request against url with the endpoint's credentials and
// returns the response status and body. Connection-level failures come back
// as a *TransportError; HTTP status interpretation is left to the caller.
func (c *Client) Do(ctx context.Context, method, url string, ep Endpoint, headers map[string]string, body []byte) (int, []byte, error) {
	r := c.http.R().
		SetContext(ctx).
		SetBasicAuth(ep.Username, ep.Password).
		SetHeaders(headers)
	if body != nil {
		r.SetBody(body)
	}

	resp, err := r.Send(method, url)
	if err != nil {
		return 0, nil, &TransportError{Op: method, URL: url, Err: err}
	}
	return resp.GetStatusCode(), resp.Bytes(), nil
}

// Put uploads one item into the endpoint's collection, overwriting any
// existing item of the same name. Success is 2xx or a literal 201.
func (c *Client) Put(ctx context.Context, ep Endpoint, name string, data []byte, contentType string) error {
	url := ep.ItemURL(name)
	status, _, err := c.Do(ctx, http.MethodPut, url, ep, map[string]string{
		"Content-Type": contentType,
	}, data)
	if err != nil {
		return err
	}
	if !is2xx(status) && status != http.StatusCreated {
		return &StatusError{Op: http.MethodPut, URL: url, Status: status}
	}
	slog.Debug("webdav put", "url", url, "status", status, "size", len(data))
	return nil
}

// Get downloads one item from the endpoint's collection.
func (c *Client) Get(ctx context.Context, ep Endpoint, name string) ([]byte, error) {
	url := ep.ItemURL(name)
	status, body, err := c.Do(ctx, http.MethodGet, url, ep, map[string]string{
		"Accept": "*/*",
	}, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, &StatusError{Op: http.MethodGet, URL: url, Status: status}
	}
	slog.Debug("webdav get", "url", url, "status", status, "size", len(body))
	return body, nil
}

// List runs a depth-1 PROPFIND on the endpoint's collection and parses the
// children out of the multistatus response. A 404 comes back as an error
// matching ErrNotFound so first-time syncs can treat it as an empty listing.
func (c *Client) List(ctx context.Context, ep Endpoint) ([]RemoteEntry, error) {
	url := ep.CollectionURL()
	status, body, err := c.Do(ctx, "PROPFIND", url, ep, map[string]string{
		headerDepth:    "1",
		"Content-Type": "application/xml; charset=utf-8",
		"Accept":       "*/*",
	}, []byte(propfindBody))
	if err != nil {
		return nil, err
	}
	// 207 Multi-Status is the conventional PROPFIND success outside 2xx.
	if !is2xx(status) && status != http.StatusMultiStatus {
		return nil, &StatusError{Op: "PROPFIND", URL: url, Status: status}
	}

	entries := ParseMultistatus(string(body))
	slog.Debug("webdav list", "url", url, "status", status, "entries", len(entries))
	return entries, nil
}

// Probe issues a zero-depth PROPFIND and returns the raw HTTP status, letting
// the caller distinguish reachable, missing and unauthorized collections.
func (c *Client) Probe(ctx context.Context, ep Endpoint) (int, error) {
	url := ep.CollectionURL()
	status, _, err := c.Do(ctx, "PROPFIND", url, ep, map[string]string{
		headerDepth: "0",
	}, nil)
	if err != nil {
		return 0, err
	}
	return status, nil
}

// MkCol creates the endpoint's collection. Creation is idempotent: an
// "already exists" (405) or redirect (301) response is a success.
func (c *Client) MkCol(ctx context.Context, ep Endpoint) error {
	url := strings.TrimSuffix(ep.CollectionURL(), "/")
	status, _, err := c.Do(ctx, "MKCOL", url, ep, nil, nil)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusCreated,
		status == http.StatusMethodNotAllowed,
		status == http.StatusMovedPermanently,
		is2xx(status):
		return nil
	default:
		return &StatusError{Op: "MKCOL", URL: url, Status: status}
	}
}

func is2xx(status int) bool {
	return status >= 200 && status <= 299
}
