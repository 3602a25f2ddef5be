// Package devproxy serves the front-end dev bundle while forwarding every
// other request to a running admin server, injecting the bundle entry point
// into proxied HTML pages.
package devproxy

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-adminview/internal/logging"
)

const (
	DefaultUpstream   = "http://localhost:9090"
	DefaultScript     = `<script type="module" src="/src/index.tsx"></script>`
	DefaultMountPoint = `<div id="root"></div>`

	failureMessage = "Proxy to upstream failed"
)

// DefaultSkipPrefixes are served by the local handler instead of upstream.
var DefaultSkipPrefixes = []string{"/src", "/@rsbuild", "/__rsbuild_hmr", "/assets", "/node_modules"}

var (
	cookieDomain = regexp.MustCompile(`(?i)domain=[^;]+`)
	closeBody    = regexp.MustCompile(`(?i)</body>`)
	closeHTML    = regexp.MustCompile(`(?i)</html>`)
	openBody     = regexp.MustCompile(`(?i)<body>`)
)

// Options configures a Proxy.
type Options struct {
	Upstream     string
	SkipPrefixes []string
	Script       string
	MountPoint   string
	CookieDomain string
	// Local serves skipped paths. Defaults to 404.
	Local  http.Handler
	Logger *logging.Logger
}

// Proxy forwards to the upstream admin and rewrites its responses for local
// development.
type Proxy struct {
	opts     Options
	upstream *url.URL
	reverse  *httputil.ReverseProxy
}

// New builds a Proxy. Zero option values take the package defaults.
func New(opts Options) (*Proxy, error) {
	if opts.Upstream == "" {
		opts.Upstream = DefaultUpstream
	}
	if opts.SkipPrefixes == nil {
		opts.SkipPrefixes = append([]string{}, DefaultSkipPrefixes...)
	}
	if opts.Script == "" {
		opts.Script = DefaultScript
	}
	if opts.MountPoint == "" {
		opts.MountPoint = DefaultMountPoint
	}
	if opts.CookieDomain == "" {
		opts.CookieDomain = "localhost"
	}
	if opts.Local == nil {
		opts.Local = http.NotFoundHandler()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	upstream, err := url.Parse(opts.Upstream)
	if err != nil {
		return nil, fmt.Errorf("devproxy: invalid upstream %q: %w", opts.Upstream, err)
	}
	if upstream.Scheme == "" || upstream.Host == "" {
		return nil, fmt.Errorf("devproxy: upstream %q must be absolute", opts.Upstream)
	}

	p := &Proxy{opts: opts, upstream: upstream}
	p.reverse = &httputil.ReverseProxy{
		Rewrite:        p.rewrite,
		ModifyResponse: p.modifyResponse,
		ErrorHandler:   p.handleError,
	}
	return p, nil
}

// ServeHTTP implements http.Handler.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if p.skip(r.URL.Path) {
		p.opts.Local.ServeHTTP(w, r)
		return
	}
	p.reverse.ServeHTTP(w, r)
}

func (p *Proxy) skip(path string) bool {
	for _, prefix := range p.opts.SkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// rewrite targets upstream and forwards only the Cookie header.
func (p *Proxy) rewrite(pr *httputil.ProxyRequest) {
	pr.SetURL(p.upstream)
	pr.Out.Host = p.upstream.Host
	cookie := pr.In.Header.Values("Cookie")
	pr.Out.Header = make(http.Header)
	for _, c := range cookie {
		pr.Out.Header.Add("Cookie", c)
	}
}

func (p *Proxy) modifyResponse(resp *http.Response) error {
	resp.Header.Del("Content-Encoding")

	if cookies := resp.Header.Values("Set-Cookie"); len(cookies) > 0 {
		resp.Header.Del("Set-Cookie")
		for _, c := range cookies {
			resp.Header.Add("Set-Cookie", cookieDomain.ReplaceAllString(c, "domain="+p.opts.CookieDomain))
		}
	}

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		_ = resp.Body.Close()
		resp.Body = http.NoBody
		resp.ContentLength = 0
		resp.Header.Del("Content-Length")
		return nil
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("devproxy: read upstream body: %w", err)
	}
	body := Inject(string(raw), p.opts.Script, p.opts.MountPoint)
	resp.Body = io.NopCloser(bytes.NewReader([]byte(body)))
	resp.ContentLength = int64(len(body))
	resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
	return nil
}

func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	p.opts.Logger.Error(err, "proxy request failed", "path", r.URL.Path, "upstream", p.upstream.String())
	http.Error(w, failureMessage, http.StatusInternalServerError)
}

// Inject inserts script before the first closing body tag, else before the
// closing html tag, else at the end. It then ensures mountPoint exists,
// placing it right after the opening body tag or at the start.
func Inject(body, script, mountPoint string) string {
	switch {
	case closeBody.MatchString(body):
		body = insertBefore(body, closeBody, script)
	case closeHTML.MatchString(body):
		body = insertBefore(body, closeHTML, script)
	default:
		body += script
	}

	if strings.Contains(body, `id="root"`) {
		return body
	}
	if loc := openBody.FindStringIndex(body); loc != nil {
		return body[:loc[1]] + mountPoint + body[loc[1]:]
	}
	return mountPoint + body
}

func insertBefore(body string, re *regexp.Regexp, insert string) string {
	loc := re.FindStringIndex(body)
	return body[:loc[0]] + insert + body[loc[0]:]
}
