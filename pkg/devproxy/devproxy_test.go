package devproxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-adminview/pkg/testsupport"
)

func TestInject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "before closing body",
			in:   "<html><body><p>hi</p></body></html>",
			want: `<html><body><div id="root"></div><p>hi</p>` + DefaultScript + "</body></html>",
		},
		{
			name: "before closing html",
			in:   "<html><p>hi</p></html>",
			want: `<div id="root"></div><html><p>hi</p>` + DefaultScript + "</html>",
		},
		{
			name: "appended",
			in:   "<p>hi</p>",
			want: `<div id="root"></div><p>hi</p>` + DefaultScript,
		},
		{
			name: "existing root",
			in:   `<body><div id="root">x</div></body>`,
			want: `<body><div id="root">x</div>` + DefaultScript + "</body>",
		},
		{
			name: "uppercase tags",
			in:   "<BODY>x</BODY>",
			want: `<BODY><div id="root"></div>x` + DefaultScript + "</BODY>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inject(tt.in, DefaultScript, DefaultMountPoint); got != tt.want {
				t.Fatalf("unexpected body\nwant: %s\n got: %s", tt.want, got)
			}
		})
	}
}

func newProxy(t *testing.T, upstream http.Handler, local http.Handler) *httptest.Server {
	t.Helper()
	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)
	p, err := New(Options{Upstream: up.URL, Local: local})
	if err != nil {
		t.Fatalf("new proxy: %v", err)
	}
	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)
	return srv
}

func noRedirectClient() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func TestProxy_ForwardsAndInjectsHTML(t *testing.T) {
	var gotHeaders http.Header
	srv := newProxy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Domain: "admin.example.com", Path: "/"})
		_, _ = io.WriteString(w, "<html><body>"+r.URL.Path+"</body></html>")
	}), nil)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/admin/roles", nil)
	req.Header.Set("Cookie", "admin_token=t1")
	req.Header.Set("X-Custom", "dropped")
	resp, err := noRedirectClient().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	want := `<html><body><div id="root"></div>/admin/roles` + DefaultScript + `</body></html>`
	if string(body) != want {
		t.Fatalf("unexpected body: %s", body)
	}
	if gotHeaders.Get("Cookie") != "admin_token=t1" {
		t.Fatalf("expected cookie forwarded, got %q", gotHeaders.Get("Cookie"))
	}
	if gotHeaders.Get("X-Custom") != "" {
		t.Fatalf("expected other headers dropped")
	}
	if sc := resp.Header.Get("Set-Cookie"); !strings.Contains(sc, "Domain=localhost") && !strings.Contains(sc, "domain=localhost") {
		t.Fatalf("expected cookie domain rewritten, got %q", sc)
	}
	if resp.Header.Get("Content-Encoding") != "" {
		t.Fatalf("expected content-encoding dropped")
	}
}

func TestProxy_PassesRedirects(t *testing.T) {
	srv := newProxy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
	}), nil)

	resp, err := noRedirectClient().Get(srv.URL + "/admin")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect passthrough, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	if len(body) != 0 {
		t.Fatalf("expected empty redirect body, got %q", body)
	}
}

func TestProxy_LeavesNonHTMLUntouched(t *testing.T) {
	srv := newProxy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true}`)
	}), nil)

	resp, err := http.Get(srv.URL + "/api/status")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestProxy_SkipsBundlerPaths(t *testing.T) {
	upstreamHit := false
	srv := newProxy(t,
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { upstreamHit = true }),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "local:"+r.URL.Path)
		}),
	)

	for _, path := range DefaultSkipPrefixes {
		resp, err := http.Get(srv.URL + path + "/x")
		if err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if string(body) != "local:"+path+"/x" {
			t.Fatalf("expected local handler for %s, got %q", path, body)
		}
	}
	if upstreamHit {
		t.Fatalf("expected upstream not to be called")
	}
}

func TestProxy_UpstreamFailure(t *testing.T) {
	up := httptest.NewServer(http.NotFoundHandler())
	addr := up.URL
	up.Close()

	p, err := New(Options{Upstream: addr})
	if err != nil {
		t.Fatalf("new proxy: %v", err)
	}
	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), failureMessage) {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestNew_RejectsRelativeUpstream(t *testing.T) {
	if _, err := New(Options{Upstream: "localhost"}); err == nil {
		t.Fatalf("expected error for relative upstream")
	}
}

func TestInject_Golden(t *testing.T) {
	page := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "page.html"))
	got := Inject(page, DefaultScript, DefaultMountPoint)
	testsupport.AssertGolden(t, filepath.Join("testdata", "page.golden.html"), []byte(got))
}
