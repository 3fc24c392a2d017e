package sync

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	gosync "sync"

	"github.com/switchbox-dev/switchbox/internal/webdav"
)

// fakeDAV is an in-memory WebDAV server good enough for the reconciler:
// MKCOL, PUT, GET and depth-1 PROPFIND over a flat path->content map.
type fakeDAV struct {
	mu    gosync.Mutex
	files map[string][]byte // "/sync/accounts/a.json" -> content
	cols  map[string]bool   // "/sync/accounts" -> exists
	// putStatus forces a status code for PUTs on the given path.
	putStatus map[string]int

	srv *httptest.Server
}

func newFakeDAV() *fakeDAV {
	f := &fakeDAV{
		files:     make(map[string][]byte),
		cols:      make(map[string]bool),
		putStatus: make(map[string]int),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeDAV) Close() { f.srv.Close() }

func (f *fakeDAV) endpoint(remotePath string) webdav.Endpoint {
	return webdav.Endpoint{
		BaseURL:    f.srv.URL,
		Username:   "u",
		Password:   "p",
		RemotePath: remotePath,
	}
}

func (f *fakeDAV) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path, err := url.PathUnescape(r.URL.EscapedPath())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "MKCOL":
		key := strings.TrimSuffix(path, "/")
		if f.cols[key] {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		f.cols[key] = true
		w.WriteHeader(http.StatusCreated)

	case http.MethodPut:
		if status, ok := f.putStatus[path]; ok {
			w.WriteHeader(status)
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.files[path] = body
		w.WriteHeader(http.StatusCreated)

	case http.MethodGet:
		body, ok := f.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(body)

	case "PROPFIND":
		col := strings.TrimSuffix(path, "/")
		if !f.cols[col] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusMultiStatus)
		if r.Header.Get("Depth") == "0" {
			fmt.Fprint(w, f.multistatus(col, nil, nil))
			return
		}
		files, subcols := f.children(col)
		fmt.Fprint(w, f.multistatus(col, files, subcols))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeDAV) children(col string) (files, subcols []string) {
	prefix := col + "/"
	for p := range f.files {
		if rest, ok := strings.CutPrefix(p, prefix); ok && !strings.Contains(rest, "/") {
			files = append(files, rest)
		}
	}
	for c := range f.cols {
		if rest, ok := strings.CutPrefix(c, prefix); ok && rest != "" && !strings.Contains(rest, "/") {
			subcols = append(subcols, rest)
		}
	}
	sort.Strings(files)
	sort.Strings(subcols)
	return files, subcols
}

func (f *fakeDAV) multistatus(col string, files, subcols []string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><d:multistatus xmlns:d="DAV:">`)
	writeResp := func(href string, isCol bool) {
		b.WriteString(`<d:response><d:href>`)
		b.WriteString(href)
		b.WriteString(`</d:href><d:propstat><d:prop><d:resourcetype>`)
		if isCol {
			b.WriteString(`<d:collection/>`)
		}
		b.WriteString(`</d:resourcetype></d:prop></d:propstat></d:response>`)
	}
	writeResp(escapePath(col)+"/", true)
	for _, c := range subcols {
		writeResp(escapePath(col)+"/"+url.PathEscape(c)+"/", true)
	}
	for _, name := range files {
		writeResp(escapePath(col)+"/"+url.PathEscape(name), false)
	}
	b.WriteString(`</d:multistatus>`)
	return b.String()
}

func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
