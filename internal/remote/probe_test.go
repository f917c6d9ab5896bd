// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paimon/pkg/types"
)

func newTestProber(ts *httptest.Server) *Prober {
	return NewProber(ts.Client(), types.HTTPConfig{UserAgent: "paimon-test/1.0"})
}

func TestProbeFilename_FromPath(t *testing.T) {
	var method, ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/pdf")
	}))
	defer ts.Close()

	got, err := newTestProber(ts).ProbeFilename(context.Background(), ts.URL+"/papers/attention.pdf")
	require.NoError(t, err)
	assert.Equal(t, "attention.pdf", got)
	assert.Equal(t, http.MethodHead, method)
	assert.Equal(t, "paimon-test/1.0", ua)
}

func TestProbeFilename_ContentDisposition(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="../../etc/report final.pdf"`)
	}))
	defer ts.Close()

	got, err := newTestProber(ts).ProbeFilename(context.Background(), ts.URL+"/download?id=7")
	require.NoError(t, err)
	assert.Equal(t, "report final.pdf", got)
}

func TestProbeFilename_ContentDispositionExtended(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename*=UTF-8''caf%C3%A9.pdf`)
	}))
	defer ts.Close()

	got, err := newTestProber(ts).ProbeFilename(context.Background(), ts.URL+"/dl")
	require.NoError(t, err)
	assert.Equal(t, "café.pdf", got)
}

func TestProbeFilename_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/files/real-name.zip", http.StatusFound)
	})
	mux.HandleFunc("/files/real-name.zip", func(w http.ResponseWriter, _ *http.Request) {})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	got, err := newTestProber(ts).ProbeFilename(context.Background(), ts.URL+"/short")
	require.NoError(t, err)
	assert.Equal(t, "real-name.zip", got)
}

func TestProbeFilename_ExtensionFromContentType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf; charset=binary")
	}))
	defer ts.Close()

	got, err := newTestProber(ts).ProbeFilename(context.Background(), ts.URL+"/paper/12345")
	require.NoError(t, err)
	assert.Equal(t, "12345.pdf", got)
}

func TestProbeFilename_HeadNotAllowed(t *testing.T) {
	var methods []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte("body"))
	}))
	defer ts.Close()

	got, err := newTestProber(ts).ProbeFilename(context.Background(), ts.URL+"/a/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", got)
	assert.Equal(t, []string{http.MethodHead, http.MethodGet}, methods)
}

func TestProbeFilename_NonSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := newTestProber(ts).ProbeFilename(context.Background(), ts.URL+"/missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestProbeFilename_NoName(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer ts.Close()

	_, err := newTestProber(ts).ProbeFilename(context.Background(), ts.URL+"/")
	assert.Error(t, err)
}

func TestSafeBase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report.pdf", "report.pdf"},
		{"/a/b/report.pdf", "report.pdf"},
		{`C:\Users\x\report.pdf`, "report.pdf"},
		{"..", ""},
		{"/", ""},
		{"", ""},
		{"  spaced.txt ", "spaced.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeBase(tt.in), tt.in)
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".pdf", extensionFor("application/pdf"))
	assert.Equal(t, ".txt", extensionFor("text/plain; charset=utf-8"))
	assert.Equal(t, "", extensionFor("application/x-unheard-of"))
	assert.Equal(t, "", extensionFor(""))
}
