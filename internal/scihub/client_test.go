// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scihub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paimon/pkg/types"
)

const articlePage = `<html><body><div id="article"><embed type="application/pdf" src="/storage/x.pdf" id="pdf"></div></body></html>`

const notFoundPage = `<html><body><p>article not found</p></body></html>`

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(ts.Client(), types.ResolverConfig{SciHubMirror: ts.URL + "/"}, types.HTTPConfig{UserAgent: "paimon-test/1.0"})
}

func TestLookupByIdentifier(t *testing.T) {
	var gotPath, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(articlePage))
	}))
	defer ts.Close()

	got, err := newTestClient(ts).LookupByIdentifier(context.Background(), "10.1000/xyz123")
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/10.1000/xyz123", got)
	assert.Equal(t, "/10.1000/xyz123", gotPath)
	assert.Equal(t, "paimon-test/1.0", gotUA)
}

func TestLookupByIdentifier_Redirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/10.1000/xyz", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tree/abc", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/tree/abc", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(articlePage))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	got, err := newTestClient(ts).LookupByIdentifier(context.Background(), "10.1000/xyz")
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/tree/abc", got)
}

func TestLookupByIdentifier_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(notFoundPage))
	}))
	defer ts.Close()

	_, err := newTestClient(ts).LookupByIdentifier(context.Background(), "10.1000/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupByIdentifier_Empty(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).LookupByIdentifier(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyIdentifier)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestLookupByIdentifier_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).LookupByIdentifier(context.Background(), "10.1000/xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestEscapeIdentifier(t *testing.T) {
	assert.Equal(t, "10.1000/xyz123", escapeIdentifier("10.1000/xyz123"))
	assert.Equal(t, "10.1002/%28SICI%291097-4636", escapeIdentifier("10.1002/(SICI)1097-4636"))
	assert.Equal(t, "10.1000/a%20b", escapeIdentifier("10.1000/a b"))
}

func TestNewClientDefaultMirror(t *testing.T) {
	c := NewClient(http.DefaultClient, types.ResolverConfig{}, types.HTTPConfig{})
	assert.Equal(t, types.DefaultSciHubMirror, c.Mirror)
}
