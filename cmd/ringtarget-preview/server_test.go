package main

import (
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/satindergrewal/ringtarget"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := ringtarget.DefaultConfig().Scaled(0.125)
	cfg.Bits = 8

	codes, err := ringtarget.Generate(cfg.Bits)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	book, err := ringtarget.NewCodebook(cfg.Bits, codes)
	if err != nil {
		t.Fatalf("NewCodebook: %v", err)
	}
	h, err := newServer(cfg, book, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCodesEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/codes")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body codesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Config.Bits != 8 || body.Config.Width != 375 {
		t.Errorf("config = %+v", body.Config)
	}
	if len(body.Targets) != 13 {
		t.Fatalf("expected 13 targets, got %d", len(body.Targets))
	}
	first := body.Targets[0]
	if first.Code != 17 || first.Binary != "00010001" {
		t.Errorf("first target = %d (%s), want 17 (00010001)", first.Code, first.Binary)
	}
	if first.PNG != "/targets/17.png" || first.SVG != "/targets/17.svg" {
		t.Errorf("links = %q, %q", first.PNG, first.SVG)
	}
	if len(first.Arcs) != 2 || first.Arcs[0].Segment != 3 || first.Arcs[1].Segment != 7 {
		t.Errorf("arcs = %+v", first.Arcs)
	}
}

func TestLookupEndpoint(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		query  string
		status int
		code   uint32
		shift  int
	}{
		{"observed=17", http.StatusOK, 17, 0},
		{"observed=34", http.StatusOK, 17, 1},         // 17 rotated left once
		{"observed=0b01000100", http.StatusOK, 17, 2}, // binary form
		{"observed=1", http.StatusNotFound, 0, 0},
		{"observed=abc", http.StatusBadRequest, 0, 0},
		{"", http.StatusBadRequest, 0, 0},
	}
	for _, tt := range tests {
		resp := get(t, srv, "/api/lookup?"+tt.query)
		if resp.StatusCode != tt.status {
			t.Errorf("%q: status = %d, want %d", tt.query, resp.StatusCode, tt.status)
			continue
		}
		if tt.status != http.StatusOK {
			continue
		}
		var body lookupResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%q: decode: %v", tt.query, err)
		}
		if body.Code != tt.code || body.Shift != tt.shift {
			t.Errorf("%q: got code %d shift %d, want %d shift %d", tt.query, body.Code, body.Shift, tt.code, tt.shift)
		}
	}
}

func TestTargetEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/targets/17.png")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("png status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("png Content-Type = %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 375 || b.Dy() != 375 {
		t.Errorf("png size = %dx%d, want 375x375", b.Dx(), b.Dy())
	}

	resp = get(t, srv, "/targets/17.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("svg status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("svg Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "<svg") {
		t.Error("svg body missing <svg> element")
	}

	for _, path := range []string{
		"/targets/34.png", // rotation of 17, not issued
		"/targets/17.gif",
		"/targets/abc.png",
		"/targets/17",
	} {
		if resp := get(t, srv, path); resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/codes", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/codes status = %d, want 405", resp.StatusCode)
	}
}

func TestFormatBinary(t *testing.T) {
	if got := formatBinary(5, 8); got != "00000101" {
		t.Errorf("formatBinary(5, 8) = %q", got)
	}
	if got := formatBinary(255, 8); got != "11111111" {
		t.Errorf("formatBinary(255, 8) = %q", got)
	}
}
