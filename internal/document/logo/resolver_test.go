package logo

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kukypng/oliver/internal/cache"
	"go.uber.org/zap"
)

func pngFixture(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestResolveAbsentURL(t *testing.T) {
	r := NewResolver(zap.NewNop())
	if got := r.Resolve(context.Background(), ""); got != nil {
		t.Fatalf("expected nil for absent url")
	}
}

func TestResolveSuccess(t *testing.T) {
	fixture := pngFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	r := NewResolver(zap.NewNop())
	resolved := r.Resolve(context.Background(), srv.URL)
	if resolved == nil {
		t.Fatalf("expected resolved logo")
	}
	if resolved.Format != "png" {
		t.Fatalf("expected png format, got %q", resolved.Format)
	}
	if resolved.Image == nil {
		t.Fatalf("expected decoded image")
	}
	if got := resolved.DataURI(); len(got) == 0 || got[:15] != "data:image/png;" {
		t.Fatalf("unexpected data uri prefix %q", got)
	}
}

func TestResolveBadStatusFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewResolver(zap.NewNop())
	if got := r.Resolve(context.Background(), srv.URL); got != nil {
		t.Fatalf("expected fallback on bad status")
	}
}

func TestResolveDecodeErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	r := NewResolver(zap.NewNop())
	if got := r.Resolve(context.Background(), srv.URL); got != nil {
		t.Fatalf("expected fallback on decode error")
	}
}

func TestResolveNetworkErrorFallsBack(t *testing.T) {
	r := NewResolver(zap.NewNop(), WithTimeout(500*time.Millisecond))
	if got := r.Resolve(context.Background(), "http://127.0.0.1:1/logo.png"); got != nil {
		t.Fatalf("expected fallback on network error")
	}
}

func TestResolveUsesCache(t *testing.T) {
	fixture := pngFixture(t)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	r := NewResolver(zap.NewNop())
	if r.Resolve(context.Background(), srv.URL) == nil {
		t.Fatalf("expected resolved logo")
	}
	if r.Resolve(context.Background(), srv.URL) == nil {
		t.Fatalf("expected cached logo")
	}
	if hits != 1 {
		t.Fatalf("expected a single fetch, got %d", hits)
	}
}

func TestResolveNoopCacheRefetches(t *testing.T) {
	fixture := pngFixture(t)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	r := NewResolver(zap.NewNop(), WithCache(cache.NoopCache[string, *Resolved]{}, 0))
	for i := 0; i < 2; i++ {
		if r.Resolve(context.Background(), srv.URL) == nil {
			t.Fatalf("expected resolved logo on fetch %d", i)
		}
	}
	if hits != 2 {
		t.Fatalf("expected a fetch per resolve, got %d", hits)
	}
}
