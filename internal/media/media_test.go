package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNeedsConversion(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want bool
	}{
		{"heic image", Item{Type: TypeImage, Src: "https://cdn/photo.heic"}, true},
		{"heif image", Item{Type: TypeImage, Src: "https://cdn/photo.HEIF"}, true},
		{"heic with query string", Item{Type: TypeImage, Src: "https://cdn/photo.heic?token=abc"}, true},
		{"jpeg image", Item{Type: TypeImage, Src: "https://cdn/photo.jpg"}, false},
		{"no extension", Item{Type: TypeImage, Src: "https://cdn/photo"}, false},
		{"video never converts", Item{Type: TypeVideo, Src: "https://cdn/clip.heic"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsConversion(tt.item); got != tt.want {
				t.Errorf("NeedsConversion(%q) = %v, want %v", tt.item.Src, got, tt.want)
			}
		})
	}
}

func TestDerivedReleaseOnce(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "derived.jpg")
	if err := os.WriteFile(p, []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	d := &Derived{Path: p}
	d.Release()
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatal("file still exists after Release")
	}

	// Second release must be a no-op even if another file has since
	// appeared at the same path.
	if err := os.WriteFile(p, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	d.Release()
	if _, err := os.Stat(p); err != nil {
		t.Error("second Release removed a file it no longer owns")
	}
}

func TestDerivedReleaseNil(t *testing.T) {
	var d *Derived
	d.Release() // must not panic
}

func TestNormalizePassThrough(t *testing.T) {
	n := NewNormalizer(time.Second, nil, t.TempDir())

	jpeg := Item{ID: "j", Type: TypeImage, Src: "https://cdn/a.jpg"}
	if got := n.Normalize(context.Background(), jpeg); got != jpeg {
		t.Errorf("jpeg item changed: %+v", got)
	}

	video := Item{ID: "v", Type: TypeVideo, Src: "https://cdn/a.heic"}
	if got := n.Normalize(context.Background(), video); got != video {
		t.Errorf("video item changed: %+v", got)
	}
}

func TestNormalizeFallsBackOnDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	n := NewNormalizer(time.Second, nil, t.TempDir())
	item := Item{ID: "h", Type: TypeImage, Src: srv.URL + "/photo.heic"}

	got := n.Normalize(context.Background(), item)
	if got.Src != item.Src {
		t.Errorf("Src = %q, want original %q", got.Src, item.Src)
	}
	if got.Derived != nil {
		t.Error("failed conversion must not leave a Derived resource")
	}
}

func TestNormalizeFallsBackOnBadData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a heic container"))
	}))
	defer srv.Close()

	n := NewNormalizer(time.Second, nil, t.TempDir())
	item := Item{ID: "h", Type: TypeImage, Src: srv.URL + "/photo.heic"}

	got := n.Normalize(context.Background(), item)
	if got.Src != item.Src || got.Derived != nil {
		t.Errorf("bad data should fall back to original, got %+v", got)
	}
}

func TestNormalizeSendsHeaders(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("ngrok-skip-browser-warning")
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	headers := map[string]string{"ngrok-skip-browser-warning": "true"}
	n := NewNormalizer(time.Second, headers, t.TempDir())
	n.Normalize(context.Background(), Item{Type: TypeImage, Src: srv.URL + "/p.heic"})

	if got != "true" {
		t.Error("download request missing configured headers")
	}
}
