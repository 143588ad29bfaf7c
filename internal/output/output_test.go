package output

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/cristianadrielbraun/qrstyle/internal/matrix"
	"github.com/cristianadrielbraun/qrstyle/internal/render"
	"github.com/cristianadrielbraun/qrstyle/internal/style"
)

func renderCode(t *testing.T, payload string, opts render.Options) *image.RGBA {
	t.Helper()
	m, err := matrix.Skip2{}.Encode(payload, matrix.LevelH)
	if err != nil {
		t.Fatal(err)
	}
	img, err := render.Render(m, opts)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestVerifySquareCode(t *testing.T) {
	img := renderCode(t, "Some data", render.Options{Box: 8, Border: 4})
	got, err := Verify(img)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Some data" {
		t.Errorf("decoded %q, want %q", got, "Some data")
	}
}

func TestVerifyStyledCode(t *testing.T) {
	img := renderCode(t, "https://example.com", render.Options{
		Box:    10,
		Border: 4,
		Module: style.GappedSquare{Ratio: style.DefaultGapRatio},
		Eyes:   style.RoundedEyes{},
	})
	got, err := Verify(img)
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com" {
		t.Errorf("decoded %q", got)
	}
}

func TestVerifyBlankImage(t *testing.T) {
	blank := imaging.New(100, 100, color.White)
	if _, err := Verify(blank); !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestSaveAndResize(t *testing.T) {
	img := renderCode(t, "Some data", render.Options{Box: 4, Border: 4})
	path := filepath.Join(t.TempDir(), "code.png")
	if err := Save(img, path, 300); err != nil {
		t.Fatal(err)
	}
	saved, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := saved.Bounds().Size(); got != image.Pt(300, 300) {
		t.Errorf("saved size = %v, want 300x300", got)
	}

	if err := Save(img, filepath.Join(t.TempDir(), "code.xyz"), 0); err == nil {
		t.Errorf("expected error for unknown extension")
	}
}

func TestEncode(t *testing.T) {
	img := renderCode(t, "Some data", render.Options{Box: 2})
	var buf bytes.Buffer
	if err := Encode(&buf, img, "png", 0); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("encoded bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}
	if err := Encode(&buf, img, "webp", 0); err == nil {
		t.Errorf("expected error for unsupported format")
	}
}

func TestContentType(t *testing.T) {
	cases := map[string]string{"": "image/png", "png": "image/png", "JPG": "image/jpeg", "nope": "application/octet-stream"}
	for in, want := range cases {
		if got := ContentType(in); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", in, got, want)
		}
	}
}
