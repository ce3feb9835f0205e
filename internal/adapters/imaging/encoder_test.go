package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int, noisy bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rng := rand.New(rand.NewSource(1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255}
			if noisy {
				c = color.RGBA{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256)), A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeURI(t *testing.T, uri string) (string, image.Image) {
	t.Helper()
	mime, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ";base64,")
	if !ok {
		t.Fatalf("not a data URI: %.40s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatal(err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	return mime, img
}

func TestEncoder_SmallImageUnchanged(t *testing.T) {
	raw := pngBytes(t, 20, 10, false)
	enc := NewEncoder(1920, 1<<20, 85)

	uri, err := enc.Encode(context.Background(), bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
	if uri != want {
		t.Error("small image should be embedded unchanged")
	}
}

func TestEncoder_DownscalesToMaxDimension(t *testing.T) {
	raw := pngBytes(t, 400, 100, false)
	enc := NewEncoder(100, 1<<20, 85)

	uri, err := enc.Encode(context.Background(), bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	mime, img := decodeURI(t, uri)
	if mime != "image/png" {
		t.Errorf("mime = %s", mime)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 25 {
		t.Errorf("size = %dx%d, want 100x25", b.Dx(), b.Dy())
	}
}

func TestEncoder_FitsByteLimit(t *testing.T) {
	raw := pngBytes(t, 300, 300, true)
	enc := NewEncoder(1920, 20<<10, 85)

	uri, err := enc.Encode(context.Background(), bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	mime, _ := decodeURI(t, uri)
	if mime != "image/jpeg" {
		t.Errorf("noisy image over the limit should fall back to jpeg, got %s", mime)
	}
	payload := strings.SplitN(uri, ",", 2)[1]
	if n := base64.StdEncoding.DecodedLen(len(payload)); n > 20<<10+3 {
		t.Errorf("encoded size %d exceeds limit", n)
	}
}

func TestEncoder_Errors(t *testing.T) {
	enc := NewEncoder(1920, 1<<20, 85)

	if _, err := enc.Encode(context.Background(), strings.NewReader("not an image")); err == nil {
		t.Error("expected error for garbage input")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	big := pngBytes(t, 200, 200, false)
	_, err := NewEncoder(50, 1<<20, 85).Encode(ctx, bytes.NewReader(big))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
