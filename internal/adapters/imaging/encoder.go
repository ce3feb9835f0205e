package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"

	"tarjetitas/internal/ports"
)

const (
	// maxInputBytes bounds what is read before decoding
	maxInputBytes = 32 << 20
	minQuality    = 40
)

// ErrTooLarge is returned when an image cannot be brought under the byte limit
var ErrTooLarge = errors.New("image too large")

// Encoder downsizes images and returns them as data URIs
type Encoder struct {
	MaxDimension int
	MaxBytes     int64
	Quality      int
}

var _ ports.ImageEncoder = (*Encoder)(nil)

// NewEncoder creates an encoder with the given limits
func NewEncoder(maxDimension int, maxBytes int64, quality int) *Encoder {
	return &Encoder{MaxDimension: maxDimension, MaxBytes: maxBytes, Quality: quality}
}

// Encode reads an image, scales it to fit MaxDimension and re-encodes it until it fits
// MaxBytes. Images already within both limits are embedded unchanged.
func (e *Encoder) Encode(ctx context.Context, r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(raw) > maxInputBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxInputBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("unsupported image: %w", err)
	}
	if e.fits(cfg.Width, cfg.Height) && int64(len(raw)) <= e.MaxBytes {
		return dataURI("image/"+format, raw), nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dim := e.MaxDimension
	if m := max(img.Bounds().Dx(), img.Bounds().Dy()); m < dim {
		dim = m
	}
	for dim >= 16 {
		scaled := img
		if !e.fitsDim(img.Bounds().Dx(), img.Bounds().Dy(), dim) {
			scaled = resize.Thumbnail(uint(dim), uint(dim), img, resize.Lanczos3)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		out, mime, err := e.encode(ctx, scaled, format)
		if err != nil {
			return "", err
		}
		if int64(len(out)) <= e.MaxBytes {
			return dataURI(mime, out), nil
		}
		dim = dim * 3 / 4
	}
	return "", fmt.Errorf("%w: cannot fit in %d bytes", ErrTooLarge, e.MaxBytes)
}

// encode writes PNG for PNG sources when small enough, otherwise JPEG at decreasing quality
func (e *Encoder) encode(ctx context.Context, img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("failed to encode png: %w", err)
		}
		if int64(buf.Len()) <= e.MaxBytes {
			return buf.Bytes(), "image/png", nil
		}
	}

	for q := e.Quality; ; q -= 10 {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		if q < minQuality {
			q = minQuality
		}
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, "", fmt.Errorf("failed to encode jpeg: %w", err)
		}
		if int64(buf.Len()) <= e.MaxBytes || q == minQuality {
			return buf.Bytes(), "image/jpeg", nil
		}
	}
}

func (e *Encoder) fits(w, h int) bool {
	return e.fitsDim(w, h, e.MaxDimension)
}

func (e *Encoder) fitsDim(w, h, dim int) bool {
	return w <= dim && h <= dim
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
