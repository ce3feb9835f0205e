package application

import (
	"context"
	"fmt"
	"html"
	"io"

	"tarjetitas/internal/ports"
)

// ImageResult is the outcome of embedding an image. SessionID ties the result to the
// editor session that started it so late results for a closed session can be dropped.
type ImageResult struct {
	SessionID string
	Markup    string
	Err       error
}

// EmbedImage encodes the image read from r and returns markup ready to be inserted
// into card text. It never blocks session operations; callers run it off the UI loop.
func EmbedImage(ctx context.Context, enc ports.ImageEncoder, sessionID string, r io.Reader) ImageResult {
	res := ImageResult{SessionID: sessionID}

	dataURI, err := enc.Encode(ctx, r)
	if err != nil {
		res.Err = fmt.Errorf("failed to embed image: %w", err)
		return res
	}
	if ctx.Err() != nil {
		res.Err = ctx.Err()
		return res
	}

	res.Markup = ImageMarkup(dataURI)
	return res
}

// ImageMarkup wraps a data URI in an img element
func ImageMarkup(dataURI string) string {
	return fmt.Sprintf(`<img src="%s" alt="">`, html.EscapeString(dataURI))
}
