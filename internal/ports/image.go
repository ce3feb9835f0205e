package ports

import (
	"context"
	"io"
)

// ImageEncoder turns a raw image into an embeddable string reference (a data URI)
type ImageEncoder interface {
	// Encode reads an image from r, compresses it and returns a data URI.
	// Implementations must honour ctx cancellation between expensive steps.
	Encode(ctx context.Context, r io.Reader) (string, error)
}
