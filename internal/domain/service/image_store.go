package service

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// ImageStore defines the interface for storing product images in a blob bucket.
type ImageStore interface {
	// SaveProductImage writes the image bytes under a key derived from the
	// product ID and returns the public URL of the stored object.
	SaveProductImage(ctx context.Context, productID uuid.UUID, contentType string, r io.Reader) (string, error)
}
